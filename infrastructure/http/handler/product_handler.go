package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/invenra/invenra/application/port/inbound"
	"github.com/invenra/invenra/domain/entity"
	"github.com/invenra/invenra/infrastructure/http/middleware"
	"github.com/invenra/invenra/infrastructure/http/response"
	"github.com/invenra/invenra/pkg/apperror"
)

type ProductHandler struct {
	productUseCase inbound.ProductUseCase
	authMiddleware *middleware.AuthMiddleware
}

func NewProductHandler(productUseCase inbound.ProductUseCase, authMiddleware *middleware.AuthMiddleware) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		authMiddleware: authMiddleware,
	}
}

func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	products := router.PathPrefix("/api/products").Subrouter()
	products.HandleFunc("/selection", h.authMiddleware.RequireAuth(h.ListForSelection)).Methods(http.MethodGet)
	products.HandleFunc("", h.authMiddleware.RequireAuth(h.List)).Methods(http.MethodGet)
	products.HandleFunc("", h.authMiddleware.RequireAuth(h.Create)).Methods(http.MethodPost)
	products.HandleFunc("/{id}", h.authMiddleware.RequireAuth(h.Get)).Methods(http.MethodGet)
	products.HandleFunc("/{id}", h.authMiddleware.RequireAuth(h.Update)).Methods(http.MethodPut)
	products.HandleFunc("/{id}", h.authMiddleware.RequireAuth(h.Delete)).Methods(http.MethodDelete)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productUseCase.List(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	if products == nil {
		products = []*entity.Product{}
	}
	response.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) ListForSelection(w http.ResponseWriter, r *http.Request) {
	selections, err := h.productUseCase.ListForSelection(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	if selections == nil {
		selections = []*entity.ProductSelection{}
	}
	response.JSON(w, http.StatusOK, selections)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	product, err := h.productUseCase.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product entity.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	created, err := h.productUseCase.Create(r.Context(), &product)
	if err != nil {
		writeAppError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var product entity.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	updated, err := h.productUseCase.Update(r.Context(), id, &product)
	if err != nil {
		writeAppError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.productUseCase.Delete(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeAppError(w http.ResponseWriter, err error) {
	appErr := apperror.MapError(err)
	response.Error(w, appErr.Status, appErr.Message)
}
