package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/invenra/invenra/application/port/inbound"
	"github.com/invenra/invenra/domain/entity"
	"github.com/invenra/invenra/infrastructure/http/middleware"
	"github.com/invenra/invenra/infrastructure/http/response"
)

type SupplierHandler struct {
	supplierUseCase inbound.SupplierUseCase
	authMiddleware  *middleware.AuthMiddleware
}

func NewSupplierHandler(supplierUseCase inbound.SupplierUseCase, authMiddleware *middleware.AuthMiddleware) *SupplierHandler {
	return &SupplierHandler{
		supplierUseCase: supplierUseCase,
		authMiddleware:  authMiddleware,
	}
}

func (h *SupplierHandler) RegisterRoutes(router *mux.Router) {
	suppliers := router.PathPrefix("/api/suppliers").Subrouter()
	suppliers.HandleFunc("", h.authMiddleware.RequireAuth(h.List)).Methods(http.MethodGet)
	suppliers.HandleFunc("", h.authMiddleware.RequireAuth(h.Create)).Methods(http.MethodPost)
	suppliers.HandleFunc("/{id}", h.authMiddleware.RequireAuth(h.Get)).Methods(http.MethodGet)
	suppliers.HandleFunc("/{id}", h.authMiddleware.RequireAuth(h.Update)).Methods(http.MethodPut)
	suppliers.HandleFunc("/{id}", h.authMiddleware.RequireAuth(h.Delete)).Methods(http.MethodDelete)
}

func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.supplierUseCase.List(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	if suppliers == nil {
		suppliers = []*entity.Supplier{}
	}
	response.JSON(w, http.StatusOK, suppliers)
}

func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	supplier, err := h.supplierUseCase.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, supplier)
}

func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var supplier entity.Supplier
	if err := json.NewDecoder(r.Body).Decode(&supplier); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	created, err := h.supplierUseCase.Create(r.Context(), &supplier)
	if err != nil {
		writeAppError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var supplier entity.Supplier
	if err := json.NewDecoder(r.Body).Decode(&supplier); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	updated, err := h.supplierUseCase.Update(r.Context(), id, &supplier)
	if err != nil {
		writeAppError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.supplierUseCase.Delete(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
