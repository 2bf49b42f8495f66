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

type CustomerHandler struct {
	customerUseCase inbound.CustomerUseCase
	authMiddleware  *middleware.AuthMiddleware
}

func NewCustomerHandler(customerUseCase inbound.CustomerUseCase, authMiddleware *middleware.AuthMiddleware) *CustomerHandler {
	return &CustomerHandler{
		customerUseCase: customerUseCase,
		authMiddleware:  authMiddleware,
	}
}

func (h *CustomerHandler) RegisterRoutes(router *mux.Router) {
	customers := router.PathPrefix("/api/customers").Subrouter()
	customers.HandleFunc("", h.authMiddleware.RequireAuth(h.List)).Methods(http.MethodGet)
	customers.HandleFunc("", h.authMiddleware.RequireAuth(h.Create)).Methods(http.MethodPost)
	customers.HandleFunc("/{id}", h.authMiddleware.RequireAuth(h.Get)).Methods(http.MethodGet)
	customers.HandleFunc("/{id}", h.authMiddleware.RequireAuth(h.Update)).Methods(http.MethodPut)
	customers.HandleFunc("/{id}", h.authMiddleware.RequireAuth(h.Delete)).Methods(http.MethodDelete)
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerUseCase.List(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	if customers == nil {
		customers = []*entity.Customer{}
	}
	response.JSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	customer, err := h.customerUseCase.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var customer entity.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	created, err := h.customerUseCase.Create(r.Context(), &customer)
	if err != nil {
		writeAppError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var customer entity.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	updated, err := h.customerUseCase.Update(r.Context(), id, &customer)
	if err != nil {
		writeAppError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.customerUseCase.Delete(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
