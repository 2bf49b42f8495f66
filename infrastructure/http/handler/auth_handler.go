package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/invenra/invenra/application/port/inbound"
	"github.com/invenra/invenra/infrastructure/http/middleware"
	"github.com/invenra/invenra/infrastructure/http/response"
	"github.com/invenra/invenra/infrastructure/http/validator"
	"github.com/invenra/invenra/pkg/apperror"
)

type AuthHandler struct {
	authUseCase    inbound.AuthUseCase
	authMiddleware *middleware.AuthMiddleware
}

func NewAuthHandler(authUseCase inbound.AuthUseCase, authMiddleware *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{
		authUseCase:    authUseCase,
		authMiddleware: authMiddleware,
	}
}

func (h *AuthHandler) RegisterRoutes(router *mux.Router, rateLimit func(http.Handler) http.Handler) {
	auth := router.PathPrefix("/api/auth").Subrouter()
	auth.Handle("/register", rateLimit(http.HandlerFunc(h.Register))).Methods(http.MethodPost)
	auth.Handle("/login", rateLimit(http.HandlerFunc(h.Login))).Methods(http.MethodPost)
	auth.Handle("/refresh-token", rateLimit(http.HandlerFunc(h.Refresh))).Methods(http.MethodPost)
	auth.HandleFunc("/revoke-token", h.authMiddleware.RequireAuth(h.Revoke)).Methods(http.MethodPost)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req inbound.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if !validator.ValidateRequired(req.Username) {
		response.BadRequest(w, "Username is required")
		return
	}
	if !validator.ValidateEmail(req.Email) {
		response.BadRequest(w, "Invalid email format")
		return
	}
	if !validator.ValidateRequired(req.Password) {
		response.BadRequest(w, "Password is required")
		return
	}
	if req.Password != req.ConfirmPassword {
		response.BadRequest(w, "The password and confirmation password do not match")
		return
	}

	res, err := h.authUseCase.Register(r.Context(), req)
	if err != nil {
		appErr := apperror.MapError(err)
		response.Error(w, appErr.Status, appErr.Message)
		return
	}

	response.JSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req inbound.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	res, err := h.authUseCase.Login(r.Context(), req)
	if err != nil {
		appErr := apperror.MapError(err)
		if appErr.Status == http.StatusUnauthorized {
			// Same body whether the account is unknown or the password is
			// wrong.
			response.Unauthorized(w, "Invalid username or password")
			return
		}
		response.Error(w, appErr.Status, appErr.Message)
		return
	}

	response.JSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req inbound.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.Token == "" || req.RefreshToken == "" {
		response.BadRequest(w, "Token and refresh token are required")
		return
	}
	if !validator.ValidateJWT(req.Token) {
		response.BadRequest(w, "Invalid token format")
		return
	}

	res, err := h.authUseCase.Refresh(r.Context(), req)
	if err != nil {
		appErr := apperror.MapError(err)
		response.Error(w, appErr.Status, appErr.Message)
		return
	}

	response.JSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.Username == "" {
		response.BadRequest(w, "Invalid user")
		return
	}

	found, err := h.authUseCase.Revoke(r.Context(), claims.Username)
	if err != nil {
		appErr := apperror.MapError(err)
		response.Error(w, appErr.Status, appErr.Message)
		return
	}
	if !found {
		response.NotFound(w, "User not found")
		return
	}

	response.Message(w, http.StatusOK, "Token revoked successfully")
}
