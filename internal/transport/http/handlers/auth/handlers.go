package authhandler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"worklog/internal/domain/auth"
	"worklog/internal/transport/http/api"
	"worklog/internal/transport/http/middleware"
)

type Handler struct {
	Store    *auth.Store
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(store *auth.Store, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{Store: store, Secret: secret, TokenTTL: tokenTTL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Put("/auth/password", h.HandleChangePassword)
}

type loginRequest struct {
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	hash, err := h.Store.PasswordHash(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to load credentials", middleware.GetRequestID(r.Context()))
		return
	}
	if err := auth.CheckPassword(hash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid password", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"token": token}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var payload changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if len(strings.TrimSpace(payload.NewPassword)) < 8 {
		api.Fail(w, http.StatusBadRequest, "weak_password", "new password must be at least 8 characters", middleware.GetRequestID(r.Context()))
		return
	}

	hash, err := h.Store.PasswordHash(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "password_change_failed", "failed to load credentials", middleware.GetRequestID(r.Context()))
		return
	}
	if err := auth.CheckPassword(hash, payload.CurrentPassword); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "current password is incorrect", middleware.GetRequestID(r.Context()))
		return
	}

	newHash, err := auth.HashPassword(payload.NewPassword)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "password_change_failed", "failed to hash password", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Store.UpdatePassword(r.Context(), newHash); err != nil {
		api.Fail(w, http.StatusInternalServerError, "password_change_failed", "failed to store password", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "password_changed"}, middleware.GetRequestID(r.Context()))
}
