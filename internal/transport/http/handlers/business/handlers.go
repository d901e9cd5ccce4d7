package businesshandler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"worklog/internal/domain/business"
	"worklog/internal/transport/http/api"
	"worklog/internal/transport/http/middleware"
	"worklog/internal/transport/http/shared"
)

type Handler struct {
	Store *business.Store
}

func NewHandler(store *business.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/business", h.handleGet)
	r.Put("/business", h.handleSave)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	details, err := h.Store.Get(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "business_get_failed", "failed to load business details", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, details, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var details business.Details
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	if details.Logo != "" && !strings.HasPrefix(details.Logo, "data:image/") {
		v.Add("logo", "must be an image data URL")
	}
	if details.Email != "" && !strings.Contains(details.Email, "@") {
		v.Add("email", "must be a valid email address")
	}
	if v.Reject(w, requestID) {
		return
	}

	if err := h.Store.Save(r.Context(), details); err != nil {
		api.Fail(w, http.StatusInternalServerError, "business_save_failed", "failed to save business details", requestID)
		return
	}
	api.Success(w, details, requestID)
}
