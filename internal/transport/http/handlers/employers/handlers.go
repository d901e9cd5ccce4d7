package employershandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"worklog/internal/domain/employer"
	"worklog/internal/transport/http/api"
	"worklog/internal/transport/http/middleware"
	"worklog/internal/transport/http/shared"
)

type Handler struct {
	Store *employer.Store
}

func NewHandler(store *employer.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employers", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{employerID}", h.handleGet)
		r.Put("/{employerID}", h.handleUpdate)
		r.Delete("/{employerID}", h.handleDelete)
	})
}

type employerPayload struct {
	Name         string           `json:"name"`
	DailyRate    float64          `json:"dailyRate"`
	DailyHours   float64          `json:"dailyHours"`
	OvertimeRate float64          `json:"overtimeRate"`
	KmRate       float64          `json:"kmRate"`
	VatPercent   float64          `json:"vatPercent"`
	Bonuses      []employer.Bonus `json:"bonuses"`
}

func (p *employerPayload) validate() *shared.Validator {
	v := shared.NewValidator()
	v.Required("name", p.Name, "name is required")
	v.NonNegative("dailyRate", p.DailyRate, "must not be negative")
	v.NonNegative("dailyHours", p.DailyHours, "must not be negative")
	v.NonNegative("overtimeRate", p.OvertimeRate, "must not be negative")
	v.NonNegative("kmRate", p.KmRate, "must not be negative")
	if p.VatPercent < 0 || p.VatPercent > 100 {
		v.Add("vatPercent", "must be between 0 and 100")
	}
	for _, bonus := range p.Bonuses {
		if strings.TrimSpace(bonus.Name) == "" {
			v.Add("bonuses", "every bonus needs a name")
		}
		v.NonNegative("bonuses", bonus.Amount, "bonus amounts must not be negative")
	}
	return v
}

func (p *employerPayload) apply(emp *employer.Employer) {
	emp.Name = p.Name
	emp.DailyRate = p.DailyRate
	emp.DailyHours = p.DailyHours
	emp.OvertimeRate = p.OvertimeRate
	emp.KmRate = p.KmRate
	emp.VatPercent = p.VatPercent
	emp.Bonuses = make([]employer.Bonus, 0, len(p.Bonuses))
	for _, bonus := range p.Bonuses {
		if bonus.ID == "" {
			bonus.ID = uuid.NewString()
		}
		emp.Bonuses = append(emp.Bonuses, bonus)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employers, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employers_list_failed", "failed to list employers", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employers, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.Get(r.Context(), pathID(r, "employerID"))
	if errors.Is(err, employer.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employer not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employer_get_failed", "failed to load employer", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload employerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.validate().Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	emp := employer.Employer{ID: uuid.NewString()}
	payload.apply(&emp)
	if err := h.Store.Create(r.Context(), &emp); err != nil {
		api.Fail(w, http.StatusInternalServerError, "employer_create_failed", "failed to create employer", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload employerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.validate().Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	emp := employer.Employer{ID: pathID(r, "employerID")}
	payload.apply(&emp)
	err := h.Store.Update(r.Context(), &emp)
	if errors.Is(err, employer.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employer not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employer_update_failed", "failed to update employer", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Store.Delete(r.Context(), pathID(r, "employerID"))
	if errors.Is(err, employer.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employer not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employer_delete_failed", "failed to delete employer", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func pathID(r *http.Request, key string) string {
	value := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}
