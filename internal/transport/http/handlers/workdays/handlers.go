package workdayshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"worklog/internal/domain/employer"
	"worklog/internal/domain/reports"
	"worklog/internal/domain/workday"
	"worklog/internal/platform/metrics"
	"worklog/internal/transport/http/api"
	"worklog/internal/transport/http/middleware"
	"worklog/internal/transport/http/shared"
)

type Handler struct {
	Store     *workday.Store
	Employers *employer.Store
	Metrics   *metrics.Collector
}

func NewHandler(store *workday.Store, employers *employer.Store, collector *metrics.Collector) *Handler {
	return &Handler{Store: store, Employers: employers, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/workdays", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Post("/recompute", h.handleRecompute)
		r.Get("/{workdayID}", h.handleGet)
		r.Put("/{workdayID}", h.handleUpdate)
		r.Delete("/{workdayID}", h.handleDelete)
	})
}

type workDayPayload struct {
	EmployerID      string                `json:"employerId"`
	Date            string                `json:"date"`
	Kilometers      float64               `json:"kilometers"`
	CalculationMode string                `json:"calculationMode"`
	Segments        []workday.WorkSegment `json:"segments"`

	// Accepted for callers that still send the flat single-segment shape.
	Location        string   `json:"location"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	CustomDailyRate float64  `json:"customDailyRate"`
	SelectedBonuses []string `json:"selectedBonuses"`
}

func (p *workDayPayload) toDay(id string) workday.WorkDay {
	day := workday.WorkDay{
		ID:              id,
		EmployerID:      p.EmployerID,
		Date:            p.Date,
		Kilometers:      p.Kilometers,
		CalculationMode: p.CalculationMode,
		Segments:        p.Segments,
		Location:        p.Location,
		StartTime:       p.StartTime,
		EndTime:         p.EndTime,
		CustomDailyRate: p.CustomDailyRate,
		SelectedBonuses: p.SelectedBonuses,
	}
	for i := range day.Segments {
		if day.Segments[i].ID == "" {
			day.Segments[i].ID = uuid.NewString()
		}
	}
	day.Normalize()
	return day
}

func (p *workDayPayload) validate() *shared.Validator {
	v := shared.NewValidator()
	v.Required("employerId", p.EmployerID, "employerId is required")
	v.Required("date", p.Date, "date is required")
	v.Date("date", p.Date)
	v.NonNegative("kilometers", p.Kilometers, "must not be negative")
	v.Enum("calculationMode", p.CalculationMode,
		[]string{workday.ModeCombined, workday.ModeSeparate},
		"must be combined or separate")
	for _, seg := range p.Segments {
		v.NonNegative("segments", seg.CustomDailyRate, "custom rates must not be negative")
	}
	return v
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from, to := query.Get("from"), query.Get("to")

	v := shared.NewValidator()
	v.Date("from", from)
	v.Date("to", to)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	days, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "workdays_list_failed", "failed to list work days", middleware.GetRequestID(r.Context()))
		return
	}
	days = reports.Filter(days, query.Get("employerId"), from, to)
	api.Success(w, days, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	day, err := h.Store.Get(r.Context(), chi.URLParam(r, "workdayID"))
	if errors.Is(err, workday.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "work day not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "workday_get_failed", "failed to load work day", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, day, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	day, ok := h.decodeAndCompute(w, r, uuid.NewString())
	if !ok {
		return
	}
	if err := h.Store.Create(r.Context(), day); err != nil {
		api.Fail(w, http.StatusInternalServerError, "workday_create_failed", "failed to create work day", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, day, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	day, ok := h.decodeAndCompute(w, r, chi.URLParam(r, "workdayID"))
	if !ok {
		return
	}
	err := h.Store.Update(r.Context(), day)
	if errors.Is(err, workday.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "work day not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "workday_update_failed", "failed to update work day", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, day, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Store.Delete(r.Context(), chi.URLParam(r, "workdayID"))
	if errors.Is(err, workday.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "work day not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "workday_delete_failed", "failed to delete work day", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

// handleRecompute refreshes the derived totals on every stored work day
// against each employer's current rate card. Days whose employer has been
// deleted are skipped and reported, not failed.
func (h *Handler) handleRecompute(w http.ResponseWriter, r *http.Request) {
	updated, skipped, err := workday.RecomputeAll(r.Context(), h.Store, h.Employers)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "recompute_failed", "failed to recompute work day totals", middleware.GetRequestID(r.Context()))
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordRecompute(updated)
	}
	api.Success(w, map[string]int{"updated": updated, "skipped": skipped}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) decodeAndCompute(w http.ResponseWriter, r *http.Request, id string) (*workday.WorkDay, bool) {
	requestID := middleware.GetRequestID(r.Context())

	var payload workDayPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return nil, false
	}
	if payload.validate().Reject(w, requestID) {
		return nil, false
	}

	emp, err := h.Employers.Get(r.Context(), payload.EmployerID)
	if errors.Is(err, employer.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employer_not_found", "referenced employer does not exist", requestID)
		return nil, false
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employer_lookup_failed", "failed to resolve employer", requestID)
		return nil, false
	}

	day := payload.toDay(id)
	if err := day.Recompute(emp); err != nil {
		if errors.Is(err, workday.ErrInvalidTimeFormat) {
			api.Fail(w, http.StatusBadRequest, "invalid_time", "segment times must be in HH:MM format", requestID)
			return nil, false
		}
		api.Fail(w, http.StatusInternalServerError, "compute_failed", "failed to compute work day totals", requestID)
		return nil, false
	}
	return &day, true
}
