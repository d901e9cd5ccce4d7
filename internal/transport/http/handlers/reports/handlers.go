package reportshandler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"worklog/internal/domain/business"
	"worklog/internal/domain/employer"
	"worklog/internal/domain/reports"
	"worklog/internal/domain/workday"
	"worklog/internal/platform/metrics"
	"worklog/internal/transport/http/api"
	"worklog/internal/transport/http/middleware"
	"worklog/internal/transport/http/shared"
)

type Handler struct {
	WorkDays  *workday.Store
	Employers *employer.Store
	Business  *business.Store
	Metrics   *metrics.Collector
}

func NewHandler(workDays *workday.Store, employers *employer.Store, businessStore *business.Store, collector *metrics.Collector) *Handler {
	return &Handler{WorkDays: workDays, Employers: employers, Business: businessStore, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/summary", h.handleSummary)
		r.Get("/statistics", h.handleStatistics)
		r.Get("/export", h.handleExport)
	})
}

type summaryResponse struct {
	Days     []workday.WorkDay         `json:"days"`
	Totals   reports.Totals            `json:"totals"`
	Discount *reports.Discount         `json:"discount,omitempty"`
	Final    *reports.DiscountedTotals `json:"final,omitempty"`
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	params, ok := h.parseReportParams(w, r)
	if !ok {
		return
	}

	days, err := h.WorkDays.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "summary_failed", "failed to list work days", requestID)
		return
	}
	days = reports.Filter(days, params.employerID, params.from, params.to)
	totals := reports.Aggregate(days)

	response := summaryResponse{Days: days, Totals: totals}
	if params.discount != nil {
		vatPercent, err := h.vatPercentFor(r, params.employerID, totals)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "summary_failed", "failed to resolve employer", requestID)
			return
		}
		final := reports.ApplyDiscount(totals.BeforeVat, *params.discount, vatPercent)
		response.Discount = params.discount
		response.Final = &final
	}
	api.Success(w, response, requestID)
}

func (h *Handler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	month := query.Get("month")

	if month != "" && !shared.ValidMonth(month) {
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
			map[string]any{"fields": []shared.ValidationIssue{{Field: "month", Reason: "must be in YYYY-MM format"}}},
			requestID)
		return
	}

	days, err := h.WorkDays.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "statistics_failed", "failed to list work days", requestID)
		return
	}
	employers, err := h.Employers.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "statistics_failed", "failed to list employers", requestID)
		return
	}
	api.Success(w, reports.MonthlyStatistics(days, employers, month, query.Get("employerId")), requestID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	params, ok := h.parseReportParams(w, r)
	if !ok {
		return
	}

	days, err := h.WorkDays.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to list work days", requestID)
		return
	}
	employers, err := h.Employers.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to list employers", requestID)
		return
	}
	details, err := h.Business.Get(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to load business details", requestID)
		return
	}

	days = reports.Filter(days, params.employerID, params.from, params.to)
	totals := reports.Aggregate(days)
	from, to := reports.NormalizeRange(params.from, params.to)

	data := reports.ExportData{
		Days:      days,
		Employers: employers,
		Business:  details,
		Totals:    totals,
		From:      from,
		To:        to,
	}
	if params.employerID != "" {
		for i := range employers {
			if employers[i].ID == params.employerID {
				data.Employer = &employers[i]
				break
			}
		}
	}
	if params.discount != nil {
		vatPercent := effectiveVatPercent(totals)
		if data.Employer != nil {
			vatPercent = data.Employer.VatPercent
		}
		final := reports.ApplyDiscount(totals.BeforeVat, *params.discount, vatPercent)
		data.Discount = params.discount
		data.Final = &final
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(from, to)))
	if err := reports.WritePDF(w, data); err != nil {
		// Headers are already out; nothing sensible left to send.
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordExport()
	}
}

type reportParams struct {
	employerID string
	from       string
	to         string
	discount   *reports.Discount
}

func (h *Handler) parseReportParams(w http.ResponseWriter, r *http.Request) (reportParams, bool) {
	query := r.URL.Query()
	params := reportParams{
		employerID: query.Get("employerId"),
		from:       query.Get("from"),
		to:         query.Get("to"),
	}

	v := shared.NewValidator()
	v.Date("from", params.from)
	v.Date("to", params.to)

	if raw := query.Get("discountValue"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			v.Add("discountValue", "must be a number")
		} else if value > 0 {
			discountType := query.Get("discountType")
			if discountType == "" {
				discountType = reports.DiscountFixed
			}
			v.Enum("discountType", discountType,
				[]string{reports.DiscountFixed, reports.DiscountPercent},
				"must be fixed or percent")
			params.discount = &reports.Discount{
				Type:   discountType,
				Value:  value,
				Reason: query.Get("discountReason"),
			}
		}
	}

	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return reportParams{}, false
	}
	return params, true
}

// vatPercentFor picks the VAT rate for discount math: the employer's own
// rate when the report covers one employer, otherwise the effective rate
// implied by the aggregated totals.
func (h *Handler) vatPercentFor(r *http.Request, employerID string, totals reports.Totals) (float64, error) {
	if employerID == "" {
		return effectiveVatPercent(totals), nil
	}
	emp, err := h.Employers.Get(r.Context(), employerID)
	if errors.Is(err, employer.ErrNotFound) {
		return effectiveVatPercent(totals), nil
	}
	if err != nil {
		return 0, err
	}
	return emp.VatPercent, nil
}

func effectiveVatPercent(totals reports.Totals) float64 {
	if totals.BeforeVat == 0 {
		return 0
	}
	return (totals.WithVat - totals.BeforeVat) / totals.BeforeVat * 100
}

func exportFilename(from, to string) string {
	switch {
	case from != "" && to != "":
		return fmt.Sprintf("work-report-%s-%s.pdf", from, to)
	case from != "":
		return fmt.Sprintf("work-report-from-%s.pdf", from)
	case to != "":
		return fmt.Sprintf("work-report-to-%s.pdf", to)
	default:
		return "work-report.pdf"
	}
}
