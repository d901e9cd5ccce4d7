package reports

import (
	"math"
	"sort"

	"worklog/internal/domain/employer"
	"worklog/internal/domain/workday"
)

const (
	DiscountFixed   = "fixed"
	DiscountPercent = "percent"
)

type Totals struct {
	Hours     float64 `json:"hours"`
	Km        float64 `json:"km"`
	BeforeVat float64 `json:"beforeVat"`
	WithVat   float64 `json:"withVat"`
}

type Discount struct {
	Type   string  `json:"type"`
	Value  float64 `json:"value"`
	Reason string  `json:"reason,omitempty"`
}

type DiscountedTotals struct {
	DiscountAmount float64 `json:"discountAmount"`
	BeforeVat      float64 `json:"beforeVat"`
	VatAmount      float64 `json:"vatAmount"`
	WithVat        float64 `json:"withVat"`
}

// Aggregate sums the computed fields across a filtered set of work days.
func Aggregate(days []workday.WorkDay) Totals {
	var totals Totals
	for _, day := range days {
		totals.Hours += day.RegularHours + day.OvertimeHours
		totals.Km += day.Kilometers
		totals.BeforeVat += day.TotalBeforeVat
		totals.WithVat += day.TotalWithVat
	}
	return totals
}

// ApplyDiscount subtracts a fixed or percentage discount from the subtotal
// and recomputes VAT on the discounted amount. A discount larger than the
// subtotal is allowed and drives the totals negative; nothing here clamps.
func ApplyDiscount(beforeVat float64, discount Discount, vatPercent float64) DiscountedTotals {
	var amount float64
	if discount.Value > 0 {
		switch discount.Type {
		case DiscountPercent:
			amount = beforeVat * discount.Value / 100
		default:
			amount = discount.Value
		}
	}

	discounted := beforeVat - amount
	vat := discounted * vatPercent / 100
	return DiscountedTotals{
		DiscountAmount: round2(amount),
		BeforeVat:      round2(discounted),
		VatAmount:      round2(vat),
		WithVat:        round2(discounted + vat),
	}
}

// NormalizeRange swaps the bounds when both are set and from sorts after to.
// The swapped bounds are also what exported reports display as the period.
func NormalizeRange(from, to string) (string, string) {
	if from != "" && to != "" && from > to {
		return to, from
	}
	return from, to
}

// Filter selects work days by employer and inclusive YYYY-MM-DD date range,
// sorted by date ascending. Reversed bounds are normalized before filtering.
func Filter(days []workday.WorkDay, employerID, from, to string) []workday.WorkDay {
	from, to = NormalizeRange(from, to)

	filtered := make([]workday.WorkDay, 0, len(days))
	for _, day := range days {
		if employerID != "" && day.EmployerID != employerID {
			continue
		}
		if from != "" && day.Date < from {
			continue
		}
		if to != "" && day.Date > to {
			continue
		}
		filtered = append(filtered, day)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date < filtered[j].Date
	})
	return filtered
}

type EmployerBreakdown struct {
	EmployerID string  `json:"employerId"`
	Name       string  `json:"name"`
	Days       int     `json:"days"`
	Total      float64 `json:"total"`
}

type Statistics struct {
	WorkDaysCount  int                 `json:"workDaysCount"`
	TotalHours     float64             `json:"totalHours"`
	RegularHours   float64             `json:"regularHours"`
	OvertimeHours  float64             `json:"overtimeHours"`
	TotalKm        float64             `json:"totalKm"`
	TotalBeforeVat float64             `json:"totalBeforeVat"`
	TotalWithVat   float64             `json:"totalWithVat"`
	ByEmployer     []EmployerBreakdown `json:"byEmployer"`
}

// MonthlyStatistics filters by YYYY-MM month prefix and optional employer,
// then totals the set with a per-employer breakdown sorted by amount.
func MonthlyStatistics(days []workday.WorkDay, employers []employer.Employer, month, employerID string) Statistics {
	names := make(map[string]string, len(employers))
	for _, emp := range employers {
		names[emp.ID] = emp.Name
	}

	var stats Statistics
	byEmployer := make(map[string]*EmployerBreakdown)
	for _, day := range days {
		if month != "" && (len(day.Date) < len(month) || day.Date[:len(month)] != month) {
			continue
		}
		if employerID != "" && day.EmployerID != employerID {
			continue
		}

		stats.WorkDaysCount++
		stats.RegularHours += day.RegularHours
		stats.OvertimeHours += day.OvertimeHours
		stats.TotalHours += day.RegularHours + day.OvertimeHours
		stats.TotalKm += day.Kilometers
		stats.TotalBeforeVat += day.TotalBeforeVat
		stats.TotalWithVat += day.TotalWithVat

		entry, ok := byEmployer[day.EmployerID]
		if !ok {
			name := names[day.EmployerID]
			if name == "" {
				name = "Unknown"
			}
			entry = &EmployerBreakdown{EmployerID: day.EmployerID, Name: name}
			byEmployer[day.EmployerID] = entry
		}
		entry.Days++
		entry.Total += day.TotalWithVat
	}

	stats.ByEmployer = make([]EmployerBreakdown, 0, len(byEmployer))
	for _, entry := range byEmployer {
		stats.ByEmployer = append(stats.ByEmployer, *entry)
	}
	sort.SliceStable(stats.ByEmployer, func(i, j int) bool {
		return stats.ByEmployer[i].Total > stats.ByEmployer[j].Total
	})
	return stats
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
