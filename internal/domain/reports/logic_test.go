package reports

import (
	"math"
	"reflect"
	"testing"

	"worklog/internal/domain/employer"
	"worklog/internal/domain/workday"
)

func sampleDays() []workday.WorkDay {
	return []workday.WorkDay{
		{ID: "w1", EmployerID: "e1", Date: "2026-01-05", Kilometers: 10, RegularHours: 12, OvertimeHours: 0, TotalBeforeVat: 420, TotalWithVat: 491.4},
		{ID: "w2", EmployerID: "e2", Date: "2026-01-20", Kilometers: 0, RegularHours: 12, OvertimeHours: 2, TotalBeforeVat: 500, TotalWithVat: 585},
		{ID: "w3", EmployerID: "e1", Date: "2026-02-02", Kilometers: 30, RegularHours: 8, OvertimeHours: 0, TotalBeforeVat: 360, TotalWithVat: 421.2},
	}
}

func TestAggregate(t *testing.T) {
	totals := Aggregate(sampleDays())
	if totals.Hours != 34 {
		t.Fatalf("expected 34 hours, got %v", totals.Hours)
	}
	if totals.Km != 40 {
		t.Fatalf("expected 40 km, got %v", totals.Km)
	}
	if totals.BeforeVat != 1280 {
		t.Fatalf("expected 1280 before VAT, got %v", totals.BeforeVat)
	}
	if math.Abs(totals.WithVat-1497.6) > 0.001 {
		t.Fatalf("expected 1497.6 with VAT, got %v", totals.WithVat)
	}
}

func TestAggregateEmpty(t *testing.T) {
	if totals := Aggregate(nil); totals != (Totals{}) {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestApplyDiscountFixedAllowsNegativeTotals(t *testing.T) {
	result := ApplyDiscount(420, Discount{Type: DiscountFixed, Value: 1000}, 17)
	if result.DiscountAmount != 1000 {
		t.Fatalf("expected discount 1000, got %v", result.DiscountAmount)
	}
	if result.BeforeVat != -580 {
		t.Fatalf("expected -580 before VAT, got %v", result.BeforeVat)
	}
	if result.VatAmount != -98.6 {
		t.Fatalf("expected VAT -98.6, got %v", result.VatAmount)
	}
	if result.WithVat != -678.6 {
		t.Fatalf("expected -678.6 payable, got %v", result.WithVat)
	}
}

func TestApplyDiscountPercent(t *testing.T) {
	result := ApplyDiscount(1000, Discount{Type: DiscountPercent, Value: 10}, 17)
	if result.DiscountAmount != 100 {
		t.Fatalf("expected discount 100, got %v", result.DiscountAmount)
	}
	if result.BeforeVat != 900 {
		t.Fatalf("expected 900 before VAT, got %v", result.BeforeVat)
	}
	if result.WithVat != 1053 {
		t.Fatalf("expected 1053 payable, got %v", result.WithVat)
	}
}

func TestApplyDiscountZeroPercentIsExactNoop(t *testing.T) {
	result := ApplyDiscount(420.37, Discount{Type: DiscountPercent, Value: 0}, 17)
	if result.DiscountAmount != 0 {
		t.Fatalf("expected zero discount, got %v", result.DiscountAmount)
	}
	if result.BeforeVat != 420.37 {
		t.Fatalf("expected untouched subtotal, got %v", result.BeforeVat)
	}
}

func TestApplyDiscountNegativeValueIgnored(t *testing.T) {
	result := ApplyDiscount(500, Discount{Type: DiscountFixed, Value: -50}, 17)
	if result.DiscountAmount != 0 {
		t.Fatalf("expected zero discount for negative value, got %v", result.DiscountAmount)
	}
	if result.BeforeVat != 500 {
		t.Fatalf("expected untouched subtotal, got %v", result.BeforeVat)
	}
}

func TestFilterByEmployerAndRange(t *testing.T) {
	filtered := Filter(sampleDays(), "e1", "2026-01-01", "2026-01-31")
	if len(filtered) != 1 || filtered[0].ID != "w1" {
		t.Fatalf("expected only w1, got %+v", filtered)
	}
}

func TestFilterInclusiveBounds(t *testing.T) {
	filtered := Filter(sampleDays(), "", "2026-01-05", "2026-02-02")
	if len(filtered) != 3 {
		t.Fatalf("expected all three days inside inclusive bounds, got %d", len(filtered))
	}
}

func TestFilterSwapsReversedBounds(t *testing.T) {
	forward := Filter(sampleDays(), "", "2026-01-01", "2026-01-31")
	reversed := Filter(sampleDays(), "", "2026-01-31", "2026-01-01")
	if !reflect.DeepEqual(forward, reversed) {
		t.Fatalf("reversed bounds must filter identically: %+v vs %+v", forward, reversed)
	}
}

func TestFilterSortsByDate(t *testing.T) {
	days := []workday.WorkDay{
		{ID: "later", Date: "2026-03-20"},
		{ID: "earlier", Date: "2026-03-01"},
	}
	filtered := Filter(days, "", "", "")
	if filtered[0].ID != "earlier" || filtered[1].ID != "later" {
		t.Fatalf("expected date-ascending order, got %+v", filtered)
	}
}

func TestNormalizeRange(t *testing.T) {
	from, to := NormalizeRange("2026-02-01", "2026-01-01")
	if from != "2026-01-01" || to != "2026-02-01" {
		t.Fatalf("expected swapped bounds, got %s..%s", from, to)
	}

	// A single open bound is left alone.
	from, to = NormalizeRange("2026-02-01", "")
	if from != "2026-02-01" || to != "" {
		t.Fatalf("expected open range untouched, got %s..%s", from, to)
	}
}

func TestMonthlyStatistics(t *testing.T) {
	employers := []employer.Employer{
		{ID: "e1", Name: "Acme Events"},
		{ID: "e2", Name: "Stage Co"},
	}

	stats := MonthlyStatistics(sampleDays(), employers, "2026-01", "")
	if stats.WorkDaysCount != 2 {
		t.Fatalf("expected 2 days in January, got %d", stats.WorkDaysCount)
	}
	if stats.TotalHours != 26 || stats.OvertimeHours != 2 {
		t.Fatalf("expected 26 total / 2 overtime hours, got %v/%v", stats.TotalHours, stats.OvertimeHours)
	}
	if len(stats.ByEmployer) != 2 {
		t.Fatalf("expected two employer rows, got %d", len(stats.ByEmployer))
	}
	// Sorted by total descending: Stage Co (585) ahead of Acme (491.4).
	if stats.ByEmployer[0].Name != "Stage Co" || stats.ByEmployer[0].Days != 1 {
		t.Fatalf("unexpected leading breakdown row: %+v", stats.ByEmployer[0])
	}
}

func TestMonthlyStatisticsUnknownEmployer(t *testing.T) {
	days := []workday.WorkDay{{EmployerID: "ghost", Date: "2026-01-10", TotalWithVat: 100}}
	stats := MonthlyStatistics(days, nil, "2026-01", "")
	if len(stats.ByEmployer) != 1 || stats.ByEmployer[0].Name != "Unknown" {
		t.Fatalf("expected Unknown employer row, got %+v", stats.ByEmployer)
	}
}
