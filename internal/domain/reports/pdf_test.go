package reports

import (
	"bytes"
	"strings"
	"testing"

	"worklog/internal/domain/business"
	"worklog/internal/domain/employer"
	"worklog/internal/domain/workday"
)

func exportFixture() ExportData {
	emp := employer.Employer{
		ID:           "emp-1",
		Name:         "Acme Construction",
		DailyRate:    420,
		DailyHours:   12,
		OvertimeRate: 40,
		KmRate:       2,
		VatPercent:   17,
		Bonuses: []employer.Bonus{
			{ID: "b1", Name: "Night shift", Amount: 100},
		},
	}
	days := []workday.WorkDay{
		{
			ID:              "wd-1",
			EmployerID:      "emp-1",
			Date:            "2025-03-03",
			Kilometers:      30,
			CalculationMode: workday.ModeCombined,
			Segments: []workday.WorkSegment{
				{ID: "s1", Location: "Site A", StartTime: "08:00", EndTime: "20:00", SelectedBonuses: []string{"b1"}},
			},
			RegularHours:   12,
			TotalBeforeVat: 580,
			TotalWithVat:   678.6,
		},
		{
			ID:              "wd-2",
			EmployerID:      "emp-1",
			Date:            "2025-03-04",
			CalculationMode: workday.ModeCombined,
			Segments: []workday.WorkSegment{
				{ID: "s1", Location: "Site B", StartTime: "22:00", EndTime: "06:00"},
			},
			RegularHours:   8,
			TotalBeforeVat: 420,
			TotalWithVat:   491.4,
		},
	}
	for i := range days {
		days[i].SyncLegacyFields()
	}
	return ExportData{
		Days:      days,
		Employer:  &emp,
		Employers: []employer.Employer{emp},
		Business: business.Details{
			Name:           "Solo Works",
			BusinessNumber: "514000000",
			Address:        "1 Main St",
			Phone:          "050-0000000",
			Email:          "owner@example.com",
			BankName:       "First Bank",
			BankBranch:     "001",
			BankAccount:    "123456",
		},
		Totals: Aggregate(days),
		From:   "2025-03-01",
		To:     "2025-03-31",
	}
}

func TestWritePDFProducesDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, exportFixture()); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected PDF output, got empty buffer")
	}
	if !strings.HasPrefix(buf.String(), "%PDF") {
		t.Fatalf("output does not look like a PDF, starts with %q", buf.String()[:8])
	}
}

func TestWritePDFWithDiscount(t *testing.T) {
	data := exportFixture()
	discount := Discount{Type: DiscountFixed, Value: 200, Reason: "loyal customer"}
	final := ApplyDiscount(data.Totals.BeforeVat, discount, 17)
	data.Discount = &discount
	data.Final = &final

	var buf bytes.Buffer
	if err := WritePDF(&buf, data); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected PDF output, got empty buffer")
	}
}

func TestWritePDFEmptyRange(t *testing.T) {
	data := ExportData{Business: business.Details{Name: "Solo Works"}}
	var buf bytes.Buffer
	if err := WritePDF(&buf, data); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected PDF output, got empty buffer")
	}
}

func TestWritePDFManyRowsPaginates(t *testing.T) {
	data := exportFixture()
	template := data.Days[0]
	days := make([]workday.WorkDay, 0, 80)
	for i := 0; i < 80; i++ {
		day := template
		day.ID = ""
		days = append(days, day)
	}
	data.Days = days
	data.Totals = Aggregate(days)

	var buf bytes.Buffer
	if err := WritePDF(&buf, data); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected PDF output, got empty buffer")
	}
}
