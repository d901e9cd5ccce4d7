package workdayshandler

import (
	"testing"

	"worklog/internal/domain/workday"
)

func TestPayloadValidation(t *testing.T) {
	payload := workDayPayload{
		EmployerID:      "emp-1",
		Date:            "2025-03-03",
		CalculationMode: workday.ModeCombined,
		Segments: []workday.WorkSegment{
			{Location: "Site A", StartTime: "08:00", EndTime: "20:00"},
		},
	}
	if v := payload.validate(); v.HasIssues() {
		t.Fatalf("unexpected issues: %v", v.Issues())
	}

	bad := workDayPayload{
		Date:            "03/03/2025",
		Kilometers:      -1,
		CalculationMode: "weird",
		Segments: []workday.WorkSegment{
			{CustomDailyRate: -50},
		},
	}
	v := bad.validate()
	if !v.HasIssues() {
		t.Fatal("expected issues")
	}
	if len(v.Issues()) != 5 {
		t.Fatalf("expected 5 issues, got %d: %v", len(v.Issues()), v.Issues())
	}
}

func TestPayloadToDayAssignsSegmentIDs(t *testing.T) {
	payload := workDayPayload{
		EmployerID:      "emp-1",
		Date:            "2025-03-03",
		CalculationMode: workday.ModeSeparate,
		Segments: []workday.WorkSegment{
			{Location: "Site A", StartTime: "08:00", EndTime: "14:00"},
			{ID: "keep-me", Location: "Site B", StartTime: "15:00", EndTime: "21:00"},
		},
	}
	day := payload.toDay("wd-1")

	if day.ID != "wd-1" {
		t.Fatalf("ID = %q, want wd-1", day.ID)
	}
	if day.Segments[0].ID == "" {
		t.Error("expected generated segment ID")
	}
	if day.Segments[1].ID != "keep-me" {
		t.Errorf("segment ID overwritten: %q", day.Segments[1].ID)
	}
	if day.Location != "Site A" || day.StartTime != "08:00" {
		t.Errorf("legacy mirror not synced: %q %q", day.Location, day.StartTime)
	}
}

func TestPayloadToDayLegacyShape(t *testing.T) {
	payload := workDayPayload{
		EmployerID: "emp-1",
		Date:       "2025-03-03",
		Location:   "Site A",
		StartTime:  "08:00",
		EndTime:    "20:00",
	}
	day := payload.toDay("wd-1")

	if len(day.Segments) != 1 {
		t.Fatalf("expected synthesized segment, got %d", len(day.Segments))
	}
	if day.CalculationMode != workday.ModeCombined {
		t.Errorf("CalculationMode = %q, want combined", day.CalculationMode)
	}
	if day.Segments[0].StartTime != "08:00" || day.Segments[0].EndTime != "20:00" {
		t.Errorf("segment times = %q-%q", day.Segments[0].StartTime, day.Segments[0].EndTime)
	}
}
