package workday

import "testing"

func TestNormalizeSynthesizesSegmentFromLegacyFields(t *testing.T) {
	day := &WorkDay{
		Location:        "Tel Aviv",
		StartTime:       "08:00",
		EndTime:         "17:00",
		CustomDailyRate: 350,
		SelectedBonuses: []string{"b1"},
	}

	day.Normalize()

	if len(day.Segments) != 1 {
		t.Fatalf("expected one synthesized segment, got %d", len(day.Segments))
	}
	seg := day.Segments[0]
	if seg.Location != "Tel Aviv" || seg.StartTime != "08:00" || seg.EndTime != "17:00" {
		t.Fatalf("segment does not mirror legacy fields: %+v", seg)
	}
	if seg.CustomDailyRate != 350 {
		t.Fatalf("expected custom rate 350, got %v", seg.CustomDailyRate)
	}
	if len(seg.SelectedBonuses) != 1 || seg.SelectedBonuses[0] != "b1" {
		t.Fatalf("expected bonuses carried over, got %v", seg.SelectedBonuses)
	}
	if day.CalculationMode != ModeCombined {
		t.Fatalf("expected combined default mode, got %q", day.CalculationMode)
	}
}

func TestSyncLegacyFieldsMirrorsFirstSegmentAndBonusUnion(t *testing.T) {
	day := &WorkDay{
		CalculationMode: ModeSeparate,
		Segments: []WorkSegment{
			{Location: "Haifa", StartTime: "06:00", EndTime: "12:00", SelectedBonuses: []string{"b1", "b2"}},
			{Location: "Acre", StartTime: "14:00", EndTime: "20:00", SelectedBonuses: []string{"b2", "b3"}},
		},
	}

	day.Normalize()

	if day.Location != "Haifa" || day.StartTime != "06:00" || day.EndTime != "12:00" {
		t.Fatalf("legacy fields should mirror segment 0, got %q %q-%q", day.Location, day.StartTime, day.EndTime)
	}
	union := day.SelectedBonuses
	if len(union) != 3 || union[0] != "b1" || union[1] != "b2" || union[2] != "b3" {
		t.Fatalf("expected deduplicated bonus union [b1 b2 b3], got %v", union)
	}
}

func TestNormalizeKeepsExplicitMode(t *testing.T) {
	day := &WorkDay{
		CalculationMode: ModeSeparate,
		Segments:        []WorkSegment{{StartTime: "08:00", EndTime: "12:00"}},
	}
	day.Normalize()
	if day.CalculationMode != ModeSeparate {
		t.Fatalf("expected separate mode preserved, got %q", day.CalculationMode)
	}
}

func TestNormalizeEmptyDay(t *testing.T) {
	day := &WorkDay{}
	day.Normalize()
	if len(day.Segments) != 0 {
		t.Fatalf("expected no segments for an empty day, got %d", len(day.Segments))
	}
}
