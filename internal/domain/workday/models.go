package workday

import "time"

type WorkSegment struct {
	ID              string   `json:"id"`
	Location        string   `json:"location"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	CustomDailyRate float64  `json:"customDailyRate,omitempty"`
	SelectedBonuses []string `json:"selectedBonuses,omitempty"`
}

type WorkDay struct {
	ID              string        `json:"id"`
	EmployerID      string        `json:"employerId"`
	Date            string        `json:"date"`
	Kilometers      float64       `json:"kilometers"`
	CalculationMode string        `json:"calculationMode"`
	Segments        []WorkSegment `json:"segments"`

	// Legacy single-segment mirror fields. Records written before
	// multi-segment support carry only these; newer records derive them
	// from Segments on every save so stored JSON stays readable by old
	// clients. They are never authoritative when Segments is non-empty.
	Location        string   `json:"location"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	CustomDailyRate float64  `json:"customDailyRate,omitempty"`
	SelectedBonuses []string `json:"selectedBonuses"`

	RegularHours   float64 `json:"regularHours"`
	OvertimeHours  float64 `json:"overtimeHours"`
	TotalBeforeVat float64 `json:"totalBeforeVat"`
	TotalWithVat   float64 `json:"totalWithVat"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Normalize makes Segments the single source of truth. A legacy record with
// no segments gets one synthesized from its flat fields, an empty calculation
// mode falls back to combined, and the mirror fields are refreshed.
func (d *WorkDay) Normalize() {
	if len(d.Segments) == 0 && (d.StartTime != "" || d.EndTime != "") {
		d.Segments = []WorkSegment{{
			Location:        d.Location,
			StartTime:       d.StartTime,
			EndTime:         d.EndTime,
			CustomDailyRate: d.CustomDailyRate,
			SelectedBonuses: d.SelectedBonuses,
		}}
	}
	if d.CalculationMode != ModeCombined && d.CalculationMode != ModeSeparate {
		d.CalculationMode = ModeCombined
	}
	d.SyncLegacyFields()
}

// SyncLegacyFields mirrors segment 0 into the flat fields and collects the
// union of selected bonus IDs across all segments.
func (d *WorkDay) SyncLegacyFields() {
	if len(d.Segments) == 0 {
		return
	}
	first := d.Segments[0]
	d.Location = first.Location
	d.StartTime = first.StartTime
	d.EndTime = first.EndTime
	d.CustomDailyRate = first.CustomDailyRate
	d.SelectedBonuses = d.BonusIDUnion()
}

// BonusIDUnion returns the distinct bonus IDs selected across all segments,
// in first-seen order.
func (d *WorkDay) BonusIDUnion() []string {
	seen := make(map[string]bool)
	union := make([]string, 0)
	for _, seg := range d.Segments {
		for _, id := range seg.SelectedBonuses {
			if seen[id] {
				continue
			}
			seen[id] = true
			union = append(union, id)
		}
	}
	return union
}
