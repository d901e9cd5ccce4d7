package employer

import "time"

type Bonus struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type Employer struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DailyRate    float64   `json:"dailyRate"`
	DailyHours   float64   `json:"dailyHours"`
	OvertimeRate float64   `json:"overtimeRate"`
	KmRate       float64   `json:"kmRate"`
	VatPercent   float64   `json:"vatPercent"`
	Bonuses      []Bonus   `json:"bonuses"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BonusAmount resolves a bonus by ID from the employer's catalog. Work days
// store bonus IDs rather than snapshots, so edits to the catalog change
// historical totals until the affected days are recomputed.
func (e *Employer) BonusAmount(id string) (float64, bool) {
	for _, b := range e.Bonuses {
		if b.ID == id {
			return b.Amount, true
		}
	}
	return 0, false
}

func (e *Employer) BonusName(id string) (string, bool) {
	for _, b := range e.Bonuses {
		if b.ID == id {
			return b.Name, true
		}
	}
	return "", false
}
