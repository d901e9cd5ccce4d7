package workday

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"worklog/internal/domain/employer"
)

type HoursBreakdown struct {
	TotalHours    float64 `json:"totalHours"`
	RegularHours  float64 `json:"regularHours"`
	OvertimeHours float64 `json:"overtimeHours"`
}

type PaymentResult struct {
	TotalBeforeVat float64 `json:"totalBeforeVat"`
	TotalWithVat   float64 `json:"totalWithVat"`
	BonusesTotal   float64 `json:"bonusesTotal"`
	RegularHours   float64 `json:"regularHours"`
	OvertimeHours  float64 `json:"overtimeHours"`
}

// ComputeDuration returns the length in hours of a HH:MM clock interval.
// An end time earlier than the start is read as crossing midnight into the
// next day. Equal start and end is zero hours, never 24.
func ComputeDuration(startTime, endTime string) (float64, error) {
	start, err := parseClock(startTime)
	if err != nil {
		return 0, err
	}
	end, err := parseClock(endTime)
	if err != nil {
		return 0, err
	}
	if end < start {
		end += 24 * 60
	}
	return round2(float64(end-start) / 60), nil
}

func parseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	return hours*60 + minutes, nil
}

// AggregateHours sums segment durations and splits the total at the
// threshold. The sum is deliberately not an interval union: overlapping
// segments double-count. Each output field is rounded from its own precise
// value rather than derived by subtraction after rounding.
func AggregateHours(segments []WorkSegment, threshold float64) (HoursBreakdown, error) {
	durations, err := segmentDurations(segments)
	if err != nil {
		return HoursBreakdown{}, err
	}
	var total float64
	for _, d := range durations {
		total += d
	}
	return HoursBreakdown{
		TotalHours:    round2(total),
		RegularHours:  round2(math.Min(total, threshold)),
		OvertimeHours: round2(math.Max(0, total-threshold)),
	}, nil
}

// ComputePayment prices one work day against the employer's rate card.
//
// In separate mode every segment with a nonzero duration earns its own daily
// charge, at the segment's custom rate when one is set. Combined mode charges
// a single daily rate for the whole day, but degrades to the per-segment rule
// as soon as any segment carries a positive custom rate, so an explicit
// override is never silently discarded.
func ComputePayment(segments []WorkSegment, mode string, kilometers float64, emp *employer.Employer) (PaymentResult, error) {
	if emp == nil {
		return PaymentResult{}, ErrEmployerNotResolved
	}
	if len(segments) == 0 {
		return PaymentResult{}, nil
	}

	threshold := emp.DailyHours
	if threshold <= 0 {
		threshold = DefaultDailyHours
	}

	durations, err := segmentDurations(segments)
	if err != nil {
		return PaymentResult{}, err
	}
	hours, err := AggregateHours(segments, threshold)
	if err != nil {
		return PaymentResult{}, err
	}

	perSegment := mode == ModeSeparate
	if !perSegment {
		for _, seg := range segments {
			if seg.CustomDailyRate > 0 {
				perSegment = true
				break
			}
		}
	}

	var dailyPay float64
	if perSegment {
		for i, seg := range segments {
			if durations[i] <= 0 {
				continue
			}
			rate := emp.DailyRate
			if seg.CustomDailyRate > 0 {
				rate = seg.CustomDailyRate
			}
			dailyPay += rate
		}
	} else if hours.RegularHours > 0 {
		dailyPay = emp.DailyRate
	}

	overtimePay := hours.OvertimeHours * emp.OvertimeRate
	kmPay := kilometers * emp.KmRate

	var bonusesTotal float64
	for _, seg := range segments {
		for _, id := range seg.SelectedBonuses {
			if amount, ok := emp.BonusAmount(id); ok {
				bonusesTotal += amount
			}
		}
	}

	// Rounding happens only here, on the final outputs. Rounding the
	// intermediate adds would drift totals away from historical records.
	totalBeforeVat := dailyPay + overtimePay + kmPay + bonusesTotal
	totalWithVat := totalBeforeVat * (1 + emp.VatPercent/100)

	return PaymentResult{
		TotalBeforeVat: round2(totalBeforeVat),
		TotalWithVat:   round2(totalWithVat),
		BonusesTotal:   round2(bonusesTotal),
		RegularHours:   hours.RegularHours,
		OvertimeHours:  hours.OvertimeHours,
	}, nil
}

// Recompute refreshes the derived fields from the day's segments and the
// employer's current rate card.
func (d *WorkDay) Recompute(emp *employer.Employer) error {
	result, err := ComputePayment(d.Segments, d.CalculationMode, d.Kilometers, emp)
	if err != nil {
		return err
	}
	d.RegularHours = result.RegularHours
	d.OvertimeHours = result.OvertimeHours
	d.TotalBeforeVat = result.TotalBeforeVat
	d.TotalWithVat = result.TotalWithVat
	return nil
}

func segmentDurations(segments []WorkSegment) ([]float64, error) {
	durations := make([]float64, len(segments))
	for i, seg := range segments {
		duration, err := ComputeDuration(seg.StartTime, seg.EndTime)
		if err != nil {
			return nil, err
		}
		durations[i] = duration
	}
	return durations, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
