package workday

const (
	ModeCombined = "combined"
	ModeSeparate = "separate"

	// DefaultDailyHours is the overtime threshold used when an employer
	// does not configure one.
	DefaultDailyHours = 12.0
)
