package shared

import "time"

// ValidDate reports whether value is a real calendar date in YYYY-MM-DD
// form. Dates travel through the API as strings so range filters can compare
// them lexicographically.
func ValidDate(value string) bool {
	if value == "" {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

// ValidMonth reports whether value is a YYYY-MM month prefix.
func ValidMonth(value string) bool {
	if value == "" {
		return false
	}
	_, err := time.Parse("2006-01", value)
	return err == nil
}
