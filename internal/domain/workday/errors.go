package workday

import "errors"

var (
	ErrInvalidTimeFormat   = errors.New("time must be in HH:MM format")
	ErrEmployerNotResolved = errors.New("work day references an unresolved employer")
	ErrNotFound            = errors.New("work day not found")
)
