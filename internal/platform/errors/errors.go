package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
	ErrMalformedSession    = errors.New("malformed session")
	ErrInvalidDayBoundary  = errors.New("invalid day boundary")
	ErrGoalNotSet          = errors.New("wearing goal is not set")
)
