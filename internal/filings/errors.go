package filings

import "errors"

var (
	ErrNotFound          = errors.New("filing not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
)
