package repository

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrStorage     = errors.New("storage failure")
	ErrMissingID   = errors.New("record id must not be empty")
	ErrMissingDate = errors.New("record date must not be zero")
)
