package mapping

import "errors"

// Sentinel kinds for mapping validation errors.
var (
	ErrEmptyDisplayName = errors.New("mapping display name must not be empty")
	ErrNoCriteria       = errors.New("mapping must absorb at least one criterion")
)
