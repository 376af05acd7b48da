package suggest

import "errors"

// Sentinel kinds for suggestion lookups.
var (
	ErrLookup = errors.New("similarity lookup failed")
)
