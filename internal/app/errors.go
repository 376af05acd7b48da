package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotConfigured  = errors.New("service missing required stores")
	ErrNoGroup        = errors.New("no group context")
	ErrInvalidMapping = errors.New("invalid mapping")
)
