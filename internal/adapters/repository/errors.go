package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound         = errors.New("assessment not found")
	ErrMissingID        = errors.New("record id is required")
	ErrMissingCandidate = errors.New("candidate id is required")
	ErrBackend          = errors.New("store backend failure")
	ErrUnavailable      = errors.New("store temporarily unavailable")
)
