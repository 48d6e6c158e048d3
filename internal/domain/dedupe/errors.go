package dedupe

import "errors"

// Sentinel kinds for dedupe errors.
var (
	ErrBackend   = errors.New("dedupe backend failed")
	ErrDuplicate = errors.New("submission already received")
)
