package explain

import "errors"

// Sentinel kinds for explanation errors.
var (
	ErrExplainabilityUnavailable = errors.New("model does not support attribution")
	ErrTooManyFeatures           = errors.New("too many features for exact attribution")
)
