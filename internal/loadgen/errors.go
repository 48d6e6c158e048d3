package loadgen

import "errors"

var (
	// ErrUnhealthy is returned when /healthz does not answer 200.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrUnsettled is returned when records are still pending after SettleTimeout.
	ErrUnsettled = errors.New("submissions did not settle")
	// ErrMismatch is returned when accepted, duplicate or analytics counts disagree.
	ErrMismatch = errors.New("verification mismatch")
)
