package loadgen

import "time"

// Submission outcomes.
const (
	outcomeAccepted  = "accepted"
	outcomeDuplicate = "duplicate"
	outcomeRejected  = "rejected"
	outcomeFailed    = "failed"
)

// Defaults applied to zero Config fields.
const (
	defaultWorkers       = 8
	defaultTimeout       = 10 * time.Second
	defaultSettleTimeout = 2 * time.Minute
	defaultPollInterval  = 250 * time.Millisecond
	filePermission       = 0o600
)
