package service

import (
	"fmt"

	"github.com/okian/careerlens/internal/adapters/mq/queue"
)

// ErrNotStarted is returned by async operations before Start. It matches
// queue.ErrClosed.
var ErrNotStarted = fmt.Errorf("service not started: %w", queue.ErrClosed)

// Issue codes attached to degraded results.
const (
	IssueModelUnavailable          = "model_unavailable"
	IssueUnknownCategory           = "unknown_category"
	IssueExplainabilityUnavailable = "explainability_unavailable"
	IssueInternal                  = "internal"
)
