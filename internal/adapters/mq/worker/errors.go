package worker

import "errors"

// ErrAssessPanic marks a job whose assessment panicked.
var ErrAssessPanic = errors.New("assessment panicked")
