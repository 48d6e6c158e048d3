package cli

import "errors"

// ErrMissingInput is returned when a command has nothing to read.
var ErrMissingInput = errors.New("missing input")
