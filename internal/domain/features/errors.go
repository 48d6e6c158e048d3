package features

import "errors"

// ErrUnknownCategory is returned when an interest label is outside the vocabulary.
var ErrUnknownCategory = errors.New("unknown interest category")
