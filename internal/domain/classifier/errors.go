package classifier

import "errors"

// Sentinel kinds for classifier errors.
var (
	ErrModelUnavailable = errors.New("career model unavailable")
	ErrInvalidArtifact  = errors.New("invalid model artifact")
	ErrDimension        = errors.New("feature dimension mismatch")
	ErrEmptyDataset     = errors.New("training dataset is empty")
)
