package taxonomy

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrInvalidProfile = errors.New("career profile must have a name")
	ErrLoadCatalog    = errors.New("load career catalog failed")
)
