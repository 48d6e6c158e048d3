package model

import "errors"

// Sentinel kinds shared by the domain packages.
var (
	ErrEmptyInput   = errors.New("empty input")
	ErrInvalidInput = errors.New("invalid input")
)
