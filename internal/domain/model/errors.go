package model

import "errors"

// Sentinel kinds for model validation errors.
var (
	ErrUnsupportedMethod = errors.New("unsupported similarity method")
)
