package repository

import "errors"

// Sentinel kinds for username store errors.
var (
	ErrOpenStore     = errors.New("open username store failed")
	ErrEmptyUsername = errors.New("empty username")
)
