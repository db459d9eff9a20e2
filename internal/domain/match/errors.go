package match

import "errors"

// Sentinel kinds for matcher errors.
var (
	ErrEmptyDataset = errors.New("matcher requires a non-empty dataset")
	ErrInvalidTopK  = errors.New("top-k must be positive")
	ErrNoMatch      = errors.New("no match found")
)
