package dataset

import "errors"

// Sentinel kinds for dataset errors. These allow errors.Is from callers.
var (
	ErrLoadDataset   = errors.New("load dataset failed")
	ErrUnknownColumn = errors.New("unknown dataset column")
)
