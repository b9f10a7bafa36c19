package repository

import "errors"

// Sentinel kinds for table loading errors.
var (
	ErrLoadTable      = errors.New("load table failed")
	ErrMissingColumn  = errors.New("missing required column")
	ErrMalformedValue = errors.New("malformed value")
)
