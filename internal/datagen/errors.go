package datagen

import "errors"

// Sentinel errors for the generator and the smoke runner.
var (
	ErrInvalidConfig = errors.New("invalid generator config")
	ErrWriteTable    = errors.New("write table failed")
	ErrUnhealthy     = errors.New("service unhealthy")
	ErrSmokeFailed   = errors.New("smoke checks failed")
)
