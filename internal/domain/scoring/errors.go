package scoring

import "errors"

// Sentinel kinds for scoring errors. Callers use errors.Is.
var (
	// ErrInsufficientCandidates means fewer than three employees match the task.
	// It is a user-facing warning, not a failure.
	ErrInsufficientCandidates = errors.New("not enough employees for a team")
	ErrInvalidTopN            = errors.New("top n must be positive")
	ErrCandidatePoolTooLarge  = errors.New("candidate pool exceeds configured maximum")
)
