package ranking

import "errors"

var (
	// ErrInvalidMinSimilarity is returned for thresholds outside 0..1000.
	ErrInvalidMinSimilarity = errors.New("minimum similarity must be between 0 and 1000")

	// ErrInvalidLimit is returned for negative result limits.
	ErrInvalidLimit = errors.New("result limit must not be negative")
)
