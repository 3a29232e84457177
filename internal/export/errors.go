package export

import "errors"

var (
	// ErrNoOutputDir is returned when a request names no output directory.
	ErrNoOutputDir = errors.New("output directory not set")
	// ErrWriteFailed wraps failures writing an export artifact.
	ErrWriteFailed = errors.New("write failed")
)
