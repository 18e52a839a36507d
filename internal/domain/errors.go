package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration signals invalid or missing required configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrGeneration signals that the generative oracle failed or returned unusable output.
	ErrGeneration = errors.New("generation failed")
	// ErrOracleUnavailable signals that the generative oracle could not be reached.
	ErrOracleUnavailable = errors.New("generative oracle unavailable")
	// ErrContentLimitExceeded signals a content request above the hard cap.
	ErrContentLimitExceeded = errors.New("content limit exceeded")
	// ErrSearchEngine signals a failed indexing or search operation.
	ErrSearchEngine = errors.New("search engine error")
	// ErrValidation signals a data invariant violation surfaced to the caller.
	ErrValidation = errors.New("validation failed")
)

// MaxContents is the hard cap on a single content generation request.
const MaxContents = 1000

// ContentLimitError wraps ErrContentLimitExceeded with the offending request size.
type ContentLimitError struct {
	Requested int
}

func (e *ContentLimitError) Error() string {
	return fmt.Sprintf("%s: requested %d, limit is %d",
		ErrContentLimitExceeded.Error(), e.Requested, MaxContents)
}

func (e *ContentLimitError) Unwrap() error { return ErrContentLimitExceeded }

// NewContentLimit creates a content limit error for the given request size.
func NewContentLimit(requested int) error {
	return &ContentLimitError{Requested: requested}
}
