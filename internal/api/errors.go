package api

import (
	"errors"
	"fmt"
)

// Failure phases surfaced to callers. Transient fetch failures during
// polling are not part of this taxonomy; the poller retries those.
var (
	ErrPresignFailed        = errors.New("presign failed")
	ErrUploadFailed         = errors.New("upload failed")
	ErrJobCreationFailed    = errors.New("job creation failed")
	ErrActionCreationFailed = errors.New("action creation failed")
	ErrRegistrationFailed   = errors.New("image registration failed")
	ErrPreconditionFailed   = errors.New("precondition failed")
	ErrCrawlCreationFailed  = errors.New("crawl creation failed")
)

// StatusError is a non-2xx backend response. Body keeps the raw payload
// for diagnostics; Message is the human-readable part when the backend
// sent structured JSON.
type StatusError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}
