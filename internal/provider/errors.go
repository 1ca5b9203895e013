package provider

import (
	"errors"
	"fmt"

	"kwaigrab/internal/httputil"
)

// ErrValidation is the parent of every input error reported before any
// network call is made.
var ErrValidation = errors.New("invalid input")

var (
	ErrMissingURL      = fmt.Errorf("%w: url is required", ErrValidation)
	ErrUnsupportedHost = fmt.Errorf("%w: url is not a Kwai link", ErrValidation)
)

// ErrVideoNotFound means the page was fetched but no strategy located a video.
var ErrVideoNotFound = errors.New("video not found on page")

// UpstreamError wraps any failure talking to the origin server.
type UpstreamError struct {
	URL        string
	StatusCode int // Zero when no response was received
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s: %v", e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NewUpstreamError wraps a transport or status failure for url, lifting the
// response status when err carries one.
func NewUpstreamError(url string, err error) *UpstreamError {
	ue := &UpstreamError{URL: url, Err: err}
	var se *httputil.StatusError
	if errors.As(err, &se) {
		ue.StatusCode = se.StatusCode
	}
	return ue
}
