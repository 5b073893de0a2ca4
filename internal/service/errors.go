package service

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when an upstream answers 2xx with a body of the wrong shape
var ErrMalformedResponse = errors.New("malformed upstream response")

// UpstreamError is a transport failure or a non-2xx answer from an upstream API
type UpstreamError struct {
	Upstream   string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed with status %d: %s", e.Upstream, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s request failed: %v", e.Upstream, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstreamError reports whether err is or wraps an *UpstreamError
func IsUpstreamError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
