package providers

import (
	"errors"
	"fmt"
)

// ErrProviderUnavailable indicates a decorator was constructed without an
// inner provider.
var ErrProviderUnavailable = errors.New("provider unavailable")

// UpstreamError captures a non-success response from the upstream API.
type UpstreamError struct {
	League     string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "upstream request failed"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status=%d)", e.League, msg, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.League, msg)
}

// AsUpstreamError attempts to unwrap an error into an UpstreamError.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var uErr *UpstreamError
	if errors.As(err, &uErr) {
		return uErr, true
	}
	return nil, false
}
