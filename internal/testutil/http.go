package testutil

import "net/http"

// RoundTripperFunc adapts a function to http.RoundTripper for stubbing
// upstream responses in tests.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper.
func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
