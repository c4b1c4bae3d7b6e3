// Package testutil holds small helpers shared by the package tests:
// buffered loggers, fixed clocks, HTTP stubs, and game fixtures.
package testutil

import (
	"bytes"
	"log/slog"
	"time"
)

// NewBufferLogger returns a debug-level slog logger writing into a buffer
// so tests can assert on emitted log lines.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), &buf
}

// NowAt returns a clock function pinned to the given instant.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MustParseRFC3339 parses an RFC3339 timestamp, panicking on bad input.
// Test-only convenience for literal timestamps.
func MustParseRFC3339(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}
