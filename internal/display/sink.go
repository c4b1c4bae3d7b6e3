// Package display delivers rendered frames to an output surface. The
// hardware matrix itself is owned by the host runtime; these sinks cover
// development and testing.
package display

import (
	"image"
	"sync"
)

// Sink receives rendered frames. Push is called once per render tick with
// a frame matching Bounds.
type Sink interface {
	Bounds() image.Rectangle
	Push(frame *image.RGBA) error
}

// MemSink keeps the most recent frame in memory.
type MemSink struct {
	mu     sync.Mutex
	bounds image.Rectangle
	frame  *image.RGBA
	pushes int
}

// NewMemSink constructs a sink for a w x h surface.
func NewMemSink(w, h int) *MemSink {
	return &MemSink{bounds: image.Rect(0, 0, w, h)}
}

func (s *MemSink) Bounds() image.Rectangle { return s.bounds }

func (s *MemSink) Push(frame *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = frame
	s.pushes++
	return nil
}

// Frame returns the most recently pushed frame, or nil.
func (s *MemSink) Frame() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Pushes returns the number of frames received.
func (s *MemSink) Pushes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pushes
}
