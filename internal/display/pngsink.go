package display

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

const frameFileName = "frame.png"

// PNGSink writes the latest frame to disk as a PNG so the output can be
// inspected without matrix hardware. Writes go through a temp file and
// rename so a reader never observes a half-written frame.
type PNGSink struct {
	bounds image.Rectangle
	dir    string
}

// NewPNGSink constructs a sink for a w x h surface rooted at dir.
func NewPNGSink(w, h int, dir string) (*PNGSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &PNGSink{
		bounds: image.Rect(0, 0, w, h),
		dir:    dir,
	}, nil
}

func (s *PNGSink) Bounds() image.Rectangle { return s.bounds }

func (s *PNGSink) Push(frame *image.RGBA) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return err
	}

	target := filepath.Join(s.dir, frameFileName)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

// Path returns the location of the current frame file.
func (s *PNGSink) Path() string {
	return filepath.Join(s.dir, frameFileName)
}
