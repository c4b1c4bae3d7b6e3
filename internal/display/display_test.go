package display

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
)

func TestMemSinkKeepsLatestFrame(t *testing.T) {
	sink := NewMemSink(64, 32)

	if got := sink.Bounds(); got.Dx() != 64 || got.Dy() != 32 {
		t.Fatalf("unexpected bounds %v", got)
	}
	if sink.Frame() != nil {
		t.Fatal("expected no frame before first push")
	}

	first := image.NewRGBA(sink.Bounds())
	second := image.NewRGBA(sink.Bounds())
	if err := sink.Push(first); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := sink.Push(second); err != nil {
		t.Fatalf("push: %v", err)
	}

	if sink.Frame() != second {
		t.Fatal("expected the most recent frame")
	}
	if got := sink.Pushes(); got != 2 {
		t.Fatalf("expected 2 pushes, got %d", got)
	}
}

func TestPNGSinkWritesFrame(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewPNGSink(64, 32, dir)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}

	frame := image.NewRGBA(sink.Bounds())
	frame.Set(10, 10, color.RGBA{R: 255, A: 255})
	if err := sink.Push(frame); err != nil {
		t.Fatalf("push: %v", err)
	}

	f, err := os.Open(sink.Path())
	if err != nil {
		t.Fatalf("open frame file: %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if got := decoded.Bounds(); got.Dx() != 64 || got.Dy() != 32 {
		t.Fatalf("unexpected decoded bounds %v", got)
	}
	r, _, _, _ := decoded.At(10, 10).RGBA()
	if r == 0 {
		t.Fatal("expected the red pixel to survive the round trip")
	}
}

func TestPNGSinkLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewPNGSink(8, 8, dir)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	if err := sink.Push(image.NewRGBA(sink.Bounds())); err != nil {
		t.Fatalf("push: %v", err)
	}
	if _, err := os.Stat(sink.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("expected the temp file to be renamed away")
	}
}
