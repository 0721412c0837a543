package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFlipRGBA(t *testing.T) {
	// 1x2 image: bottom row red, top row blue, in GL order.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipRGBA(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FlipRGBA failed: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top pixel: got %v, want blue", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom pixel: got %v, want red", got)
	}

	if _, err := FlipRGBA(pixels[:5], 1, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestSaveRGBA(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshots(dir, "controlshape")
	s.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 5, 0, time.UTC) }

	path, err := s.SaveRGBA(make([]byte, 4*3*2), 3, 2)
	if err != nil {
		t.Fatalf("SaveRGBA failed: %v", err)
	}
	want := filepath.Join(dir, "controlshape_2024-03-01_12-30-05.png")
	if path != want {
		t.Errorf("path: got %s, want %s", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("size: got %dx%d, want 3x2", b.Dx(), b.Dy())
	}
}
