package stdimg

import (
	"image/color"
	"testing"
)

func makeSolidBuffer(t *testing.T, w, h int, c color.NRGBA) *Buffer {
	t.Helper()
	b, err := NewBuffer(w, h)
	if err != nil {
		t.Fatalf("NewBuffer(%d, %d) failed: %v", w, h, err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if err := b.Set(x, y, c); err != nil {
				t.Fatalf("Set(%d, %d) failed: %v", x, y, err)
			}
		}
	}
	return b
}

// makePatternBuffer fills every channel (alpha included) with a deterministic
// non-uniform pattern.
func makePatternBuffer(t *testing.T, w, h int) *Buffer {
	t.Helper()
	raw := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			for c := 0; c < 4; c++ {
				raw[i+c] = uint8((x*7 + y*13 + c*31 + x*y) % 256)
			}
		}
	}
	b, err := LoadBuffer(raw, w, h)
	if err != nil {
		t.Fatalf("LoadBuffer failed: %v", err)
	}
	return b
}

func mustGet(t *testing.T, b *Buffer, x, y int) color.NRGBA {
	t.Helper()
	c, err := b.Get(x, y)
	if err != nil {
		t.Fatalf("Get(%d, %d) failed: %v", x, y, err)
	}
	return c
}
