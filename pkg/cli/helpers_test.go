package cli

import (
	"image/color"
	"testing"

	"github.com/Fepozopo/picfx/pkg/stdimg"
)

// makeTestBuffer returns a w x h buffer with a deterministic gradient.
func makeTestBuffer(t *testing.T, w, h int) *stdimg.Buffer {
	t.Helper()
	b, err := stdimg.NewBuffer(w, h)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: uint8(100 + x + y), A: 255}
			if err := b.Set(x, y, c); err != nil {
				t.Fatalf("Set: %v", err)
			}
		}
	}
	return b
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PreviewMaxWidth = 0
	return cfg
}
