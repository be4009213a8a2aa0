package stdimg

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestBrightnessExample(t *testing.T) {
	raw := []byte{
		10, 20, 30, 255, 40, 50, 60, 255,
		70, 80, 90, 255, 100, 110, 120, 255,
	}
	b, err := LoadBuffer(raw, 2, 2)
	if err != nil {
		t.Fatalf("LoadBuffer failed: %v", err)
	}
	if err := Brightness(b, 10); err != nil {
		t.Fatalf("Brightness failed: %v", err)
	}
	want := []byte{
		20, 30, 40, 255, 50, 60, 70, 255,
		80, 90, 100, 255, 110, 120, 130, 255,
	}
	got := b.Export()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d (got %v)", i, got[i], want[i], got)
		}
	}
}

func TestBrightnessClampsAndKeepsAlpha(t *testing.T) {
	b := makeSolidBuffer(t, 2, 1, color.NRGBA{R: 250, G: 5, B: 128, A: 17})
	if err := Brightness(b, 10); err != nil {
		t.Fatalf("Brightness failed: %v", err)
	}
	if got := mustGet(t, b, 0, 0); got != (color.NRGBA{R: 255, G: 15, B: 138, A: 17}) {
		t.Fatalf("after +10: %v", got)
	}
	if err := Brightness(b, -20); err != nil {
		t.Fatalf("Brightness failed: %v", err)
	}
	if got := mustGet(t, b, 1, 0); got != (color.NRGBA{R: 235, G: 0, B: 118, A: 17}) {
		t.Fatalf("after -20: %v", got)
	}
}

func TestBrightnessIsCumulative(t *testing.T) {
	a := makePatternBuffer(t, 5, 5)
	b := a.Clone()
	for _, step := range []int{10, 10} {
		if err := Brightness(a, step); err != nil {
			t.Fatalf("Brightness failed: %v", err)
		}
	}
	if err := Brightness(b, 20); err != nil {
		t.Fatalf("Brightness failed: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("two +10 steps differ from one +20 step")
	}
}

func TestAdjustmentIdentities(t *testing.T) {
	src := makePatternBuffer(t, 7, 6)

	b := src.Clone()
	if err := Brightness(b, 0); err != nil || !b.Equal(src) {
		t.Fatalf("brightness(0) changed the buffer (err=%v)", err)
	}
	c := src.Clone()
	if err := Contrast(c, 0); err != nil || !c.Equal(src) {
		t.Fatalf("contrast(0) changed the buffer (err=%v)", err)
	}
	s := src.Clone()
	if err := Saturation(s, 1); err != nil || !s.Equal(src) {
		t.Fatalf("saturation(1) changed the buffer (err=%v)", err)
	}
}

func TestContrastValues(t *testing.T) {
	b, err := LoadBuffer([]byte{0, 128, 138, 9, 255, 128, 138, 9}, 2, 1)
	if err != nil {
		t.Fatalf("LoadBuffer failed: %v", err)
	}
	if err := Contrast(b, 100); err != nil {
		t.Fatalf("Contrast failed: %v", err)
	}
	// factor = 259*355 / (255*159) ~= 2.2677
	if got := mustGet(t, b, 0, 0); got != (color.NRGBA{R: 0, G: 128, B: 151, A: 9}) {
		t.Fatalf("pixel 0 = %v", got)
	}
	if got := mustGet(t, b, 1, 0); got.R != 255 {
		t.Fatalf("pixel 1 red = %d, want 255", got.R)
	}
}

func TestContrastRejectsOutOfRange(t *testing.T) {
	src := makePatternBuffer(t, 3, 3)
	for _, v := range []int{-255, -300, 259, 400} {
		b := src.Clone()
		if err := Contrast(b, v); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("Contrast(%d): expected ErrInvalidParameter, got %v", v, err)
		}
		if !b.Equal(src) {
			t.Fatalf("Contrast(%d) modified the buffer before failing", v)
		}
	}
	for _, v := range []int{-254, 258} {
		if err := Contrast(src.Clone(), v); err != nil {
			t.Fatalf("Contrast(%d) should be accepted: %v", v, err)
		}
	}
}

func TestSaturation(t *testing.T) {
	cases := []struct {
		value float64
		want  color.NRGBA
	}{
		{0, color.NRGBA{R: 200, G: 200, B: 200, A: 77}},
		{0.5, color.NRGBA{R: 150, G: 125, B: 200, A: 77}},
		{2, color.NRGBA{R: 0, G: 0, B: 200, A: 77}},
	}
	for _, tc := range cases {
		b := makeSolidBuffer(t, 1, 1, color.NRGBA{R: 100, G: 50, B: 200, A: 77})
		if err := Saturation(b, tc.value); err != nil {
			t.Fatalf("Saturation(%v) failed: %v", tc.value, err)
		}
		if got := mustGet(t, b, 0, 0); got != tc.want {
			t.Errorf("Saturation(%v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

// Halfway results round to even, as a clamped 8-bit store does.
func TestSaturationRoundsHalfToEven(t *testing.T) {
	b := makeSolidBuffer(t, 1, 1, color.NRGBA{R: 100, G: 101, B: 0, A: 255})
	if err := Saturation(b, 0.5); err != nil {
		t.Fatalf("Saturation failed: %v", err)
	}
	// 100.5 -> 100, 50.5 -> 50
	if got := mustGet(t, b, 0, 0); got != (color.NRGBA{R: 100, G: 101, B: 50, A: 255}) {
		t.Fatalf("Saturation(0.5) of (100,101,0) = %v", got)
	}
}

func TestToUint8(t *testing.T) {
	cases := map[float64]uint8{
		-3: 0, 0.5: 0, 1.5: 2, 2.5: 2, 127.49: 127, 254.5: 254, 255.5: 255, 300: 255,
	}
	for in, want := range cases {
		if got := toUint8(in); got != want {
			t.Errorf("toUint8(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestSaturationRejectsNonFinite(t *testing.T) {
	src := makePatternBuffer(t, 2, 2)
	b := src.Clone()
	if err := Saturation(b, math.NaN()); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if !b.Equal(src) {
		t.Fatalf("rejected saturation modified the buffer")
	}
}

func TestAdjustNilBuffer(t *testing.T) {
	if err := Brightness(nil, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Brightness(nil): %v", err)
	}
	if err := Contrast(nil, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Contrast(nil): %v", err)
	}
	if err := Saturation(nil, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Saturation(nil): %v", err)
	}
}
