package stdimg

import (
	"errors"
	"image/color"
	"testing"
)

func TestInvertIsSelfInverse(t *testing.T) {
	src := makePatternBuffer(t, 9, 7)
	once := InvertColors(src)
	if once.Equal(src) {
		t.Fatalf("invert returned the source unchanged")
	}
	if !InvertColors(once).Equal(src) {
		t.Fatalf("invert(invert(buf)) != buf")
	}
	s, d := mustGet(t, src, 3, 2), mustGet(t, once, 3, 2)
	if d.R != 255-s.R || d.G != 255-s.G || d.B != 255-s.B || d.A != s.A {
		t.Fatalf("invert pixel %v -> %v", s, d)
	}
}

func TestGrayscale(t *testing.T) {
	b, err := LoadBuffer([]byte{10, 20, 31, 200, 10, 20, 32, 100}, 2, 1)
	if err != nil {
		t.Fatalf("LoadBuffer failed: %v", err)
	}
	g := GrayscaleAverage(b)
	if got := mustGet(t, g, 0, 0); got != (color.NRGBA{R: 20, G: 20, B: 20, A: 200}) {
		t.Fatalf("gray of (10,20,31) = %v", got)
	}
	if got := mustGet(t, g, 1, 0); got != (color.NRGBA{R: 21, G: 21, B: 21, A: 100}) {
		t.Fatalf("gray of (10,20,32) = %v", got)
	}
}

func TestGrayscaleIsIdempotent(t *testing.T) {
	once := GrayscaleAverage(makePatternBuffer(t, 8, 8))
	if !GrayscaleAverage(once).Equal(once) {
		t.Fatalf("grayscale(grayscale(buf)) != grayscale(buf)")
	}
}

func TestSepia(t *testing.T) {
	b, err := LoadBuffer([]byte{10, 20, 30, 40, 255, 255, 255, 255}, 2, 1)
	if err != nil {
		t.Fatalf("LoadBuffer failed: %v", err)
	}
	s := SepiaMatrix(b)
	if got := mustGet(t, s, 0, 0); got != (color.NRGBA{R: 25, G: 22, B: 17, A: 40}) {
		t.Fatalf("sepia of (10,20,30) = %v", got)
	}
	if got := mustGet(t, s, 1, 0); got != (color.NRGBA{R: 255, G: 255, B: 239, A: 255}) {
		t.Fatalf("sepia of white = %v", got)
	}
}

func TestTintPresets(t *testing.T) {
	src, err := LoadBuffer([]byte{200, 30, 250, 99, 10, 20, 30, 5}, 2, 1)
	if err != nil {
		t.Fatalf("LoadBuffer failed: %v", err)
	}
	cases := []struct {
		kind   ColorMapKind
		bright color.NRGBA
		dark   color.NRGBA
	}{
		{Sunset, color.NRGBA{R: 200, G: 250, B: 255, A: 99}, color.NRGBA{R: 10, G: 60, B: 42, A: 5}},
		{Haze, color.NRGBA{R: 255, G: 120, B: 255, A: 99}, color.NRGBA{R: 100, G: 110, B: 40, A: 5}},
		{Serenity, color.NRGBA{R: 210, G: 70, B: 255, A: 99}, color.NRGBA{R: 20, G: 60, B: 120, A: 5}},
		{Vintage, color.NRGBA{R: 255, G: 100, B: 255, A: 99}, color.NRGBA{R: 130, G: 90, B: 43, A: 5}},
		{Lemon, color.NRGBA{R: 200, G: 250, B: 250, A: 99}, color.NRGBA{R: 10, G: 60, B: 30, A: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			out, err := MapColors(src, tc.kind)
			if err != nil {
				t.Fatalf("MapColors failed: %v", err)
			}
			if got := mustGet(t, out, 0, 0); got != tc.bright {
				t.Errorf("bright pixel = %v, want %v", got, tc.bright)
			}
			if got := mustGet(t, out, 1, 0); got != tc.dark {
				t.Errorf("dark pixel = %v, want %v", got, tc.dark)
			}
		})
	}
}

func TestTintRejectsBadChannel(t *testing.T) {
	src := makeSolidBuffer(t, 1, 1, color.NRGBA{A: 255})
	if _, err := Tint(src, TintPreset{Name: "bad", GFrom: 3}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestMapColorsLeavesSourceUntouched(t *testing.T) {
	src := makePatternBuffer(t, 6, 5)
	keep := src.Clone()
	for k := Original; k <= Lemon; k++ {
		out, err := MapColors(src, k)
		if err != nil {
			t.Fatalf("%v failed: %v", k, err)
		}
		if out == src {
			t.Fatalf("%v returned the source buffer itself", k)
		}
		if !src.Equal(keep) {
			t.Fatalf("%v modified its source", k)
		}
	}
	orig, _ := MapColors(src, Original)
	if !orig.Equal(src) {
		t.Fatalf("original is not an identity copy")
	}
}
