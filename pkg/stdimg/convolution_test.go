package stdimg

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// convolveReference is a direct transcription of the convolution definition
// using only the bounds-checked Buffer API.
func convolveReference(t *testing.T, src *Buffer, k Kernel) *Buffer {
	t.Helper()
	dst, err := NewBuffer(src.Width(), src.Height())
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	ar, ac := k.Anchor()
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			for c := 0; c < 4; c++ {
				acc := 0.0
				for kr := 0; kr < k.Rows(); kr++ {
					for kc := 0; kc < k.Cols(); kc++ {
						v, err := src.Channel(x+kc-ac, y+kr-ar, c)
						if err != nil {
							continue
						}
						acc += float64(v) * k.Weight(kr, kc)
					}
				}
				out := uint8(255)
				if c != 3 || !k.AlphaPassthrough() {
					out = uint8(math.Max(0, math.Min(255, math.RoundToEven(acc/k.Divisor()+k.Offset()))))
				}
				if err := dst.SetChannel(x, y, c, out); err != nil {
					t.Fatalf("SetChannel failed: %v", err)
				}
			}
		}
	}
	return dst
}

func TestConvolveIdentity(t *testing.T) {
	src := makePatternBuffer(t, 13, 9)
	out, err := Convolve(src, Identity())
	if err != nil {
		t.Fatalf("Convolve failed: %v", err)
	}
	if diff := cmp.Diff(src.Export(), out.Export()); diff != "" {
		t.Fatalf("identity kernel changed pixels (-want +got):\n%s", diff)
	}
}

func TestConvolveBoxBlurUniform(t *testing.T) {
	src := makeSolidBuffer(t, 5, 5, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
	out, err := Convolve(src, BoxBlurKernel())
	if err != nil {
		t.Fatalf("Convolve failed: %v", err)
	}
	for y := 1; y < 4; y++ {
		for x := 1; x < 4; x++ {
			if got := mustGet(t, out, x, y); got != (color.NRGBA{R: 50, G: 50, B: 50, A: 255}) {
				t.Fatalf("interior (%d,%d) = %v", x, y, got)
			}
		}
	}
	// corner: 4 of 9 taps in bounds, 200/9
	if got := mustGet(t, out, 0, 0); got != (color.NRGBA{R: 22, G: 22, B: 22, A: 255}) {
		t.Fatalf("corner = %v", got)
	}
	// edge: 6 of 9 taps, 300/9
	if got := mustGet(t, out, 2, 4); got != (color.NRGBA{R: 33, G: 33, B: 33, A: 255}) {
		t.Fatalf("edge = %v", got)
	}
}

func TestConvolveMatchesReference(t *testing.T) {
	// tall enough to be split into several bands
	src := makePatternBuffer(t, 37, 83)
	gauss, err := Gaussian(2, 1.5)
	if err != nil {
		t.Fatalf("Gaussian failed: %v", err)
	}
	offsetKernel, err := NewKernel([][]float64{{0, 1, 0}, {1, -4, 1}, {0, 1, 0}}, 2, 128, false)
	if err != nil {
		t.Fatalf("NewKernel failed: %v", err)
	}
	kernels := map[string]Kernel{
		"sharpen":        SharpenKernel(),
		"emboss":         EmbossKernel(),
		"focus5x5":       Focus5x5Kernel(),
		"gradientEmboss": GradientEmbossKernel(),
		"gaussian":       gauss,
		"offset":         offsetKernel,
	}
	for name, k := range kernels {
		t.Run(name, func(t *testing.T) {
			got, err := Convolve(src, k)
			if err != nil {
				t.Fatalf("Convolve failed: %v", err)
			}
			want := convolveReference(t, src, k)
			if diff := cmp.Diff(want.Export(), got.Export()); diff != "" {
				t.Fatalf("parallel convolution differs from reference (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvolveAlpha(t *testing.T) {
	src := makeSolidBuffer(t, 4, 4, color.NRGBA{R: 10, G: 10, B: 10, A: 90})
	opaque, err := Convolve(src, SharpenKernel())
	if err != nil {
		t.Fatalf("Convolve failed: %v", err)
	}
	if got := mustGet(t, opaque, 0, 0); got.A != 255 {
		t.Fatalf("passthrough alpha = %d, want 255", got.A)
	}
	blurred, err := Convolve(src, DefaultGaussian())
	if err != nil {
		t.Fatalf("Convolve failed: %v", err)
	}
	// zero padding pulls border alpha down when alpha is convolved
	if got := mustGet(t, blurred, 0, 0); got.A >= 90 {
		t.Fatalf("gaussian corner alpha = %d, want < 90", got.A)
	}
}

func TestConvolveDoesNotMutateSource(t *testing.T) {
	src := makePatternBuffer(t, 10, 10)
	keep := src.Clone()
	if _, err := Convolve(src, EdgeDetectionKernel()); err != nil {
		t.Fatalf("Convolve failed: %v", err)
	}
	if !src.Equal(keep) {
		t.Fatalf("Convolve modified its source")
	}
}

func TestConvolveErrors(t *testing.T) {
	if _, err := Convolve(makePatternBuffer(t, 2, 2), Kernel{}); !errors.Is(err, ErrInvalidKernel) {
		t.Fatalf("zero kernel: expected ErrInvalidKernel, got %v", err)
	}
	if _, err := Convolve(nil, Identity()); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("nil buffer: expected ErrInvalidParameter, got %v", err)
	}
	empty, _ := NewBuffer(0, 3)
	out, err := Convolve(empty, SharpenKernel())
	if err != nil || out.Width() != 0 || out.Height() != 3 {
		t.Fatalf("empty buffer: %v", err)
	}
}
