package stdimg

import (
	"fmt"
	"math"
)

// ColorMapKind names a fixed per-pixel color transform.
type ColorMapKind int

const (
	Original ColorMapKind = iota
	Invert
	Grayscale
	Sepia
	Sunset
	Haze
	Serenity
	Vintage
	Lemon
)

var colorMapNames = [...]string{
	Original:  "original",
	Invert:    "inverted",
	Grayscale: "grayscale",
	Sepia:     "sepia",
	Sunset:    "sunset",
	Haze:      "haze",
	Serenity:  "serenity",
	Vintage:   "vintage",
	Lemon:     "lemon",
}

func (k ColorMapKind) String() string {
	if k < 0 || int(k) >= len(colorMapNames) {
		return fmt.Sprintf("ColorMapKind(%d)", int(k))
	}
	return colorMapNames[k]
}

// TintPreset is a fixed additive tint. Each output channel is the source
// channel named by its *From field plus the offset, clamped to [0,255].
type TintPreset struct {
	Name                string
	RFrom, GFrom, BFrom int
	R, G, B             int
}

// Tint presets. Sunset and lemon derive green from the red channel.
var (
	SunsetTint   = TintPreset{Name: "sunset", RFrom: 0, GFrom: 0, BFrom: 2, R: 0, G: 50, B: 12}
	HazeTint     = TintPreset{Name: "haze", RFrom: 0, GFrom: 1, BFrom: 2, R: 90, G: 90, B: 10}
	SerenityTint = TintPreset{Name: "serenity", RFrom: 0, GFrom: 1, BFrom: 2, R: 10, G: 40, B: 90}
	VintageTint  = TintPreset{Name: "vintage", RFrom: 0, GFrom: 1, BFrom: 2, R: 120, G: 70, B: 13}
	LemonTint    = TintPreset{Name: "lemon", RFrom: 0, GFrom: 0, BFrom: 2, R: 0, G: 50, B: 0}
)

// mapPixels applies fn to the R, G and B channels of every pixel of src and
// returns the result as a new buffer. Alpha is copied.
func mapPixels(src *Buffer, fn func(r, g, b uint8) (uint8, uint8, uint8)) *Buffer {
	out := &Buffer{width: src.width, height: src.height, pix: make([]uint8, len(src.pix))}
	for i := 0; i < len(src.pix); i += 4 {
		out.pix[i+0], out.pix[i+1], out.pix[i+2] = fn(src.pix[i+0], src.pix[i+1], src.pix[i+2])
		out.pix[i+3] = src.pix[i+3]
	}
	return out
}

// InvertColors returns 255-c for every color channel of src.
func InvertColors(src *Buffer) *Buffer {
	return mapPixels(src, func(r, g, b uint8) (uint8, uint8, uint8) {
		return 255 - r, 255 - g, 255 - b
	})
}

// GrayscaleAverage sets R, G and B to the rounded mean of the three.
func GrayscaleAverage(src *Buffer) *Buffer {
	return mapPixels(src, func(r, g, b uint8) (uint8, uint8, uint8) {
		avg := toUint8((float64(r) + float64(g) + float64(b)) / 3)
		return avg, avg, avg
	})
}

// SepiaMatrix applies the classic sepia matrix, capping each channel at 255.
func SepiaMatrix(src *Buffer) *Buffer {
	return mapPixels(src, func(r, g, b uint8) (uint8, uint8, uint8) {
		fr, fg, fb := float64(r), float64(g), float64(b)
		return uint8(math.Min(math.RoundToEven(0.393*fr+0.769*fg+0.189*fb), 255)),
			uint8(math.Min(math.RoundToEven(0.349*fr+0.686*fg+0.168*fb), 255)),
			uint8(math.Min(math.RoundToEven(0.272*fr+0.534*fg+0.131*fb), 255))
	})
}

// Tint applies an additive tint preset.
func Tint(src *Buffer, t TintPreset) (*Buffer, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidParameter)
	}
	for _, from := range [3]int{t.RFrom, t.GFrom, t.BFrom} {
		if from < 0 || from > 2 {
			return nil, fmt.Errorf("%w: tint %q reads channel %d", ErrInvalidParameter, t.Name, from)
		}
	}
	return mapPixels(src, func(r, g, b uint8) (uint8, uint8, uint8) {
		ch := [3]int{int(r), int(g), int(b)}
		return uint8(clampInt(ch[t.RFrom]+t.R, 0, 255)),
			uint8(clampInt(ch[t.GFrom]+t.G, 0, 255)),
			uint8(clampInt(ch[t.BFrom]+t.B, 0, 255))
	}), nil
}

// MapColors applies the color map named by kind to src and returns a new
// buffer. src is never modified. Unknown kinds return a copy of src.
func MapColors(src *Buffer, kind ColorMapKind) (*Buffer, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidParameter)
	}
	switch kind {
	case Invert:
		return InvertColors(src), nil
	case Grayscale:
		return GrayscaleAverage(src), nil
	case Sepia:
		return SepiaMatrix(src), nil
	case Sunset:
		return Tint(src, SunsetTint)
	case Haze:
		return Tint(src, HazeTint)
	case Serenity:
		return Tint(src, SerenityTint)
	case Vintage:
		return Tint(src, VintageTint)
	case Lemon:
		return Tint(src, LemonTint)
	default:
		return src.Clone(), nil
	}
}
