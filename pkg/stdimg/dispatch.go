package stdimg

import (
	"fmt"
	"math"
)

// AdjustKind names a cumulative in-place adjustment.
type AdjustKind int

const (
	AdjustBrightness AdjustKind = iota
	AdjustContrast
	AdjustSaturation
)

func (k AdjustKind) String() string {
	switch k {
	case AdjustBrightness:
		return "brightness"
	case AdjustContrast:
		return "contrast"
	case AdjustSaturation:
		return "saturation"
	}
	return fmt.Sprintf("AdjustKind(%d)", int(k))
}

// FilterSpec is one of Adjustment, ColorMap or Convolution.
type FilterSpec interface {
	isFilterSpec()
}

// Adjustment mutates the current buffer in place. Brightness and contrast
// round Value to the nearest integer; saturation uses it as a factor.
type Adjustment struct {
	Kind  AdjustKind
	Value float64
}

// ColorMap recomputes a fixed per-pixel transform from the original buffer.
type ColorMap struct {
	Kind ColorMapKind
}

// Convolution recomputes a kernel convolution from the original buffer.
type Convolution struct {
	Kernel Kernel
}

func (Adjustment) isFilterSpec()  {}
func (ColorMap) isFilterSpec()    {}
func (Convolution) isFilterSpec() {}

// ApplyAdjustment applies kind to buf in place. On error buf is unchanged.
func ApplyAdjustment(buf *Buffer, kind AdjustKind, value float64) error {
	if kind != AdjustSaturation && !(math.Abs(value) <= math.MaxInt32) {
		return fmt.Errorf("%w: %v %v", ErrInvalidParameter, kind, value)
	}
	switch kind {
	case AdjustBrightness:
		return Brightness(buf, int(math.Round(value)))
	case AdjustContrast:
		return Contrast(buf, int(math.Round(value)))
	case AdjustSaturation:
		return Saturation(buf, value)
	default:
		return fmt.Errorf("%w: unknown adjustment %v", ErrInvalidParameter, kind)
	}
}

// Dispatch routes spec to its engine. Adjustments mutate current in place
// and return it; color maps and convolutions read original and return a new
// buffer. A nil spec yields a copy of original.
func Dispatch(original, current *Buffer, spec FilterSpec) (*Buffer, error) {
	switch s := spec.(type) {
	case Adjustment:
		Logger().Debug("dispatch adjustment", "kind", s.Kind.String(), "value", s.Value)
		if err := ApplyAdjustment(current, s.Kind, s.Value); err != nil {
			return nil, err
		}
		return current, nil
	case ColorMap:
		Logger().Debug("dispatch color map", "kind", s.Kind.String())
		return MapColors(original, s.Kind)
	case Convolution:
		Logger().Debug("dispatch convolution", "rows", s.Kernel.Rows(), "cols", s.Kernel.Cols())
		return Convolve(original, s.Kernel)
	case nil:
		return MapColors(original, Original)
	default:
		return nil, fmt.Errorf("%w: unsupported filter spec %T", ErrInvalidParameter, spec)
	}
}

var colorMapIDs = map[string]ColorMapKind{
	"original":  Original,
	"inverted":  Invert,
	"invert":    Invert,
	"grayscale": Grayscale,
	"sepia":     Sepia,
	"sunset":    Sunset,
	"haze":      Haze,
	"serenity":  Serenity,
	"vintage":   Vintage,
	"lemon":     Lemon,
}

// ParseFilter resolves a filter id (e.g. "sepia", "boxBlur", "gaussianBlur")
// to its FilterSpec.
func ParseFilter(id string) (FilterSpec, bool) {
	if kind, ok := colorMapIDs[id]; ok {
		return ColorMap{Kind: kind}, true
	}
	if k, ok := LookupKernel(id); ok {
		return Convolution{Kernel: k}, true
	}
	return nil, false
}

// ApplyFilter recomputes the filter named id from original and returns the
// result. Unrecognized ids fall back to a copy of original.
func ApplyFilter(original *Buffer, id string) (*Buffer, error) {
	if original == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidParameter)
	}
	spec, ok := ParseFilter(id)
	if !ok {
		Logger().Debug("unknown filter, using original", "id", id)
		spec = ColorMap{Kind: Original}
	}
	return Dispatch(original, nil, spec)
}
