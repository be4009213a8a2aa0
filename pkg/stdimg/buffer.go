package stdimg

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
)

// Buffer is a width x height grid of 8-bit non-premultiplied RGBA pixels
// stored row-major in a flat slice (R,G,B,A per pixel).
//
// Buffer never clamps: values written through Set or SetChannel are stored
// as given, so transforms clamp their arithmetic before storing.
type Buffer struct {
	width  int
	height int
	pix    []uint8
}

// NewBuffer returns a zeroed (transparent black) buffer of the given size.
func NewBuffer(width, height int) (*Buffer, error) {
	n, err := pixLen(width, height)
	if err != nil {
		return nil, err
	}
	return &Buffer{width: width, height: height, pix: make([]uint8, n)}, nil
}

// LoadBuffer copies raw RGBA bytes into a new buffer. raw must hold exactly
// width*height*4 bytes.
func LoadBuffer(raw []byte, width, height int) (*Buffer, error) {
	n, err := pixLen(width, height)
	if err != nil {
		return nil, err
	}
	if len(raw) != n {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d, want %d", ErrInvalidParameter, len(raw), width, height, n)
	}
	pix := make([]uint8, n)
	copy(pix, raw)
	return &Buffer{width: width, height: height, pix: pix}, nil
}

func pixLen(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("%w: negative size %dx%d", ErrInvalidParameter, width, height)
	}
	if width > 0 && height > math.MaxInt/4/width {
		return 0, fmt.Errorf("%w: size %dx%d overflows", ErrInvalidParameter, width, height)
	}
	return width * height * 4, nil
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Bounds returns the buffer rectangle anchored at the origin.
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// offset returns the index of the first channel of (x,y) or an error when the
// coordinate is outside the buffer.
func (b *Buffer) offset(x, y int) (int, error) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, fmt.Errorf("%w: pixel (%d,%d) outside %dx%d", ErrIndexOutOfRange, x, y, b.width, b.height)
	}
	return (y*b.width + x) * 4, nil
}

// Get returns the four channels at (x,y).
func (b *Buffer) Get(x, y int) (color.NRGBA, error) {
	i, err := b.offset(x, y)
	if err != nil {
		return color.NRGBA{}, err
	}
	return color.NRGBA{R: b.pix[i], G: b.pix[i+1], B: b.pix[i+2], A: b.pix[i+3]}, nil
}

// Set stores c at (x,y).
func (b *Buffer) Set(x, y int, c color.NRGBA) error {
	i, err := b.offset(x, y)
	if err != nil {
		return err
	}
	b.pix[i+0] = c.R
	b.pix[i+1] = c.G
	b.pix[i+2] = c.B
	b.pix[i+3] = c.A
	return nil
}

// Channel returns channel c (0=R, 1=G, 2=B, 3=A) at (x,y).
func (b *Buffer) Channel(x, y, c int) (uint8, error) {
	i, err := b.offset(x, y)
	if err != nil {
		return 0, err
	}
	if c < 0 || c > 3 {
		return 0, fmt.Errorf("%w: channel %d", ErrIndexOutOfRange, c)
	}
	return b.pix[i+c], nil
}

// SetChannel stores v into channel c at (x,y).
func (b *Buffer) SetChannel(x, y, c int, v uint8) error {
	i, err := b.offset(x, y)
	if err != nil {
		return err
	}
	if c < 0 || c > 3 {
		return fmt.Errorf("%w: channel %d", ErrIndexOutOfRange, c)
	}
	b.pix[i+c] = v
	return nil
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}
	pix := make([]uint8, len(b.pix))
	copy(pix, b.pix)
	return &Buffer{width: b.width, height: b.height, pix: pix}
}

// Export returns a copy of the raw RGBA bytes.
func (b *Buffer) Export() []byte {
	out := make([]byte, len(b.pix))
	copy(out, b.pix)
	return out
}

// Equal reports whether b and o have the same size and pixels.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.width == o.width && b.height == o.height && bytes.Equal(b.pix, o.pix)
}

// NRGBA returns an *image.NRGBA view sharing b's pixels. Writes through the
// view are visible in b.
func (b *Buffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{Pix: b.pix, Stride: 4 * b.width, Rect: b.Bounds()}
}

// CSS formats the pixel at (x,y) as a CSS rgba() color with alpha in 0..1,
// e.g. "rgba(255, 128, 0, 0.5019607843137255)".
func (b *Buffer) CSS(x, y int) (string, error) {
	c, err := b.Get(x, y)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %v)", c.R, c.G, c.B, float64(c.A)/255), nil
}
