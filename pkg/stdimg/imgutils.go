package stdimg

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// FromImage converts any image.Image to a Buffer anchored at the origin.
// *image.NRGBA sources are copied row by row; everything else goes through
// draw.Src so premultiplied sources are un-premultiplied correctly.
func FromImage(src image.Image) *Buffer {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := &Buffer{width: w, height: h, pix: make([]uint8, w*h*4)}
	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			i := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.pix[y*w*4:(y+1)*w*4], n.Pix[i:i+w*4])
		}
		return out
	}
	draw.Draw(out.NRGBA(), out.Bounds(), src, b.Min, draw.Src)
	return out
}

// ToNRGBA returns a copy of the buffer as a standalone *image.NRGBA.
func ToNRGBA(b *Buffer) *image.NRGBA {
	if b == nil {
		return nil
	}
	return b.Clone().NRGBA()
}

// clampInt clamps v to [lo,hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloatToUint8(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// toUint8 rounds v to the nearest integer, halves to even, and clamps it to
// [0,255].
func toUint8(v float64) uint8 {
	return uint8(clampFloatToUint8(math.RoundToEven(v)))
}
