package stdimg

import (
	"fmt"
	"math"
)

// Brightness adds value to the R, G and B channels of every pixel in place,
// clamping to [0,255]. Alpha is untouched.
func Brightness(buf *Buffer, value int) error {
	if buf == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidParameter)
	}
	// anything beyond ±255 saturates every channel
	value = clampInt(value, -255, 255)
	for i := 0; i < len(buf.pix); i += 4 {
		buf.pix[i+0] = uint8(clampInt(int(buf.pix[i+0])+value, 0, 255))
		buf.pix[i+1] = uint8(clampInt(int(buf.pix[i+1])+value, 0, 255))
		buf.pix[i+2] = uint8(clampInt(int(buf.pix[i+2])+value, 0, 255))
	}
	return nil
}

// contrastFactor returns the contrast multiplier for value, which must lie in
// the open interval (-255, 259).
func contrastFactor(value int) (float64, error) {
	if value <= -255 || value >= 259 {
		return 0, fmt.Errorf("%w: contrast %d outside (-255, 259)", ErrInvalidParameter, value)
	}
	return 259 * float64(value+255) / (255 * float64(259-value)), nil
}

// Contrast scales the R, G and B channels around mid-gray (128) in place.
// value 0 is the identity. The buffer is left unchanged if value is rejected.
func Contrast(buf *Buffer, value int) error {
	if buf == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidParameter)
	}
	factor, err := contrastFactor(value)
	if err != nil {
		Logger().Warn("contrast rejected", "value", value)
		return err
	}
	var lut [256]uint8
	for c := range lut {
		lut[c] = toUint8(factor*float64(c-128) + 128)
	}
	for i := 0; i < len(buf.pix); i += 4 {
		buf.pix[i+0] = lut[buf.pix[i+0]]
		buf.pix[i+1] = lut[buf.pix[i+1]]
		buf.pix[i+2] = lut[buf.pix[i+2]]
	}
	return nil
}

// Saturation moves each of R, G and B away from (value > 1) or towards
// (value < 1) the pixel's largest channel. 0 collapses the pixel to that
// channel's gray and 1 is the identity.
func Saturation(buf *Buffer, value float64) error {
	if buf == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidParameter)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		Logger().Warn("saturation rejected", "value", value)
		return fmt.Errorf("%w: saturation %v", ErrInvalidParameter, value)
	}
	for i := 0; i < len(buf.pix); i += 4 {
		r, g, b := buf.pix[i+0], buf.pix[i+1], buf.pix[i+2]
		m := float64(max(r, g, b))
		buf.pix[i+0] = toUint8(m + (float64(r)-m)*value)
		buf.pix[i+1] = toUint8(m + (float64(g)-m)*value)
		buf.pix[i+2] = toUint8(m + (float64(b)-m)*value)
	}
	return nil
}
