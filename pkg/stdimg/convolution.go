package stdimg

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minBandRows keeps tiny images on a single goroutine.
const minBandRows = 16

// Convolve applies k to every pixel of src and returns a new buffer of the
// same size. Taps that fall outside src contribute nothing (zero padding).
// Each channel is acc/divisor + offset, rounded and clamped to [0,255]; with
// alpha passthrough the output alpha is 255. src is never modified.
//
// Rows are split into bands computed concurrently; every output pixel only
// reads src, so the result matches a serial pass exactly.
func Convolve(src *Buffer, k Kernel) (*Buffer, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidParameter)
	}
	if !k.Valid() {
		return nil, fmt.Errorf("%w: uninitialized kernel", ErrInvalidKernel)
	}
	dst := &Buffer{width: src.width, height: src.height, pix: make([]uint8, len(src.pix))}
	if src.height == 0 || src.width == 0 {
		return dst, nil
	}

	workers := runtime.GOMAXPROCS(0)
	bands := (src.height + minBandRows - 1) / minBandRows
	if bands > workers {
		bands = workers
	}
	rowsPerBand := (src.height + bands - 1) / bands
	Logger().Debug("convolve", "width", src.width, "height", src.height,
		"kernel", fmt.Sprintf("%dx%d", k.rows, k.cols), "bands", bands)

	var g errgroup.Group
	for y0 := 0; y0 < src.height; y0 += rowsPerBand {
		y0 := y0
		y1 := min(y0+rowsPerBand, src.height)
		g.Go(func() error {
			convolveRows(dst, src, k, y0, y1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}

// convolveRows fills rows [y0,y1) of dst.
func convolveRows(dst, src *Buffer, k Kernel, y0, y1 int) {
	anchorRow, anchorCol := k.Anchor()
	w, h := src.width, src.height
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			var acc [4]float64
			for kr := 0; kr < k.rows; kr++ {
				sy := y + kr - anchorRow
				if sy < 0 || sy >= h {
					continue
				}
				for kc := 0; kc < k.cols; kc++ {
					sx := x + kc - anchorCol
					if sx < 0 || sx >= w {
						continue
					}
					wgt := k.weights[kr*k.cols+kc]
					if wgt == 0 {
						continue
					}
					i := (sy*w + sx) * 4
					acc[0] += float64(src.pix[i+0]) * wgt
					acc[1] += float64(src.pix[i+1]) * wgt
					acc[2] += float64(src.pix[i+2]) * wgt
					acc[3] += float64(src.pix[i+3]) * wgt
				}
			}
			o := (y*w + x) * 4
			dst.pix[o+0] = toUint8(acc[0]/k.divisor + k.offset)
			dst.pix[o+1] = toUint8(acc[1]/k.divisor + k.offset)
			dst.pix[o+2] = toUint8(acc[2]/k.divisor + k.offset)
			if k.alphaPassthrough {
				dst.pix[o+3] = 255
			} else {
				dst.pix[o+3] = toUint8(acc[3]/k.divisor + k.offset)
			}
		}
	}
}
