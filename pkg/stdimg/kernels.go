package stdimg

import (
	"fmt"
	"math"
)

// Default Gaussian parameters, matching the legacy blur strength.
const (
	DefaultGaussianRadius = 5
	DefaultGaussianSigma  = 2.0
)

// MaxGaussianRadius bounds Gaussian; larger radii would allocate
// (2r+1)^2 weights.
const MaxGaussianRadius = 50

// Kernel is an immutable convolution matrix with odd dimensions. Its anchor
// is the center cell. The zero Kernel is invalid.
type Kernel struct {
	rows, cols       int
	weights          []float64 // row-major
	divisor          float64
	offset           float64
	alphaPassthrough bool
}

// NewKernel validates and copies weights. Every row must have the same odd
// length, the row count must be odd, and divisor must be finite and nonzero.
// With alphaPassthrough the alpha channel of every output pixel is 255
// instead of being convolved.
func NewKernel(weights [][]float64, divisor, offset float64, alphaPassthrough bool) (Kernel, error) {
	rows := len(weights)
	if rows == 0 || rows%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: %d rows, want a positive odd count", ErrInvalidKernel, rows)
	}
	cols := len(weights[0])
	if cols == 0 || cols%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: %d columns, want a positive odd count", ErrInvalidKernel, cols)
	}
	if divisor == 0 || math.IsNaN(divisor) || math.IsInf(divisor, 0) {
		return Kernel{}, fmt.Errorf("%w: divisor %v", ErrInvalidKernel, divisor)
	}
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		return Kernel{}, fmt.Errorf("%w: offset %v", ErrInvalidKernel, offset)
	}
	flat := make([]float64, 0, rows*cols)
	for r, row := range weights {
		if len(row) != cols {
			return Kernel{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidKernel, r, len(row), cols)
		}
		for _, w := range row {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return Kernel{}, fmt.Errorf("%w: non-finite weight in row %d", ErrInvalidKernel, r)
			}
		}
		flat = append(flat, row...)
	}
	return Kernel{
		rows:             rows,
		cols:             cols,
		weights:          flat,
		divisor:          divisor,
		offset:           offset,
		alphaPassthrough: alphaPassthrough,
	}, nil
}

// mustKernel is for the fixed catalog only.
func mustKernel(weights [][]float64, divisor float64) Kernel {
	k, err := NewKernel(weights, divisor, 0, true)
	if err != nil {
		panic(err)
	}
	return k
}

// Accessors for the kernel's shape and parameters. Weight panics if (r, c)
// lies outside Rows() x Cols().
func (k Kernel) Rows() int               { return k.rows }
func (k Kernel) Cols() int               { return k.cols }
func (k Kernel) Divisor() float64        { return k.divisor }
func (k Kernel) Offset() float64         { return k.offset }
func (k Kernel) AlphaPassthrough() bool  { return k.alphaPassthrough }
func (k Kernel) Anchor() (row, col int)  { return k.rows / 2, k.cols / 2 }
func (k Kernel) Weight(r, c int) float64 { return k.weights[r*k.cols+c] }

// Weights returns a copy of the matrix.
func (k Kernel) Weights() [][]float64 {
	out := make([][]float64, k.rows)
	for r := range out {
		out[r] = append([]float64(nil), k.weights[r*k.cols:(r+1)*k.cols]...)
	}
	return out
}

// Valid reports whether k was built by NewKernel or the catalog.
func (k Kernel) Valid() bool {
	return k.rows > 0 && k.cols > 0 && k.divisor != 0 && len(k.weights) == k.rows*k.cols
}

// Identity returns the 1x1 kernel [[1]]. Convolving with it returns the
// source unchanged (alpha included).
func Identity() Kernel {
	k, _ := NewKernel([][]float64{{1}}, 1, 0, false)
	return k
}

var (
	sharpenKernel = mustKernel([][]float64{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	}, 1)

	edgeDetectionKernel = mustKernel([][]float64{
		{-1, -1, -1},
		{-1, 8, -1},
		{-1, -1, -1},
	}, 1)

	boxBlurKernel = mustKernel([][]float64{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	}, 9)

	focusKernel = mustKernel([][]float64{
		{-1, 0, -1},
		{0, 7, 0},
		{-1, 0, -1},
	}, 1)

	embossKernel = mustKernel([][]float64{
		{-2, -1, 0},
		{-1, 1, 1},
		{0, 1, 2},
	}, 1)

	focus5x5Kernel = mustKernel([][]float64{
		{-1, -1, -1, -1, -1},
		{-1, 1, 1, 1, -1},
		{-1, 1, 8, 1, -1},
		{-1, 1, 1, 1, -1},
		{-1, -1, -1, -1, -1},
	}, 1)

	gradientEmbossKernel = mustKernel([][]float64{
		{-2, -2, -2, -2, -2},
		{-1, -1, -1, -1, -1},
		{0, 0, 0, 0, 0},
		{1, 1, 1, 1, 1},
		{2, 2, 2, 2, 2},
	}, 1)
)

// Catalog kernels. Each returns the shared immutable 3x3 or 5x5 matrix with
// divisor 1 (9 for box blur), offset 0 and alpha passthrough.
func SharpenKernel() Kernel        { return sharpenKernel }
func EdgeDetectionKernel() Kernel  { return edgeDetectionKernel }
func BoxBlurKernel() Kernel        { return boxBlurKernel }
func FocusKernel() Kernel          { return focusKernel }
func EmbossKernel() Kernel         { return embossKernel }
func Focus5x5Kernel() Kernel       { return focus5x5Kernel }
func GradientEmbossKernel() Kernel { return gradientEmbossKernel }

var kernelCatalog = map[string]func() Kernel{
	"sharpen":        SharpenKernel,
	"edgeDetection":  EdgeDetectionKernel,
	"boxBlur":        BoxBlurKernel,
	"focus":          FocusKernel,
	"emboss":         EmbossKernel,
	"focus5x5":       Focus5x5Kernel,
	"gradientEmboss": GradientEmbossKernel,
	"gaussianBlur":   DefaultGaussian,
}

// LookupKernel returns the catalog kernel registered under name.
func LookupKernel(name string) (Kernel, bool) {
	f, ok := kernelCatalog[name]
	if !ok {
		return Kernel{}, false
	}
	return f(), true
}

// Gaussian returns a (2*radius+1) square kernel with weights
// exp(-((i-radius)^2+(j-radius)^2) / (2*sigma^2)) normalized to sum to 1.
// radius must lie in [0, MaxGaussianRadius] and sigma must be positive.
// Divisor is 1, offset 0, and alpha is convolved like any other channel.
func Gaussian(radius int, sigma float64) (Kernel, error) {
	if radius < 0 || radius > MaxGaussianRadius {
		return Kernel{}, fmt.Errorf("%w: gaussian radius %d outside [0, %d]", ErrInvalidParameter, radius, MaxGaussianRadius)
	}
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return Kernel{}, fmt.Errorf("%w: gaussian sigma %v", ErrInvalidParameter, sigma)
	}
	size := radius*2 + 1
	weights := make([][]float64, size)
	sum := 0.0
	for i := 0; i < size; i++ {
		weights[i] = make([]float64, size)
		for j := 0; j < size; j++ {
			d := float64((i-radius)*(i-radius) + (j-radius)*(j-radius))
			weights[i][j] = math.Exp(-d / (2 * sigma * sigma))
			sum += weights[i][j]
		}
	}
	// normalize
	for i := range weights {
		for j := range weights[i] {
			weights[i][j] /= sum
		}
	}
	return NewKernel(weights, 1, 0, false)
}

// DefaultGaussian is Gaussian(DefaultGaussianRadius, DefaultGaussianSigma).
func DefaultGaussian() Kernel {
	k, _ := Gaussian(DefaultGaussianRadius, DefaultGaussianSigma)
	return k
}
