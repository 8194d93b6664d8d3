package convolve

import (
	"errors"
	"fmt"
)

var ErrInvalidKernel = errors.New("invalid kernel")

// Kernel is an immutable weight matrix with odd dimensions. weights[i][j]
// holds the weight applied to the sample at offset (i-a, j-b) from the
// centre, so the outer index runs along x.
type Kernel struct {
	name      string
	weights   [][]float32
	a, b      int
	normalize bool
	sum       float32
	factor    float32
}

func NewKernel(name string, weights [][]float32, normalize bool) (*Kernel, error) {
	w := len(weights)
	if w == 0 || len(weights[0]) == 0 {
		return nil, fmt.Errorf("%w: %s: empty matrix", ErrInvalidKernel, name)
	}
	h := len(weights[0])
	if w%2 == 0 || h%2 == 0 {
		return nil, fmt.Errorf("%w: %s: dimensions must be odd, got %dx%d", ErrInvalidKernel, name, w, h)
	}

	k := &Kernel{
		name:      name,
		weights:   make([][]float32, w),
		a:         w / 2,
		b:         h / 2,
		normalize: normalize,
		factor:    1,
	}
	for i, col := range weights {
		if len(col) != h {
			return nil, fmt.Errorf("%w: %s: ragged matrix at index %d", ErrInvalidKernel, name, i)
		}
		k.weights[i] = append([]float32(nil), col...)
		for _, v := range col {
			k.sum += v
		}
	}

	// a zero-sum kernel (edge detectors) keeps a factor of 1
	if normalize && k.sum != 0 {
		k.factor = 1 / k.sum
	}
	return k, nil
}

func mustKernel(name string, weights [][]float32, normalize bool) *Kernel {
	k, err := NewKernel(name, weights, normalize)
	if err != nil {
		panic(err)
	}
	return k
}

func (k *Kernel) Name() string { return k.name }

// Size returns the extent along x and y.
func (k *Kernel) Size() (int, int) { return len(k.weights), len(k.weights[0]) }

func (k *Kernel) Normalized() bool { return k.normalize }

func (k *Kernel) Sum() float32 { return k.sum }

// Factor is 1/Sum for normalized kernels with a non-zero sum, otherwise 1.
func (k *Kernel) Factor() float32 { return k.factor }

// ValueAt is defined for dx in [-a,a] and dy in [-b,b].
func (k *Kernel) ValueAt(dx, dy int) float32 {
	return k.weights[dx+k.a][dy+k.b]
}

// Weights returns a copy of the matrix.
func (k *Kernel) Weights() [][]float32 {
	out := make([][]float32, len(k.weights))
	for i, col := range k.weights {
		out[i] = append([]float32(nil), col...)
	}
	return out
}

// Convolution returns the weighted sum of the neighbourhood around (x, y).
// The result is not clamped.
func (k *Kernel) Convolution(src Source, x, y int) Pixel {
	var sum Pixel
	for dx := -k.a; dx <= k.a; dx++ {
		for dy := -k.b; dy <= k.b; dy++ {
			sum = sum.Add(src.PixelAt(x+dx, y+dy).Scale(k.ValueAt(dx, dy)))
		}
	}
	if k.normalize {
		sum = sum.Scale(k.factor)
	}
	return sum
}

func (k *Kernel) String() string {
	w, h := k.Size()
	return fmt.Sprintf("%s(%dx%d)", k.name, w, h)
}
