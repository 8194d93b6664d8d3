package convolve

import (
	"errors"
	"fmt"
)

var ErrUnknownKernel = errors.New("unknown kernel")

// All selects every kernel in the catalog.
const All = "All"

// See https://en.wikipedia.org/wiki/Kernel_(image_processing)
var (
	EdgeDetection1 = mustKernel("EdgeDetection1", [][]float32{
		{1, 0, -1},
		{0, 0, 0},
		{-1, 0, 1},
	}, false)

	EdgeDetection2 = mustKernel("EdgeDetection2", [][]float32{
		{0, -1, 0},
		{-1, 4, -1},
		{0, -1, 0},
	}, false)

	EdgeDetection3 = mustKernel("EdgeDetection3", [][]float32{
		{-1, -1, -1},
		{-1, 8, -1},
		{-1, -1, -1},
	}, false)

	Sharpen = mustKernel("Sharpen", [][]float32{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	}, false)

	TopSobel = mustKernel("TopSobel", [][]float32{
		{1, 2, 1},
		{0, 0, 0},
		{-1, -2, -1},
	}, false)

	BottomSobel = mustKernel("BottomSobel", [][]float32{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}, false)

	LeftSobel = mustKernel("LeftSobel", [][]float32{
		{1, 0, -1},
		{2, 0, -2},
		{1, 0, -1},
	}, false)

	RightSobel = mustKernel("RightSobel", [][]float32{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}, false)

	Emboss = mustKernel("Emboss", [][]float32{
		{-2, -1, 0},
		{-1, 1, 1},
		{0, 1, 2},
	}, false)

	LaplacianGaussian5x5 = mustKernel("LaplacianGaussian5x5", [][]float32{
		{0, 0, -1, 0, 0},
		{0, -1, -2, -1, 0},
		{-1, -2, 16, -2, -1},
		{0, -1, -2, -1, 0},
		{0, 0, -1, 0, 0},
	}, false)

	BoxBlur = mustKernel("BoxBlur", [][]float32{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	}, true)

	GaussianBlur3x3 = mustKernel("GaussianBlur3x3", [][]float32{
		{1, 2, 1},
		{2, 4, 2},
		{1, 2, 1},
	}, true)

	GaussianBlur5x5 = mustKernel("GaussianBlur5x5", [][]float32{
		{1, 4, 6, 4, 1},
		{4, 16, 24, 16, 4},
		{6, 24, 36, 24, 6},
		{4, 16, 24, 16, 4},
		{1, 4, 6, 4, 1},
	}, true)

	UnsharpMasking5x5 = mustKernel("UnsharpMasking5x5", [][]float32{
		{1, 4, 6, 4, 1},
		{4, 16, 24, 16, 4},
		{6, 24, -476, 24, 6},
		{4, 16, 24, 16, 4},
		{1, 4, 6, 4, 1},
	}, true)
)

var catalog = []*Kernel{
	EdgeDetection1,
	EdgeDetection2,
	EdgeDetection3,
	Sharpen,
	TopSobel,
	BottomSobel,
	LeftSobel,
	RightSobel,
	Emboss,
	LaplacianGaussian5x5,
	BoxBlur,
	GaussianBlur3x3,
	GaussianBlur5x5,
	UnsharpMasking5x5,
}

// Older output files were named with these spellings.
var aliases = map[string]string{
	"TopSoble":    "TopSobel",
	"BottomSoble": "BottomSobel",
	"LeftSoble":   "LeftSobel",
	"RightSoble":  "RightSobel",
}

var byName = func() map[string]*Kernel {
	m := make(map[string]*Kernel, len(catalog))
	for _, k := range catalog {
		m[k.Name()] = k
	}
	return m
}()

// Kernels returns the catalog in its fixed order.
func Kernels() []*Kernel {
	return append([]*Kernel(nil), catalog...)
}

func Lookup(name string) (*Kernel, error) {
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	k, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
	}
	return k, nil
}

// Select resolves a kernel name, where All expands to the whole catalog.
func Select(name string) ([]*Kernel, error) {
	if name == All {
		return Kernels(), nil
	}
	k, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return []*Kernel{k}, nil
}
