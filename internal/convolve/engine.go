package convolve

import (
	"context"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Engine runs a kernel over every pixel of a Source.
type Engine struct {
	// Workers bounds the number of row bands processed at once. Values below
	// one use every CPU.
	Workers int
}

func (e Engine) workers() int {
	if e.Workers < 1 {
		return runtime.NumCPU()
	}
	return e.Workers
}

// Process writes k.Convolution(src, x, y) for every pixel into a new raster
// of the same size. src is only read, so it may be shared between concurrent
// calls.
func (e Engine) Process(ctx context.Context, src Source, k *Kernel) (*image.NRGBA, error) {
	w, h := src.Width(), src.Height()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst, nil
	}

	workers := min(e.workers(), h)
	band := (h + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < h; start += band {
		stop := min(start+band, h)
		g.Go(func() error {
			for y := start; y < stop; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				row := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
				for x := 0; x < w; x++ {
					c := k.Convolution(src, x, y).ToColor()
					row[x*4+0] = c.R
					row[x*4+1] = c.G
					row[x*4+2] = c.B
					row[x*4+3] = c.A
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}
