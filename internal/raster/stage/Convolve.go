package stage

import (
	"context"

	"github.com/rm-hull/image-convolution/internal/convolve"
	"github.com/rm-hull/image-convolution/internal/raster"
)

type ConvolveStage struct {
	Kernel *convolve.Kernel
	Policy convolve.Policy
	Engine convolve.Engine
}

// Process replaces the image with the result of a single kernel pass, so that
// kernels can be chained (e.g. GaussianBlur3x3 ahead of EdgeDetection3).
func (s *ConvolveStage) Process(p *raster.Raster) error {
	src := convolve.NewImage(p.Img, s.Policy)
	out, err := s.Engine.Process(context.Background(), src, s.Kernel)
	if err != nil {
		return err
	}
	p.Img = out
	p.Bounds = out.Bounds()
	return nil
}
