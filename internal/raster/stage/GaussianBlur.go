package stage

import (
	"github.com/anthonynsimon/bild/blur"
	"github.com/rm-hull/image-convolution/internal/raster"
)

type GaussianBlurStage struct {
	Sigma float64
}

// Process applies a Gaussian blur to the image using the specified Sigma value.
// Used ahead of the edge kernels to suppress noise; a Sigma of zero is a no-op.
func (s *GaussianBlurStage) Process(p *raster.Raster) error {
	if s.Sigma <= 0 {
		return nil
	}
	p.Img = blur.Gaussian(p.Img, s.Sigma)
	p.Bounds = p.Img.Bounds()
	return nil
}
