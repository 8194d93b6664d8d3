package stage

import (
	"fmt"
	"image"

	"github.com/rm-hull/image-convolution/internal/raster"
	"golang.org/x/image/draw"
)

type ResampleStage struct {
	Width int
}

// Process scales the image to Width pixels across with Catmull-Rom
// resampling, keeping the aspect ratio. Images already that width or narrower
// are left alone, so large inputs can be brought down before the more
// expensive kernel passes.
func (s *ResampleStage) Process(p *raster.Raster) error {
	if s.Width < 0 {
		return fmt.Errorf("invalid resample width %d", s.Width)
	}
	w, h := p.Bounds.Dx(), p.Bounds.Dy()
	if s.Width == 0 || w <= s.Width {
		return nil
	}

	height := max(1, h*s.Width/w)
	dst := image.NewNRGBA(image.Rect(0, 0, s.Width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), p.Img, p.Bounds, draw.Src, nil)
	p.Img = dst
	p.Bounds = dst.Bounds()
	return nil
}
