package stage

import (
	"image"
	"image/color"

	"github.com/rm-hull/image-convolution/internal/raster"
)

type GreyscaleStage struct{}

// Process converts the image to luma greyscale, keeping the alpha channel.
// Many of the edge kernels respond more cleanly to a single intensity channel.
func (s *GreyscaleStage) Process(p *raster.Raster) error {
	gs := image.NewNRGBA(p.Bounds)
	for y := p.Bounds.Min.Y; y < p.Bounds.Max.Y; y++ {
		for x := p.Bounds.Min.X; x < p.Bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(p.Img.At(x, y)).(color.NRGBA)
			// Reference: https://en.wikipedia.org/wiki/Grayscale#Luma_coding_in_video_systems
			lum := uint8(0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B))
			gs.SetNRGBA(x, y, color.NRGBA{lum, lum, lum, c.A})
		}
	}
	p.Img = gs
	return nil
}
