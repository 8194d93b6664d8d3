package convolve

import (
	"image"

	"golang.org/x/image/draw"
)

// Source is a pixel-addressable image. PixelAt must accept any coordinate,
// including ones outside the image.
type Source interface {
	Width() int
	Height() int
	PixelAt(x, y int) Pixel
}

// Image is a read-only Source backed by a decoded bitmap. Out-of-range reads
// are resolved through its Policy.
type Image struct {
	width, height int
	pix           []Pixel
	policy        Policy
}

func NewImage(img image.Image, policy Policy) *Image {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}

	w, h := b.Dx(), b.Dy()
	pix := make([]Pixel, w*h)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < w; x++ {
			s := row[x*4 : x*4+4 : x*4+4]
			pix[y*w+x] = Pixel{
				R: float32(s[0]) / 255,
				G: float32(s[1]) / 255,
				B: float32(s[2]) / 255,
				A: float32(s[3]) / 255,
			}
		}
	}

	return &Image{width: w, height: h, pix: pix, policy: policy}
}

func (img *Image) Width() int { return img.width }

func (img *Image) Height() int { return img.height }

func (img *Image) Policy() Policy { return img.policy }

// WithPolicy returns a view of the same pixels sampled through another policy.
func (img *Image) WithPolicy(p Policy) *Image {
	return &Image{width: img.width, height: img.height, pix: img.pix, policy: p}
}

func (img *Image) PixelAt(x, y int) Pixel {
	if x < 0 || y < 0 || x >= img.width || y >= img.height || img.policy == WrapLegacy {
		x, y = img.policy.Resolve(x, y, img.width, img.height)
	}
	return img.pix[y*img.width+x]
}
