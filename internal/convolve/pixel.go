package convolve

import (
	"image/color"
)

// Pixel is a straight-alpha colour sample with float channels. Values are
// nominally in [0,1] but are left unclamped while a weighted sum is built up.
type Pixel struct {
	R, G, B, A float32
}

func PixelFromColor(c color.Color) Pixel {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

func (p Pixel) Add(o Pixel) Pixel {
	return Pixel{p.R + o.R, p.G + o.G, p.B + o.B, p.A + o.A}
}

func (p Pixel) Scale(f float32) Pixel {
	return Pixel{p.R * f, p.G * f, p.B * f, p.A * f}
}

func (p Pixel) Div(f float32) Pixel {
	return Pixel{p.R / f, p.G / f, p.B / f, p.A / f}
}

// ToColor is the only place channels are forced back into displayable range.
func (p Pixel) ToColor() color.NRGBA {
	return color.NRGBA{
		R: toByte(p.R),
		G: toByte(p.G),
		B: toByte(p.B),
		A: toByte(p.A),
	}
}

func toByte(v float32) uint8 {
	f := v * 255
	// NaN lands here too
	if !(f > 0) {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f)
}
