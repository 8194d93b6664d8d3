package convolve

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewImage(t *testing.T) {
	t.Run("offset bounds are rebased to the origin", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(10, 20, 13, 22))
		src.Set(10, 20, color.RGBA{255, 0, 0, 255})
		src.Set(12, 21, color.RGBA{0, 0, 255, 255})

		img := NewImage(src, Extend)
		assert.Equal(t, 3, img.Width())
		assert.Equal(t, 2, img.Height())
		assert.Equal(t, Pixel{1, 0, 0, 1}, img.PixelAt(0, 0))
		assert.Equal(t, Pixel{0, 0, 1, 1}, img.PixelAt(2, 1))
	})

	t.Run("grey input", func(t *testing.T) {
		src := image.NewGray(image.Rect(0, 0, 1, 1))
		src.SetGray(0, 0, color.Gray{Y: 255})
		assert.Equal(t, Pixel{1, 1, 1, 1}, NewImage(src, Extend).PixelAt(0, 0))
	})
}

func TestImage_PixelAtUsesPolicy(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	for x := 0; x < 3; x++ {
		src.Set(x, 0, color.NRGBA{R: uint8(x * 100), A: 255})
	}

	ext := NewImage(src, Extend)
	col := func(x int) Pixel { return ext.PixelAt(x, 0) }
	assert.NotEqual(t, col(0), col(1))
	assert.Equal(t, col(0), ext.PixelAt(-4, 0))
	assert.Equal(t, col(2), ext.PixelAt(9, 3))

	wrap := ext.WithPolicy(Wrap)
	assert.Equal(t, Wrap, wrap.Policy())
	assert.Equal(t, col(2), wrap.PixelAt(-1, 0))
	assert.Equal(t, col(0), wrap.PixelAt(3, 0))

	mirror := ext.WithPolicy(Mirror)
	assert.Equal(t, col(1), mirror.PixelAt(-1, 0))
	assert.Equal(t, col(1), mirror.PixelAt(3, 0))

	legacy := ext.WithPolicy(WrapLegacy)
	assert.Equal(t, col(0), legacy.PixelAt(2, 0))
	assert.Equal(t, col(1), legacy.PixelAt(-1, 0))
}
