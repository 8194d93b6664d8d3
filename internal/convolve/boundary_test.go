package convolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	for _, p := range Policies() {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ParsePolicy("Clamp")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
	assert.Equal(t, `unknown edge policy: "Clamp"`, err.Error())
}

func TestPolicy_IdentityOnInterior(t *testing.T) {
	const w, h = 7, 4
	for _, p := range []Policy{Extend, Wrap, Mirror} {
		t.Run(p.String(), func(t *testing.T) {
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					rx, ry := p.Resolve(x, y, w, h)
					assert.Equal(t, x, rx)
					assert.Equal(t, y, ry)
				}
			}
		})
	}
}

func TestPolicy_AlwaysInBounds(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 5}, {2, 2}, {3, 8}, {10, 3}}
	for _, p := range Policies() {
		for _, sz := range sizes {
			w, h := sz[0], sz[1]
			for x := -5 * w; x <= 5*w; x++ {
				rx, ry := p.Resolve(x, x, w, h)
				if !assert.True(t, rx >= 0 && rx < w && ry >= 0 && ry < h,
					"%s (%d,%d) in %dx%d -> (%d,%d)", p, x, x, w, h, rx, ry) {
					return
				}
			}
		}
	}
}

func TestExtend(t *testing.T) {
	const w, h = 5, 3
	for _, x := range []int{-1, -2, -100} {
		rx, ry := Extend.Resolve(x, x, w, h)
		assert.Equal(t, 0, rx)
		assert.Equal(t, 0, ry)
	}
	for _, x := range []int{5, 6, 500} {
		rx, ry := Extend.Resolve(x, x, w, h)
		assert.Equal(t, w-1, rx)
		assert.Equal(t, h-1, ry)
	}
	rx, ry := Extend.Resolve(-3, 10, w, h)
	assert.Equal(t, []int{0, h - 1}, []int{rx, ry})
}

func TestWrap(t *testing.T) {
	const w = 5
	tests := []struct{ in, want int }{
		{-1, 4},
		{-5, 0},
		{-6, 4},
		{5, 0},
		{6, 1},
		{12, 2},
		{-11, 4},
	}
	for _, tt := range tests {
		rx, _ := Wrap.Resolve(tt.in, 0, w, 1)
		assert.Equal(t, tt.want, rx, "x=%d", tt.in)
	}
}

func TestWrapLegacy(t *testing.T) {
	const w = 5
	tests := []struct{ in, want int }{
		{0, 0},
		{3, 3},
		// the last column aliases the first
		{4, 0},
		{5, 1},
		{-1, 3},
		{-4, 0},
		{-5, 3},
	}
	for _, tt := range tests {
		rx, _ := WrapLegacy.Resolve(tt.in, 0, w, 1)
		assert.Equal(t, tt.want, rx, "x=%d", tt.in)
	}

	rx, ry := WrapLegacy.Resolve(-3, 7, 1, 1)
	assert.Equal(t, []int{0, 0}, []int{rx, ry})
}

func TestMirror(t *testing.T) {
	const w = 6
	last := w - 1

	t.Run("reflects within one width", func(t *testing.T) {
		for k := 1; k < w; k++ {
			rx, _ := Mirror.Resolve(-k, 0, w, 1)
			assert.Equal(t, k, rx)
			rx, _ = Mirror.Resolve(last+k, 0, w, 1)
			assert.Equal(t, last-k, rx)
		}
	})

	t.Run("reflecting twice returns to origin", func(t *testing.T) {
		for x := 0; x <= last; x++ {
			// x reflected about 0 is -x, about last is 2*last-x
			rx, _ := Mirror.Resolve(-x, 0, w, 1)
			assert.Equal(t, x, rx)
			rx, _ = Mirror.Resolve(2*last-x, 0, w, 1)
			assert.Equal(t, x, rx)
		}
	})

	t.Run("beyond one width keeps reflecting", func(t *testing.T) {
		rx, _ := Mirror.Resolve(-(last + 2), 0, w, 1)
		assert.Equal(t, last-2, rx)
		rx, _ = Mirror.Resolve(2*last+3, 0, w, 1)
		assert.Equal(t, 3, rx)
	})

	t.Run("single pixel", func(t *testing.T) {
		rx, ry := Mirror.Resolve(-1, 2, 1, 1)
		assert.Equal(t, []int{0, 0}, []int{rx, ry})
	})
}
