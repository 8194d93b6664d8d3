package convolve

import (
	"errors"
	"fmt"
)

var ErrUnknownPolicy = errors.New("unknown edge policy")

// Policy decides where an out-of-range sample coordinate is read from.
type Policy int

const (
	// Extend repeats the nearest border pixel; corners extend as flat wedges.
	Extend Policy = iota
	// Wrap tiles the image, reading from the opposite edge.
	Wrap
	// Mirror reflects coordinates about the border pixel.
	Mirror
	// WrapLegacy tiles with a period of size-1, which aliases the first and
	// last row/column at the seam. Kept for output compatibility with the
	// earlier implementation.
	WrapLegacy
)

var policyNames = []string{
	Extend:     "Extend",
	Wrap:       "Wrap",
	Mirror:     "Mirror",
	WrapLegacy: "WrapLegacy",
}

func Policies() []Policy {
	return []Policy{Extend, Wrap, Mirror, WrapLegacy}
}

func ParsePolicy(name string) (Policy, error) {
	for i, n := range policyNames {
		if n == name {
			return Policy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

func (p Policy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("Policy(%d)", int(p))
	}
	return policyNames[p]
}

// Resolve maps (x, y) into [0,width-1]x[0,height-1]. Both dimensions must be
// positive. In-range coordinates are returned unchanged, except that
// WrapLegacy maps the last column and row onto the first.
func (p Policy) Resolve(x, y, width, height int) (int, int) {
	switch p {
	case Wrap:
		return wrap(x, width), wrap(y, height)
	case Mirror:
		return mirror(x, width), mirror(y, height)
	case WrapLegacy:
		return wrapLegacy(x, width), wrapLegacy(y, height)
	default:
		return clamp(x, 0, width-1), clamp(y, 0, height-1)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// fmod is a floor modulo: the result has the sign of n.
func fmod(v, n int) int {
	m := v % n
	if m < 0 {
		m += n
	}
	return m
}

func wrap(v, size int) int {
	return fmod(v, size)
}

func wrapLegacy(v, size int) int {
	if size == 1 {
		return 0
	}
	return fmod(v, size-1)
}

// mirror reflects about 0 and size-1 (the edge pixel itself is not repeated).
// Within one image width of an edge this is x -> -x and x -> 2(size-1)-x;
// further out the reflection repeats with period 2(size-1).
func mirror(v, size int) int {
	if size == 1 {
		return 0
	}
	last := size - 1
	if v >= 0 && v <= last {
		return v
	}
	m := fmod(v, 2*last)
	if m > last {
		m = 2*last - m
	}
	return m
}
