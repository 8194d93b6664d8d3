package raster

import (
	"bytes"
	"fmt"
	"math"

	"github.com/kettek/apng"
	"golang.org/x/sync/errgroup"
)

// FrameDelay converts seconds into an APNG delay fraction, keeping as many
// decimal places as fit in a uint16 numerator.
func FrameDelay(seconds float64) (uint16, uint16, error) {
	if !(seconds >= 0) {
		return 0, 0, fmt.Errorf("invalid frame delay %v", seconds)
	}
	for _, den := range []float64{1000, 100, 10, 1} {
		num := math.Round(seconds * den)
		if num <= math.MaxUint16 {
			return uint16(num), uint16(den), nil
		}
	}
	return 0, 0, fmt.Errorf("frame delay %vs exceeds %ds", seconds, math.MaxUint16)
}

// Animate combines the images at files into an endlessly looping APNG, one
// frame per file shown for frameDelay seconds.
func Animate(files []string, frameDelay float64) ([]byte, error) {
	num, den, err := FrameDelay(frameDelay)
	if err != nil {
		return nil, err
	}

	a := apng.APNG{
		Frames:    make([]apng.Frame, len(files)),
		LoopCount: 0,
	}

	var g errgroup.Group
	for i, fname := range files {
		g.Go(func() error {
			r, err := Open(fname)
			if err != nil {
				return err
			}
			a.Frames[i] = apng.Frame{
				Image:            r.Img,
				DelayNumerator:   num,
				DelayDenominator: den,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
