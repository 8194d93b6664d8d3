package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rm-hull/image-convolution/internal"
	"github.com/rm-hull/image-convolution/internal/raster"
)

type ProcessOptions struct {
	Options
	Input      string
	Animate    bool
	FrameDelay float64
}

// Process writes {kernel}-{edge}.{ext} into the output directory for every
// selected kernel and edge policy. Jobs that fail are logged and the rest
// carry on; the returned error summarises the failures.
func Process(ctx context.Context, opts ProcessOptions) error {
	internal.ShowVersion()
	internal.RuntimeInfo()

	batchOpts, err := opts.batchOptions()
	if err != nil {
		return err
	}
	batchOpts.Input = opts.Input

	if opts.Animate {
		if _, _, err := raster.FrameDelay(opts.FrameDelay); err != nil {
			return err
		}
	}

	batch, err := internal.NewBatch(batchOpts)
	if err != nil {
		return err
	}

	errs := batch.Run(ctx)
	for _, err := range errs {
		log.Printf("Error: %v", err)
	}

	if opts.Animate {
		if err := animate(batch.Outputs(), opts); err != nil {
			return err
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d jobs failed", len(errs), len(batch.Jobs()))
	}
	return nil
}

func animate(files []string, opts ProcessOptions) error {
	if len(files) == 0 {
		log.Println("Nothing to animate")
		return nil
	}

	apngBytes, err := raster.Animate(files, opts.FrameDelay)
	if err != nil {
		return fmt.Errorf("failed to build animation: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(opts.Input), filepath.Ext(opts.Input))
	filename := filepath.Join(opts.OutputDir, base+"-animated.png")
	if err := os.WriteFile(filename, apngBytes, 0644); err != nil {
		return fmt.Errorf("failed to write animation: %w", err)
	}
	log.Printf("Wrote %s (%d frames)", filename, len(files))
	return nil
}
