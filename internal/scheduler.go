package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rm-hull/image-convolution/internal/raster"
)

const doneMarker = ".done"

type WatchOptions struct {
	Inbox    string
	Interval time.Duration
	// Template provides everything but Input; each image gets its own
	// sub-directory of Template.OutputDir.
	Template BatchOptions
}

// NewScheduler processes the inbox once, then again every opts.Interval.
func NewScheduler(opts WatchOptions) (gocron.Scheduler, error) {
	if opts.Interval <= 0 {
		return nil, fmt.Errorf("invalid watch interval %s", opts.Interval)
	}

	if info, err := os.Stat(opts.Inbox); err != nil {
		return nil, fmt.Errorf("failed to open inbox: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("inbox %s is not a directory", opts.Inbox)
	}

	// failed images are retried by the scheduled job, so only log them here
	if err := ScanInbox(opts); err != nil {
		log.Printf("Initial inbox scan failed: %v", err)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(opts.Interval),
		gocron.NewTask(func() {
			if err := ScanInbox(opts); err != nil {
				log.Printf("Inbox scan failed: %v", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	scheduler.Start()
	return scheduler, nil
}

// ScanInbox runs a batch for every image in the inbox that has not been
// processed yet. Images that fail are retried on the next scan.
func ScanInbox(opts WatchOptions) error {
	entries, err := os.ReadDir(opts.Inbox)
	if err != nil {
		return fmt.Errorf("failed to read inbox: %w", err)
	}

	var errs []error
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !isImage(entry.Name()) {
			continue
		}

		name := entry.Name()
		outDir := filepath.Join(opts.Template.OutputDir, strings.TrimSuffix(name, filepath.Ext(name)))
		marker := filepath.Join(outDir, doneMarker)

		if _, err := os.Stat(marker); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			errs = append(errs, err)
			continue
		}

		batchOpts := opts.Template
		batchOpts.Input = filepath.Join(opts.Inbox, name)
		batchOpts.OutputDir = outDir

		batch, err := NewBatch(batchOpts)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if jobErrs := batch.Run(context.Background()); len(jobErrs) > 0 {
			errs = append(errs, fmt.Errorf("%s: %w", name, errors.Join(jobErrs...)))
			continue
		}

		stamp := []byte(time.Now().UTC().Format(time.RFC3339) + "\n")
		if err := os.WriteFile(marker, stamp, 0644); err != nil {
			errs = append(errs, fmt.Errorf("failed to write marker for %s: %w", name, err))
		}
	}

	return errors.Join(errs...)
}

func isImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".webp" {
		return true
	}
	_, err := raster.ParseFormat(ext)
	return err == nil
}
