package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rm-hull/image-convolution/internal"
)

type WatchOptions struct {
	Options
	Inbox    string
	Interval time.Duration
}

// Watch processes new images dropped into the inbox until ctx is cancelled.
func Watch(ctx context.Context, opts WatchOptions) error {
	internal.ShowVersion()
	internal.RuntimeInfo()

	template, err := opts.batchOptions()
	if err != nil {
		return err
	}

	log.Printf("Watching %s every %s", opts.Inbox, opts.Interval)
	sched, err := internal.NewScheduler(internal.WatchOptions{
		Inbox:    opts.Inbox,
		Interval: opts.Interval,
		Template: template,
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	log.Println("Shutting down scheduler")
	if err := sched.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown scheduler: %w", err)
	}
	return nil
}
