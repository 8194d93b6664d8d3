package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rm-hull/image-convolution/internal/convolve"
	"github.com/rm-hull/image-convolution/internal/raster"
)

// Job is a single kernel pass over the batch input under one edge policy.
type Job struct {
	Kernel *convolve.Kernel
	Policy convolve.Policy
	Output string
}

func (j Job) String() string {
	return fmt.Sprintf("%s-%s", j.Kernel.Name(), j.Policy)
}

type BatchOptions struct {
	Input     string
	OutputDir string
	Format    raster.Format
	Kernels   []*convolve.Kernel
	Policies  []convolve.Policy
	// PoolSize is the number of jobs run at once, Workers the number of row
	// bands each job splits into.
	PoolSize int
	Workers  int
	// Stages are applied to the input once, before any kernel runs.
	Stages []raster.PipelineStage
}

// Batch runs every (kernel, policy) combination over one input image. A job
// failing is reported from Wait and does not stop the remaining jobs.
type Batch struct {
	startTime time.Time
	endTime   time.Time
	poolSize  int
	engine    convolve.Engine
	source    *convolve.Image
	queue     []Job
	jobs      chan int
	results   chan result
	done      []bool
}

type result struct {
	index int
	err   error
}

func NewBatch(opts BatchOptions) (*Batch, error) {
	if opts.PoolSize < 1 {
		return nil, errors.New("pool size must be at least 1")
	}
	if len(opts.Kernels) == 0 {
		return nil, errors.New("no kernels selected")
	}
	if len(opts.Policies) == 0 {
		return nil, errors.New("no edge policies selected")
	}
	startTime := time.Now()

	img, err := raster.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", opts.Input, err)
	}
	if err := img.Pipeline(opts.Stages...); err != nil {
		return nil, fmt.Errorf("failed to pre-process %s: %w", opts.Input, err)
	}
	log.Printf("Loaded %s (%dx%d)", opts.Input, img.Bounds.Dx(), img.Bounds.Dy())

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	queue := make([]Job, 0, len(opts.Kernels)*len(opts.Policies))
	for _, p := range opts.Policies {
		for _, k := range opts.Kernels {
			job := Job{Kernel: k, Policy: p}
			job.Output = filepath.Join(opts.OutputDir, job.String()+opts.Format.Ext())
			queue = append(queue, job)
		}
	}

	return &Batch{
		startTime: startTime,
		poolSize:  opts.PoolSize,
		engine:    convolve.Engine{Workers: opts.Workers},
		source:    convolve.NewImage(img.Img, convolve.Extend),
		queue:     queue,
		jobs:      make(chan int),
		results:   make(chan result),
		done:      make([]bool, len(queue)),
	}, nil
}

func (b *Batch) Jobs() []Job {
	return append([]Job(nil), b.queue...)
}

// Run starts the workers, dispatches every job and waits for the results.
func (b *Batch) Run(ctx context.Context) []error {
	b.StartWorkers(ctx)
	b.DispatchJobs()
	return b.Wait()
}

func (b *Batch) DispatchJobs() {
	go func() {
		for i := range b.queue {
			b.jobs <- i
		}
		close(b.jobs)
	}()
}

func (b *Batch) StartWorkers(ctx context.Context) {
	log.Printf("Starting %d jobs with pool size: %d", len(b.queue), b.poolSize)

	for i := range b.poolSize {
		go b.worker(ctx, i)
	}
}

func (b *Batch) worker(ctx context.Context, i int) {
	log.Printf("Worker %d started", i)
	for n := range b.jobs {
		b.results <- result{index: n, err: b.processJob(ctx, b.queue[n])}
	}
	log.Printf("Worker %d finished", i)
}

func (b *Batch) processJob(ctx context.Context, job Job) error {
	start := time.Now()
	out, err := b.engine.Process(ctx, b.source.WithPolicy(job.Policy), job.Kernel)
	if err != nil {
		return fmt.Errorf("%s: convolution failed: %w", job, err)
	}

	if err := raster.New(out).Save(job.Output); err != nil {
		return fmt.Errorf("%s: failed to save %s: %w", job, job.Output, err)
	}

	log.Printf("Wrote %s in %s", job.Output, time.Since(start))
	return nil
}

func (b *Batch) Wait() []error {
	log.Printf("Waiting for %d jobs to be processed", len(b.queue))

	errs := make([]error, 0, len(b.queue))
	for range b.queue {
		res := <-b.results
		if res.err != nil {
			errs = append(errs, res.err)
			continue
		}
		b.done[res.index] = true
	}
	b.endTime = time.Now()
	elapsed := b.endTime.Sub(b.startTime)
	log.Printf("All jobs processed in %s (errors=%d)", elapsed, len(errs))
	return errs
}

// Outputs lists the files written successfully, in job order. Only valid
// after Wait has returned.
func (b *Batch) Outputs() []string {
	files := make([]string, 0, len(b.queue))
	for i, job := range b.queue {
		if b.done[i] {
			files = append(files, job.Output)
		}
	}
	return files
}
