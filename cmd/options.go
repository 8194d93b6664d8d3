package cmd

import (
	"fmt"

	"github.com/rm-hull/image-convolution/internal"
	"github.com/rm-hull/image-convolution/internal/convolve"
	"github.com/rm-hull/image-convolution/internal/raster"
	"github.com/rm-hull/image-convolution/internal/raster/stage"
)

// Options are the kernel selection and pre-processing settings shared by the
// process and watch commands.
type Options struct {
	Kernel    string
	Edge      string
	OutputDir string
	Format    string
	PoolSize  int
	Workers   int

	Resize    int
	Greyscale bool
	PreBlur   float64
}

func OptionsFromConfig(cfg internal.Config) Options {
	return Options{
		Kernel:    cfg.Kernel,
		Edge:      cfg.Edge,
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		PoolSize:  cfg.PoolSize,
		Workers:   cfg.Workers,
	}
}

// batchOptions resolves names up front, so a bad kernel, edge or format is
// reported before any image is touched.
func (o Options) batchOptions() (internal.BatchOptions, error) {
	kernels, err := convolve.Select(o.Kernel)
	if err != nil {
		return internal.BatchOptions{}, err
	}

	policies, err := selectPolicies(o.Edge)
	if err != nil {
		return internal.BatchOptions{}, err
	}

	format, err := raster.ParseFormat(o.Format)
	if err != nil {
		return internal.BatchOptions{}, err
	}

	if o.Resize < 0 {
		return internal.BatchOptions{}, fmt.Errorf("invalid resize width %d", o.Resize)
	}

	return internal.BatchOptions{
		OutputDir: o.OutputDir,
		Format:    format,
		Kernels:   kernels,
		Policies:  policies,
		PoolSize:  max(1, o.PoolSize),
		Workers:   o.Workers,
		Stages:    o.stages(),
	}, nil
}

func (o Options) stages() []raster.PipelineStage {
	var stages []raster.PipelineStage
	if o.Resize > 0 {
		stages = append(stages, &stage.ResampleStage{Width: o.Resize})
	}
	if o.Greyscale {
		stages = append(stages, &stage.GreyscaleStage{})
	}
	if o.PreBlur > 0 {
		stages = append(stages, &stage.GaussianBlurStage{Sigma: o.PreBlur})
	}
	return stages
}

// selectPolicies accepts a single policy name or All.
func selectPolicies(name string) ([]convolve.Policy, error) {
	if name == convolve.All {
		return convolve.Policies(), nil
	}
	p, err := convolve.ParsePolicy(name)
	if err != nil {
		return nil, err
	}
	return []convolve.Policy{p}, nil
}
