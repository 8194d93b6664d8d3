package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rm-hull/image-convolution/cmd"
	"github.com/rm-hull/image-convolution/internal"
	"github.com/spf13/cobra"
)

func main() {
	var port int
	var debug bool
	var weights bool

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := internal.ConfigFromEnv()

	processOpts := cmd.ProcessOptions{Options: cmd.OptionsFromConfig(cfg)}
	watchOpts := cmd.WatchOptions{Options: cmd.OptionsFromConfig(cfg)}

	rootCmd := &cobra.Command{
		Use:          "image-convolution",
		Long:         `Apply convolution kernels to raster images`,
		SilenceUsage: true,
	}

	processCmd := &cobra.Command{
		Use:   "process <input> [--kernel <name>] [--edge <policy>] [--out <dir>]",
		Short: "Run one or all kernels over an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			processOpts.Input = args[0]
			return cmd.Process(c.Context(), processOpts)
		},
	}
	addOptionFlags(processCmd, &processOpts.Options)
	processCmd.Flags().BoolVar(&processOpts.Animate, "animate", false, "Also write an animated PNG cycling through every output")
	processCmd.Flags().Float64Var(&processOpts.FrameDelay, "frame-delay", 1.0, "Seconds per frame when animating")

	kernelsCmd := &cobra.Command{
		Use:   "kernels [--weights]",
		Short: "List the available kernels",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.ListKernels(os.Stdout, weights)
		},
	}
	kernelsCmd.Flags().BoolVar(&weights, "weights", false, "Show the weight matrix of each kernel")

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--port <port>] [--debug]",
		Short: "Start HTTP API server",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.ApiServer(port, cfg.Workers, debug)
		},
	}
	apiServerCmd.Flags().IntVar(&port, "port", 8080, "Port to run HTTP server on")
	apiServerCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARNING: do not enable in production")

	watchCmd := &cobra.Command{
		Use:   "watch <inbox> [--interval <duration>]",
		Short: "Process images as they arrive in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			watchOpts.Inbox = args[0]
			return cmd.Watch(c.Context(), watchOpts)
		},
	}
	addOptionFlags(watchCmd, &watchOpts.Options)
	watchCmd.Flags().DurationVar(&watchOpts.Interval, "interval", time.Minute, "How often to scan the inbox")

	rootCmd.AddCommand(processCmd, kernelsCmd, apiServerCmd, watchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}

func addOptionFlags(c *cobra.Command, opts *cmd.Options) {
	c.Flags().StringVar(&opts.Kernel, "kernel", opts.Kernel, "Kernel name, 'All' to process all kernels")
	c.Flags().StringVar(&opts.Edge, "edge", opts.Edge, "Edge policy: Extend, Wrap, Mirror, WrapLegacy or All")
	c.Flags().StringVar(&opts.OutputDir, "out", opts.OutputDir, "Directory to write results to")
	c.Flags().StringVar(&opts.Format, "format", opts.Format, "Output format: png, jpeg, bmp, tiff or gif")
	c.Flags().IntVar(&opts.PoolSize, "pool-size", opts.PoolSize, "Number of kernels to run at once")
	c.Flags().IntVar(&opts.Workers, "workers", opts.Workers, "Row bands per kernel pass, 0 for one per CPU")
	c.Flags().IntVar(&opts.Resize, "resize", 0, "Scale the input down to this width first")
	c.Flags().BoolVar(&opts.Greyscale, "greyscale", false, "Convert the input to greyscale first")
	c.Flags().Float64Var(&opts.PreBlur, "pre-blur", 0, "Gaussian blur sigma applied to the input first")
}
