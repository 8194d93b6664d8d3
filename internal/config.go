package internal

import (
	"log"
	"os"
	"strconv"
)

// Config holds the defaults for command flags. Every field can be set from
// the environment (or a .env file) so deployments don't need flags.
type Config struct {
	Kernel    string
	Edge      string
	OutputDir string
	Format    string
	PoolSize  int
	Workers   int
}

func ConfigFromEnv() Config {
	return Config{
		Kernel:    envString("CONVOLVE_KERNEL", "All"),
		Edge:      envString("CONVOLVE_EDGE", "Extend"),
		OutputDir: envString("CONVOLVE_OUTPUT_DIR", "."),
		Format:    envString("CONVOLVE_FORMAT", "png"),
		PoolSize:  envInt("CONVOLVE_POOL_SIZE", 2),
		Workers:   envInt("CONVOLVE_WORKERS", 0),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return n
}
