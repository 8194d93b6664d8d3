package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"CONVOLVE_KERNEL", "CONVOLVE_EDGE", "CONVOLVE_OUTPUT_DIR", "CONVOLVE_FORMAT", "CONVOLVE_POOL_SIZE", "CONVOLVE_WORKERS"} {
			t.Setenv(key, "")
		}
		assert.Equal(t, Config{
			Kernel:    "All",
			Edge:      "Extend",
			OutputDir: ".",
			Format:    "png",
			PoolSize:  2,
			Workers:   0,
		}, ConfigFromEnv())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("CONVOLVE_KERNEL", "Sharpen")
		t.Setenv("CONVOLVE_EDGE", "Mirror")
		t.Setenv("CONVOLVE_POOL_SIZE", "6")
		t.Setenv("CONVOLVE_WORKERS", "not-a-number")

		cfg := ConfigFromEnv()
		assert.Equal(t, "Sharpen", cfg.Kernel)
		assert.Equal(t, "Mirror", cfg.Edge)
		assert.Equal(t, 6, cfg.PoolSize)
		assert.Equal(t, 0, cfg.Workers)
	})
}
