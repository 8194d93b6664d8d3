package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rm-hull/image-convolution/internal/convolve"
	"github.com/rm-hull/image-convolution/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsImage(t *testing.T) {
	for _, name := range []string{"a.png", "b.JPG", "c.bmp", "d.tiff", "e.webp", "f.gif"} {
		assert.True(t, isImage(name), name)
	}
	for _, name := range []string{"README", "notes.txt", ".done"} {
		assert.False(t, isImage(name), name)
	}
}

func TestScanInbox(t *testing.T) {
	inbox := t.TempDir()
	outDir := t.TempDir()
	writeTestImage(t, filepath.Join(inbox, "one.png"), 5, 5)
	writeTestImage(t, filepath.Join(inbox, "two.bmp"), 4, 6)
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "notes.txt"), []byte("skip me"), 0644))

	opts := WatchOptions{
		Inbox:    inbox,
		Interval: time.Minute,
		Template: BatchOptions{
			OutputDir: outDir,
			Format:    raster.PNG,
			Kernels:   []*convolve.Kernel{convolve.Sharpen, convolve.BoxBlur},
			Policies:  []convolve.Policy{convolve.Extend},
			PoolSize:  2,
		},
	}

	require.NoError(t, ScanInbox(opts))

	for _, name := range []string{"one", "two"} {
		assert.FileExists(t, filepath.Join(outDir, name, doneMarker))
		assert.FileExists(t, filepath.Join(outDir, name, "Sharpen-Extend.png"))
		assert.FileExists(t, filepath.Join(outDir, name, "BoxBlur-Extend.png"))
	}
	assert.NoDirExists(t, filepath.Join(outDir, "notes"))

	// processed images are skipped on the next scan
	stale := filepath.Join(outDir, "one", "Sharpen-Extend.png")
	require.NoError(t, os.Remove(stale))
	require.NoError(t, ScanInbox(opts))
	assert.NoFileExists(t, stale)
}

func TestScanInbox_ReportsFailures(t *testing.T) {
	inbox := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "broken.png"), []byte("not a png"), 0644))

	opts := WatchOptions{
		Inbox: inbox,
		Template: BatchOptions{
			OutputDir: t.TempDir(),
			Kernels:   []*convolve.Kernel{convolve.Sharpen},
			Policies:  []convolve.Policy{convolve.Extend},
			PoolSize:  1,
		},
	}
	err := ScanInbox(opts)
	assert.ErrorContains(t, err, "broken.png")
	assert.NoFileExists(t, filepath.Join(opts.Template.OutputDir, "broken", doneMarker))
}

func TestNewScheduler_InvalidInterval(t *testing.T) {
	_, err := NewScheduler(WatchOptions{Inbox: t.TempDir()})
	assert.Error(t, err)
}

func TestNewScheduler(t *testing.T) {
	inbox := t.TempDir()
	outDir := t.TempDir()
	writeTestImage(t, filepath.Join(inbox, "in.png"), 3, 3)

	sched, err := NewScheduler(WatchOptions{
		Inbox:    inbox,
		Interval: time.Hour,
		Template: BatchOptions{
			OutputDir: outDir,
			Kernels:   []*convolve.Kernel{convolve.Emboss},
			Policies:  []convolve.Policy{convolve.Mirror},
			PoolSize:  1,
		},
	})
	require.NoError(t, err)
	defer func() { assert.NoError(t, sched.Shutdown()) }()

	// the initial scan runs before the scheduler is returned
	assert.FileExists(t, filepath.Join(outDir, "in", "Emboss-Mirror.png"))
	assert.Len(t, sched.Jobs(), 1)

	_, err = NewScheduler(WatchOptions{Inbox: filepath.Join(inbox, "in.png"), Interval: time.Hour})
	assert.ErrorContains(t, err, "not a directory")
}
