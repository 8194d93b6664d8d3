package raster

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
)

type Raster struct {
	Img    image.Image
	Bounds image.Rectangle
}

type PipelineStage interface {
	Process(r *Raster) error
}

func New(img image.Image) *Raster {
	return &Raster{
		Img:    img,
		Bounds: img.Bounds(),
	}
}

// Decode reads any registered format (png, jpeg, gif, bmp, tiff, webp).
func Decode(r io.Reader) (*Raster, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	return New(img), format, nil
}

func Open(path string) (*Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return r, nil
}

func (r *Raster) Encode(w io.Writer, format Format) error {
	return encode(w, r.Img, format)
}

// Save writes the image to path in the format given by its extension. The
// data goes to a temporary file in the same directory first, so a failed
// write never leaves a partial image behind.
func (r *Raster) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), "convolve-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	cleanupTemp := true
	defer func() {
		_ = tmpFile.Close()
		if cleanupTemp {
			_ = os.Remove(tmpFile.Name())
		}
	}()

	if err := r.Encode(tmpFile, format); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file before rename: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	cleanupTemp = false
	return nil
}

func (r *Raster) Pipeline(stages ...PipelineStage) error {
	for _, stage := range stages {
		if err := stage.Process(r); err != nil {
			return err
		}
	}
	return nil
}
