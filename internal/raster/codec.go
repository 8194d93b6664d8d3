package raster

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type Format int

const (
	PNG Format = iota
	JPEG
	BMP
	TIFF
	GIF
)

var formats = []struct {
	name string
	exts []string
}{
	PNG:  {"png", []string{".png"}},
	JPEG: {"jpeg", []string{".jpg", ".jpeg"}},
	BMP:  {"bmp", []string{".bmp"}},
	TIFF: {"tiff", []string{".tif", ".tiff"}},
	GIF:  {"gif", []string{".gif"}},
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formats) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formats[f].name
}

// Ext is the extension used for files written in this format.
func (f Format) Ext() string {
	return formats[f].exts[0]
}

func (f Format) ContentType() string {
	return "image/" + f.String()
}

// ParseFormat accepts a format name or a file extension, with or without the dot.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimPrefix(s, "."))
	for i, f := range formats {
		if f.name == s {
			return Format(i), nil
		}
		for _, ext := range f.exts {
			if ext[1:] == s {
				return Format(i), nil
			}
		}
	}
	return 0, fmt.Errorf("unsupported image format %q", s)
}

func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, fmt.Errorf("no file extension on %s", path)
	}
	return ParseFormat(ext)
}

func encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case GIF:
		return gif.Encode(w, img, nil)
	default:
		return fmt.Errorf("unsupported image format %s", format)
	}
}
