// Package frames writes rendered frames to numbered image files.
package frames

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Writer stores frame images.
type Writer interface {
	WriteFrame(index int, img image.Image) error
	// Path returns where frame index is written.
	Path(index int) string
}

type encoder func(io.Writer, image.Image) error

var encoders = map[string]encoder{
	"png": png.Encode,
	"bmp": bmp.Encode,
	"tiff": func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	},
	"webp": func(w io.Writer, img image.Image) error {
		return nativewebp.Encode(w, img, nil)
	},
}

// Formats lists the accepted output formats.
func Formats() []string {
	return []string{"png", "bmp", "tiff", "webp"}
}

// FormatOf maps a file extension to an output format name.
func FormatOf(path string) (string, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "tif" {
		format = "tiff"
	}
	if _, ok := encoders[format]; !ok {
		return "", fmt.Errorf("frames: unsupported output %s (want one of %s)", path, strings.Join(Formats(), ", "))
	}
	return format, nil
}

// WriteFile encodes a single image, picking the format from the extension.
func WriteFile(path string, img image.Image) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	w := &FileWriter{dir: filepath.Dir(path), format: format, encode: encoders[format]}
	return w.write(path, img)
}

// FileWriter writes frame_00042.<format> files into a directory.
type FileWriter struct {
	dir    string
	format string
	encode encoder
}

// NewWriter creates dir if needed.
func NewWriter(dir, format string) (*FileWriter, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "" {
		format = "png"
	}
	enc, ok := encoders[format]
	if !ok {
		return nil, fmt.Errorf("frames: unsupported format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("frames: create %s: %w", dir, err)
	}
	return &FileWriter{dir: dir, format: format, encode: enc}, nil
}

func (w *FileWriter) Path(index int) string {
	return filepath.Join(w.dir, fmt.Sprintf("frame_%05d.%s", index, w.format))
}

// WriteFrame writes to a temporary file and renames it, so a cancelled run
// never leaves a truncated frame behind.
func (w *FileWriter) WriteFrame(index int, img image.Image) error {
	return w.write(w.Path(index), img)
}

func (w *FileWriter) write(path string, img image.Image) error {
	tmp, err := os.CreateTemp(w.dir, ".frame-*")
	if err != nil {
		return fmt.Errorf("frames: %w", err)
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := w.encode(bw, img); err != nil {
		tmp.Close()
		return fmt.Errorf("frames: encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("frames: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("frames: write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("frames: %w", err)
	}
	return nil
}
