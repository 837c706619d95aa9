package source

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// codec decodes one file format. TGA has no signature, so formats are
// chosen by extension instead of sniffing.
type codec struct {
	decode       func(io.Reader) (image.Image, error)
	decodeConfig func(io.Reader) (image.Config, error)
}

var codecs = map[string]codec{
	".png":  {png.Decode, png.DecodeConfig},
	".jpg":  {jpeg.Decode, jpeg.DecodeConfig},
	".jpeg": {jpeg.Decode, jpeg.DecodeConfig},
	".gif":  {gif.Decode, gif.DecodeConfig},
	".bmp":  {bmp.Decode, bmp.DecodeConfig},
	".tif":  {tiff.Decode, tiff.DecodeConfig},
	".tiff": {tiff.Decode, tiff.DecodeConfig},
	".webp": {webp.Decode, webp.DecodeConfig},
	".tga":  {tga.Decode, tga.DecodeConfig},
}

func codecFor(path string) (codec, error) {
	c, ok := codecs[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return codec{}, fmt.Errorf("source: unsupported image format: %s", path)
	}
	return c, nil
}

type ImageSource struct {
	paths []string
}

func NewImageSource(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				if _, err := codecFor(entry.Name()); err == nil {
					paths = append(paths, filepath.Join(path, entry.Name()))
				}
			}
		}
		sort.Strings(paths)
	} else {
		if _, err := codecFor(path); err != nil {
			return nil, err
		}
		paths = []string{path}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("source: no images in %s", path)
	}
	return &ImageSource{paths: paths}, nil
}

func (s *ImageSource) PageCount() int {
	return len(s.paths)
}

func (s *ImageSource) page(index int) (string, codec, error) {
	if index < 0 || index >= len(s.paths) {
		return "", codec{}, fmt.Errorf("source: page %d out of range [0, %d)", index, len(s.paths))
	}
	c, err := codecFor(s.paths[index])
	return s.paths[index], c, err
}

func (s *ImageSource) GetPageDimensions(index int) (float64, float64, error) {
	path, c, err := s.page(index)
	if err != nil {
		return 0, 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, err := c.decodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("source: decode %s: %w", path, err)
	}
	return float64(cfg.Width), float64(cfg.Height), nil
}

// RenderPage decodes the image; dpi only applies to vector sources.
func (s *ImageSource) RenderPage(index int, dpi int) (image.Image, error) {
	path, c, err := s.page(index)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := c.decode(f)
	if err != nil {
		return nil, fmt.Errorf("source: decode %s: %w", path, err)
	}
	return img, nil
}

func (s *ImageSource) Close() error {
	return nil
}
