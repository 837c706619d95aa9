package frames

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/morphblur/internal/source"
)

func TestWriterFormats(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	for _, format := range Formats() {
		t.Run(format, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "out")
			w, err := NewWriter(dir, format)
			require.NoError(t, err)

			require.NoError(t, w.WriteFrame(7, img))
			path := w.Path(7)
			assert.Equal(t, "frame_00007."+format, filepath.Base(path))

			// Read back through the source decoders.
			src, err := source.NewImageSource(dir)
			require.NoError(t, err)
			require.Equal(t, 1, src.PageCount(), "temporary files must be gone")

			got, err := src.RenderPage(0, 72)
			require.NoError(t, err)
			assert.Equal(t, img.Bounds().Size(), got.Bounds().Size())
			r, g, b, _ := got.At(1, 1).RGBA()
			assert.Equal(t, []uint32{10, 20, 30}, []uint32{r >> 8, g >> 8, b >> 8})
		})
	}
}

func TestWriterDefaultsAndErrors(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriter(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "frame_00000.png"), w.Path(0))

	w, err = NewWriter(dir, ".WEBP")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "frame_00012.webp"), w.Path(12))

	_, err = NewWriter(dir, "gif")
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))

	for _, name := range []string{"out.png", "out.TIF", "out.webp", "out.bmp"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, img), name)
		_, err := os.Stat(path)
		assert.NoError(t, err)
	}

	assert.Error(t, WriteFile(filepath.Join(dir, "out.jpg"), img))

	format, err := FormatOf("a/b/c.tiff")
	require.NoError(t, err)
	assert.Equal(t, "tiff", format)
}
