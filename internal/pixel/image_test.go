package pixel

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatImageWriteAndClone(t *testing.T) {
	img := NewFloatImage(3, 2)
	require.Len(t, img.RawFloatBuffer(), 6)

	img.WritePixel(2, 1, RGBFloat{R: 1, G: 0.5, B: 0.25})
	assert.Equal(t, RGBFloat{R: 1, G: 0.5, B: 0.25}, img.At(2, 1))
	assert.Equal(t, RGBFloat{R: 1, G: 0.5, B: 0.25}, img.RawFloatBuffer()[5])

	c := img.Clone()
	c.WritePixel(2, 1, RGBFloat{})
	assert.Equal(t, float32(1), img.At(2, 1).R)
}

func TestFromImageRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 60), G: uint8(y * 60), B: 255, A: 255})
		}
	}

	f := FromImage(src)
	assert.InDelta(t, 120.0/255, f.At(2, 0).R, 1e-6)

	back := f.ToNRGBA()
	assert.Equal(t, src.Pix, back.Pix)
}

func TestFromImageGenericPath(t *testing.T) {
	src := image.NewGray(image.Rect(10, 10, 12, 11))
	src.SetGray(11, 10, color.Gray{Y: 255})

	f := FromImage(src)
	require.Equal(t, 2, f.Width())
	require.Equal(t, 1, f.Height())
	assert.Equal(t, RGBFloat{}, f.At(0, 0))
	assert.InDelta(t, 1.0, f.At(1, 0).G, 1e-6)
}

func TestToNRGBAClampsHDR(t *testing.T) {
	f := NewFloatImage(1, 1)
	f.WritePixel(0, 0, RGBFloat{R: 4, G: -1, B: float32(math.NaN())})

	out := f.ToNRGBA()
	assert.Equal(t, []uint8{255, 0, 0, 255}, out.Pix)
}
