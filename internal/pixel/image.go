// Package pixel provides the linear RGB float buffers post effects work on.
package pixel

import (
	"image"
	"image/color"
)

// RGBFloat is a linear colour; 1.0 is full intensity but HDR values may exceed it.
type RGBFloat struct {
	R, G, B float32
}

// Image is the buffer contract post effects read from and write to.
type Image interface {
	Width() int
	Height() int
	// RawFloatBuffer exposes the row-major pixels; len == Width()*Height().
	RawFloatBuffer() []RGBFloat
	WritePixel(x, y int, c RGBFloat)
}

// FloatImage is a dense row-major Image.
type FloatImage struct {
	width, height int
	pix           []RGBFloat
}

func NewFloatImage(width, height int) *FloatImage {
	return &FloatImage{
		width:  width,
		height: height,
		pix:    make([]RGBFloat, width*height),
	}
}

func (f *FloatImage) Width() int  { return f.width }
func (f *FloatImage) Height() int { return f.height }

func (f *FloatImage) RawFloatBuffer() []RGBFloat { return f.pix }

func (f *FloatImage) WritePixel(x, y int, c RGBFloat) {
	f.pix[y*f.width+x] = c
}

func (f *FloatImage) At(x, y int) RGBFloat {
	return f.pix[y*f.width+x]
}

// Fill sets every pixel to c.
func (f *FloatImage) Fill(c RGBFloat) {
	for i := range f.pix {
		f.pix[i] = c
	}
}

func (f *FloatImage) Clone() *FloatImage {
	out := NewFloatImage(f.width, f.height)
	copy(out.pix, f.pix)
	return out
}

// FromImage converts img into [0,1] floats.
func FromImage(img image.Image) *FloatImage {
	b := img.Bounds()
	out := NewFloatImage(b.Dx(), b.Dy())

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < out.height; y++ {
			row := nrgba.Pix[y*nrgba.Stride:]
			for x := 0; x < out.width; x++ {
				out.pix[y*out.width+x] = RGBFloat{
					R: float32(row[4*x]) / 255,
					G: float32(row[4*x+1]) / 255,
					B: float32(row[4*x+2]) / 255,
				}
			}
		}
		return out
	}

	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
			out.pix[y*out.width+x] = RGBFloat{
				R: float32(c.R) / 0xffff,
				G: float32(c.G) / 0xffff,
				B: float32(c.B) / 0xffff,
			}
		}
	}
	return out
}

// ToNRGBA clamps the buffer to [0,1] and quantises it to 8 bits.
func (f *FloatImage) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			c := f.pix[y*f.width+x]
			i := out.PixOffset(x, y)
			out.Pix[i] = clamp8(c.R)
			out.Pix[i+1] = clamp8(c.G)
			out.Pix[i+2] = clamp8(c.B)
			out.Pix[i+3] = 0xff
		}
	}
	return out
}

func clamp8(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
