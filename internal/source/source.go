package source

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/image/draw"
)

// Source yields the base images an animation is rendered over.
type Source interface {
	PageCount() int
	GetPageDimensions(index int) (width, height float64, err error)
	RenderPage(index int, dpi int) (image.Image, error)
	Close() error
}

// QRPrefix selects the generated test card instead of a file.
const QRPrefix = "qr:"

// Open picks a source by path: "qr:<text>" for a test card, .pdf for a
// document and anything else for an image file or a directory of images.
func Open(path string) (Source, error) {
	switch {
	case strings.HasPrefix(path, QRPrefix):
		return NewQRSource(strings.TrimPrefix(path, QRPrefix), DefaultQRSize)
	case strings.EqualFold(filepath.Ext(path), ".pdf"):
		return NewFitzPDFSource(path)
	default:
		return NewImageSource(path)
	}
}

type FitzPDFSource struct {
	doc  *fitz.Document
	path string
}

func NewFitzPDFSource(path string) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("source: open pdf %s: %w", path, err)
	}
	return &FitzPDFSource{doc: doc, path: path}, nil
}

func (f *FitzPDFSource) PageCount() int {
	return f.doc.NumPage()
}

func (f *FitzPDFSource) GetPageDimensions(index int) (float64, float64, error) {
	rect, err := f.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

// RenderPage opens its own document handle, fitz documents are not safe to share between goroutines.
func (f *FitzPDFSource) RenderPage(index int, dpi int) (image.Image, error) {
	if index < 0 || index >= f.PageCount() {
		return nil, fmt.Errorf("source: page %d out of range [0, %d)", index, f.PageCount())
	}
	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	return workerDoc.ImageDPI(index, float64(dpi))
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}

// Fit scales img to width x height with Catmull-Rom resampling. A zero
// dimension is derived from the other one to keep the aspect ratio; when
// both are zero img is returned as is.
func Fit(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if (width <= 0 && height <= 0) || b.Empty() {
		return img
	}
	if width <= 0 {
		width = max(1, b.Dx()*height/b.Dy())
	}
	if height <= 0 {
		height = max(1, b.Dy()*width/b.Dx())
	}
	if width == b.Dx() && height == b.Dy() {
		return img
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
