package source

import (
	"fmt"
	"image"

	"github.com/skip2/go-qrcode"
)

// DefaultQRSize is the test card edge in pixels at 72 dpi.
const DefaultQRSize = 256

// QRSource renders a QR code as a single page test card. Its hard black and
// white edges make blur falloff easy to inspect.
type QRSource struct {
	code *qrcode.QRCode
	size int
}

func NewQRSource(content string, size int) (*QRSource, error) {
	if content == "" {
		return nil, fmt.Errorf("source: empty qr content")
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("source: qr: %w", err)
	}
	return &QRSource{code: code, size: size}, nil
}

func (q *QRSource) PageCount() int { return 1 }

func (q *QRSource) GetPageDimensions(index int) (float64, float64, error) {
	if index != 0 {
		return 0, 0, fmt.Errorf("source: page %d out of range [0, 1)", index)
	}
	return float64(q.size), float64(q.size), nil
}

// RenderPage scales the card with dpi relative to 72.
func (q *QRSource) RenderPage(index int, dpi int) (image.Image, error) {
	if index != 0 {
		return nil, fmt.Errorf("source: page %d out of range [0, 1)", index)
	}
	size := q.size
	if dpi > 0 {
		size = q.size * dpi / 72
	}
	return q.code.Image(size), nil
}

func (q *QRSource) Close() error { return nil }
