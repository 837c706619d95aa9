package effects

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/morphblur/internal/pixel"
	"github.com/ivlev/morphblur/internal/progress"
	"github.com/ivlev/morphblur/internal/system"
)

const (
	hdrBlurStatus = "Rendering HDR Blur effect"
	// progressInterval is the minimum time between two progress updates.
	progressInterval = 100 * time.Millisecond
)

// HDRBlur replaces every pixel with a weighted average of the pixels around it.
// The weight 1/(r²/(0.2*size) + intensity) falls off with the squared distance r²;
// intensity keeps the centre weight finite and sets how much it dominates.
type HDRBlur struct {
	image     pixel.Image
	radius    float64
	intensity float64

	progress progress.Sink
	workers  int
	now      func() time.Time
}

// HDRBlurOption configures an HDRBlur.
type HDRBlurOption func(*HDRBlur)

// WithProgress sets the sink receiving progress updates.
func WithProgress(s progress.Sink) HDRBlurOption {
	return func(b *HDRBlur) { b.progress = s }
}

// WithWorkers sets how many goroutines share the pixels of a row.
func WithWorkers(n int) HDRBlurOption {
	return func(b *HDRBlur) { b.workers = n }
}

// WithClock replaces time.Now for progress throttling and timing.
func WithClock(now func() time.Time) HDRBlurOption {
	return func(b *HDRBlur) { b.now = now }
}

func NewHDRBlur(img pixel.Image, opts ...HDRBlurOption) *HDRBlur {
	b := &HDRBlur{
		image:    img,
		progress: progress.Discard,
		workers:  1,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.workers < 1 {
		b.workers = 1
	}
	return b
}

func (b *HDRBlur) Name() string { return KindHDRBlur }

// SetParameters sets the radius, relative to (width+height)/1000 pixels,
// and the intensity term added to every weight denominator.
func (b *HDRBlur) SetParameters(radius, intensity float64) {
	b.radius = radius
	b.intensity = intensity
}

// blurKernel holds the per-pass constants.
type blurKernel struct {
	src           []pixel.RGBFloat
	width, height int
	size, size2   float64
	window        int
	intensity     float64
}

// Render blurs the image in place. Rows are processed top to bottom and ctx
// is checked before each one; after cancellation the remaining rows keep
// their original pixels. A final 100% progress update is always sent.
func (b *HDRBlur) Render(ctx context.Context) error {
	w, h := b.image.Width(), b.image.Height()
	raw := b.image.RawFloatBuffer()

	// Outputs must only see original neighbours.
	snapshot := system.GetFloatBuffer(len(raw))
	defer system.PutFloatBuffer(snapshot)
	copy(snapshot, raw)

	size := b.radius * float64(w+h) * 0.001
	k := blurKernel{
		src:       snapshot,
		width:     w,
		height:    h,
		size:      size,
		size2:     size * size,
		window:    int(size) + 1,
		intensity: b.intensity,
	}

	text := progress.NewText(b.now)
	throttle := progress.NewThrottle(progressInterval, b.now)

	for y := 0; y < h; y++ {
		if ctx.Err() != nil {
			break
		}

		b.renderRow(&k, y)

		if throttle.Ready() {
			done := float64(y+1) / float64(h)
			b.progress.Update(hdrBlurStatus, text.Get(done), done)
		}
	}

	b.progress.Update(hdrBlurStatus, text.Get(1), 1)
	return nil
}

// renderRow splits the row into contiguous bands, one goroutine per band.
func (b *HDRBlur) renderRow(k *blurKernel, y int) {
	bands := min(b.workers, k.width)
	if bands <= 1 {
		for x := 0; x < k.width; x++ {
			b.image.WritePixel(x, y, k.pixel(x, y))
		}
		return
	}

	var g errgroup.Group
	step := (k.width + bands - 1) / bands
	for x0 := 0; x0 < k.width; x0 += step {
		x1 := min(x0+step, k.width)
		g.Go(func() error {
			for x := x0; x < x1; x++ {
				b.image.WritePixel(x, y, k.pixel(x, y))
			}
			return nil
		})
	}
	_ = g.Wait()
}

// pixel computes one output pixel from the snapshot. A pixel with no
// neighbour inside the radius comes out black.
func (k *blurKernel) pixel(x, y int) pixel.RGBFloat {
	yStart := max(0, y-k.window)
	yEnd := min(k.height, y+k.window)
	xStart := max(0, x-k.window)
	xEnd := min(k.width, x+k.window)

	var weight, r, g, bl float64
	for yy := yStart; yy < yEnd; yy++ {
		dy := float64(y - yy)
		row := k.src[yy*k.width:]
		for xx := xStart; xx < xEnd; xx++ {
			dx := float64(x - xx)
			r2 := dx*dx + dy*dy
			if r2 >= k.size2 {
				continue
			}
			v := 1.0 / (r2/(0.2*k.size) + k.intensity)
			weight += v
			c := row[xx]
			r += float64(c.R) * v
			g += float64(c.G) * v
			bl += float64(c.B) * v
		}
	}

	if weight > 0 {
		r /= weight
		g /= weight
		bl /= weight
	}
	return pixel.RGBFloat{R: float32(r), G: float32(g), B: float32(bl)}
}
