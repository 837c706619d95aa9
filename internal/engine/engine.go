package engine

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/morphblur/internal/config"
	"github.com/ivlev/morphblur/internal/director"
	"github.com/ivlev/morphblur/internal/effects"
	"github.com/ivlev/morphblur/internal/frames"
	"github.com/ivlev/morphblur/internal/morph"
	"github.com/ivlev/morphblur/internal/pixel"
	"github.com/ivlev/morphblur/internal/progress"
	"github.com/ivlev/morphblur/internal/renderer"
	"github.com/ivlev/morphblur/internal/source"
)

// Project renders an animation over one page of a source into frame files.
type Project struct {
	Config    *config.Config
	Source    source.Source
	Animation *director.Animation
	Writer    frames.Writer
	Log       *logrus.Entry

	now func() time.Time
}

func NewProject(cfg *config.Config, src source.Source, anim *director.Animation, w frames.Writer, log *logrus.Entry) *Project {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Project{
		Config:    cfg,
		Source:    src,
		Animation: anim,
		Writer:    w,
		Log:       log,
		now:       time.Now,
	}
}

// Stats describes one render run.
type Stats struct {
	RunID     string
	Frames    int
	Written   int
	Cancelled bool

	Total    time.Duration
	Load     time.Duration
	Sequence time.Duration
	Render   time.Duration
}

// FPS is the number of frames written per second of total run time.
func (s Stats) FPS() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Written) / s.Total.Seconds()
}

// Run renders every frame of the animation. Cancelling ctx stops scheduling
// new frames; frames whose blur was interrupted are not written and the
// returned stats are marked cancelled.
func (p *Project) Run(ctx context.Context) (Stats, error) {
	stats := Stats{RunID: uuid.NewString()}
	log := p.Log.WithField("run", stats.RunID)
	startTime := p.now()

	if p.Source.PageCount() == 0 {
		return stats, fmt.Errorf("engine: source has no pages")
	}

	base, err := p.loadBase()
	if err != nil {
		return stats, err
	}
	loadEnd := p.now()
	stats.Load = loadEnd.Sub(startTime)

	seq, err := renderer.NewSequencer(p.Animation, morph.WithClampPolicy(p.Config.ClampPolicy()))
	if err != nil {
		return stats, err
	}
	states, err := seq.Frames(0, seq.TotalFrames())
	if err != nil {
		return stats, err
	}
	renderStart := p.now()
	stats.Sequence = renderStart.Sub(loadEnd)
	stats.Frames = len(states)

	kind := p.Animation.Effect
	if kind == "" {
		kind = p.Config.Effect
	}

	log.WithFields(logrus.Fields{
		"frames":  stats.Frames,
		"size":    fmt.Sprintf("%dx%d", base.Width(), base.Height()),
		"effect":  kind,
		"workers": p.Config.Workers,
	}).Info("[*] Rendering animation")

	var written atomic.Int64
	text := progress.NewText(p.now)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, p.Config.Workers))

	for _, st := range states {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return p.renderFrame(gctx, log, base, kind, st, func() {
				n := written.Add(1)
				done := float64(n) / float64(stats.Frames)
				log.WithField("frame", st.Frame).Infof("[>] Ready: %d/%d (%s)", n, stats.Frames, text.Get(done))
			})
		})
	}

	err = g.Wait()
	stats.Written = int(written.Load())
	stats.Render = p.now().Sub(renderStart)
	stats.Total = p.now().Sub(startTime)
	if err != nil {
		return stats, err
	}
	if ctx.Err() != nil {
		stats.Cancelled = true
		log.WithField("written", stats.Written).Warn("[!] Render cancelled")
	}

	if p.Config.ShowStats {
		p.report(log, stats)
	}
	return stats, nil
}

// loadBase renders the configured page and scales it to the frame size.
func (p *Project) loadBase() (*pixel.FloatImage, error) {
	page := p.Config.Page
	if page >= p.Source.PageCount() {
		return nil, fmt.Errorf("engine: page %d out of range, source has %d", page, p.Source.PageCount())
	}
	img, err := p.Source.RenderPage(page, p.Config.DPI)
	if err != nil {
		return nil, fmt.Errorf("engine: render page %d: %w", page, err)
	}
	img = source.Fit(img, p.Config.Width, p.Config.Height)
	return pixel.FromImage(img), nil
}

func (p *Project) renderFrame(ctx context.Context, log *logrus.Entry, base *pixel.FloatImage, kind string, st renderer.FrameState, ready func()) error {
	frame := base.Clone()
	settings := effects.Settings{
		Kind:      kind,
		Radius:    st.Radius(p.Config.Radius),
		Intensity: st.Intensity(p.Config.Intensity),
	}

	eff, err := effects.NewScenarioEffect(frame, settings,
		effects.WithWorkers(p.Config.BlurWorkers),
		effects.WithProgress(progress.LogSink{Log: log.WithField("frame", st.Frame)}),
	)
	if err != nil {
		return fmt.Errorf("engine: frame %d: %w", st.Frame, err)
	}
	if err := eff.Render(ctx); err != nil {
		return fmt.Errorf("engine: frame %d: %w", st.Frame, err)
	}
	// Прерванный кадр обработан лишь частично, не сохраняем его
	if ctx.Err() != nil {
		return nil
	}

	if err := p.Writer.WriteFrame(st.Frame, frame.ToNRGBA()); err != nil {
		return fmt.Errorf("engine: frame %d: %w", st.Frame, err)
	}
	ready()
	return nil
}

func (p *Project) report(log *logrus.Entry, s Stats) {
	log.WithFields(logrus.Fields{
		"build":    p.Config.BuildVersion,
		"total":    fmt.Sprintf("%.2fs", s.Total.Seconds()),
		"load":     fmt.Sprintf("%.2fs", s.Load.Seconds()),
		"sequence": fmt.Sprintf("%.2fs", s.Sequence.Seconds()),
		"render":   fmt.Sprintf("%.2fs", s.Render.Seconds()),
		"fps":      fmt.Sprintf("%.2f", s.FPS()),
	}).Info("--- [PERFORMANCE REPORT] ---")

	if err := AppendBenchmark(p.Config.BenchmarkLog, p.now(), p.Config, s); err != nil {
		log.WithError(err).Warn("[!] Failed to write benchmark log")
	}
}

// AppendBenchmark appends one line describing the run to path.
func AppendBenchmark(path string, at time.Time, cfg *config.Config, s Stats) error {
	entry := fmt.Sprintf("[%s] Run: %s | Build: %s | Input: %s | Frames: %d/%d | Total: %.2fs | Render: %.2fs | FPS: %.2f | Cancelled: %t\n",
		at.Format("2006-01-02 15:04:05"),
		s.RunID,
		cfg.BuildVersion,
		filepath.Base(cfg.InputPath),
		s.Written,
		s.Frames,
		s.Total.Seconds(),
		s.Render.Seconds(),
		s.FPS(),
		s.Cancelled,
	)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(entry); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// BlurImage applies a single HDR blur pass to img. When ctx is cancelled the
// partly blurred image is returned together with ctx.Err().
func BlurImage(ctx context.Context, img image.Image, radius, intensity float64, opts ...effects.HDRBlurOption) (*image.NRGBA, error) {
	buf := pixel.FromImage(img)

	blur := effects.NewHDRBlur(buf, opts...)
	blur.SetParameters(radius, intensity)
	if err := blur.Render(ctx); err != nil {
		return nil, err
	}
	return buf.ToNRGBA(), ctx.Err()
}
