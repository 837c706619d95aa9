// Package morph interpolates typed animation parameters between keyframes.
//
// An Engine keeps a small window of the most recently added keyframe samples
// of one parameter. The window is ordered by insertion, not by frame index:
// callers feed the keyframes surrounding the position being rendered and
// older ones fall out of the window as the animation advances.
package morph

import (
	"github.com/ivlev/morphblur/internal/spline"
	"github.com/ivlev/morphblur/internal/value"
)

// WindowSize is the number of samples an Engine retains.
const WindowSize = 6

// Sample is one keyframe value of a parameter.
type Sample struct {
	FrameIndex int
	Parameter  value.Parameter
}

// Engine interpolates one parameter. It is not safe for concurrent use:
// the Akima fit context is reused by every call.
type Engine struct {
	samples []Sample
	clamp   ClampPolicy
	akima   *spline.Akima
	stencil []float64
	points  []float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithClampPolicy selects how Catmull-Rom results below -1e20 are clamped.
func WithClampPolicy(p ClampPolicy) Option {
	return func(e *Engine) { e.clamp = p }
}

func New(opts ...Option) *Engine {
	akima, err := spline.NewAkimaPeriodic(WindowSize)
	if err != nil {
		// WindowSize is a constant above the spline minimum.
		panic(err)
	}
	e := &Engine{
		samples: make([]Sample, 0, WindowSize+1),
		clamp:   ClampReference,
		akima:   akima,
		stencil: []float64{-2, -1, 0, 1, 2, 3},
		points:  make([]float64, WindowSize),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddSample appends a keyframe value unless frameIndex is already present.
// When the window overflows the oldest inserted sample is dropped.
func (e *Engine) AddSample(frameIndex int, p value.Parameter) {
	if e.find(frameIndex) != -1 {
		return
	}
	e.samples = append(e.samples, Sample{FrameIndex: frameIndex, Parameter: p})
	if len(e.samples) > WindowSize {
		copy(e.samples, e.samples[1:])
		e.samples = e.samples[:WindowSize]
	}
}

// Samples returns the window in insertion order.
func (e *Engine) Samples() []Sample {
	out := make([]Sample, len(e.samples))
	copy(out, e.samples)
	return out
}

func (e *Engine) Len() int { return len(e.samples) }

func (e *Engine) find(frameIndex int) int {
	for i, s := range e.samples {
		if s.FrameIndex == frameIndex {
			return i
		}
	}
	return -1
}

// Interpolate returns the parameter at frameIndex moved factor of the way
// toward the next sample in the window.
//
// An unknown frameIndex yields the first sample of the window unchanged.
// String, bool and null values always hold. Otherwise the method of the first
// sample in the window selects the algorithm.
func (e *Engine) Interpolate(frameIndex int, factor float64) value.Parameter {
	if len(e.samples) == 0 {
		return value.Parameter{}
	}
	key := e.find(frameIndex)
	if key == -1 {
		return e.samples[0].Parameter
	}

	ops, ok := kindTable[e.samples[key].Parameter.Actual().Kind()]
	if !ok {
		return e.hold(key)
	}

	switch e.samples[0].Parameter.MorphMethod() {
	case value.MethodLinear:
		return e.linear(key, factor, ops)
	case value.MethodCatmullRom, value.MethodCatmullRomAngular:
		// The angular variant has no separate treatment yet.
		return e.catmullRom(key, factor, ops)
	case value.MethodAkima:
		return e.akimaSpline(key, factor, ops)
	default:
		return e.hold(key)
	}
}

func (e *Engine) hold(key int) value.Parameter {
	return e.samples[key].Parameter
}

func (e *Engine) channels(key int, ops kindOps) []float64 {
	return ops.channels(e.samples[key].Parameter.Actual())
}

// gather collects the channels of the given window indices, aligned to the
// channel layout of the matched sample.
func (e *Engine) gather(key int, ops kindOps, keys ...int) [][]float64 {
	ref := e.channels(key, ops)
	out := make([][]float64, len(keys))
	for i, k := range keys {
		if k == key {
			out[i] = ref
			continue
		}
		out[i] = alignChannels(ref, e.channels(k, ops))
	}
	return out
}

func (e *Engine) linear(key int, factor float64, ops kindOps) value.Parameter {
	if key == len(e.samples)-1 {
		return e.hold(key)
	}
	pts := e.gather(key, ops, key, key+1)
	out := make([]float64, len(pts[0]))
	for c := range out {
		out[c] = Linear(factor, pts[0][c], pts[1][c])
	}
	return e.hold(key).WithActual(ops.rebuild(out))
}

func (e *Engine) catmullRom(key int, factor float64, ops kindOps) value.Parameter {
	if !ops.splines {
		return e.hold(key)
	}
	last := len(e.samples) - 1
	k1 := key
	if key >= 1 {
		k1 = key - 1
	}
	pts := e.gather(key, ops, k1, key, min(key+1, last), min(key+2, last))
	out := make([]float64, len(pts[0]))
	for c := range out {
		out[c] = CatmullRom(factor, pts[0][c], pts[1][c], pts[2][c], pts[3][c], e.clamp)
	}
	return e.hold(key).WithActual(ops.rebuild(out))
}

func (e *Engine) akimaSpline(key int, factor float64, ops kindOps) value.Parameter {
	if !ops.splines {
		return e.hold(key)
	}
	last := len(e.samples) - 1
	k1 := key
	switch {
	case key >= 2:
		k1 = key - 2
	case key >= 1:
		k1 = key - 1
	}
	k2 := key
	if key >= 1 {
		k2 = key - 1
	}
	pts := e.gather(key, ops, k1, k2, key, min(key+1, last), min(key+2, last), min(key+3, last))

	out := make([]float64, len(pts[2]))
	for c := range out {
		for i := range pts {
			e.points[i] = pts[i][c]
		}
		v, err := e.akimaEval(factor)
		if err != nil {
			return e.hold(key)
		}
		out[c] = v
	}
	return e.hold(key).WithActual(ops.rebuild(out))
}

func (e *Engine) akimaEval(factor float64) (float64, error) {
	if err := e.akima.Init(e.stencil, e.points); err != nil {
		return 0, err
	}
	return e.akima.Eval(factor)
}
