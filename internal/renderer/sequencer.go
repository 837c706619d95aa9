// Package renderer turns an animation script into per-frame parameter values.
package renderer

import (
	"fmt"

	"github.com/ivlev/morphblur/internal/director"
	"github.com/ivlev/morphblur/internal/morph"
	"github.com/ivlev/morphblur/internal/value"
)

// FrameState holds every track's value at one frame
type FrameState struct {
	Frame    int
	Keyframe int
	Factor   float64 // Position between Keyframe and the next one, in [0, 1)
	Values   map[string]value.Value
}

// Radius returns the blur radius track, or fallback when the animation has none.
func (s FrameState) Radius(fallback float64) float64 {
	return s.number(director.TrackBlurRadius, fallback)
}

// Intensity returns the blur intensity track, or fallback when the animation has none.
func (s FrameState) Intensity(fallback float64) float64 {
	return s.number(director.TrackBlurIntensity, fallback)
}

func (s FrameState) number(track string, fallback float64) float64 {
	v, ok := s.Values[track]
	if !ok {
		return fallback
	}
	switch v.Kind() {
	case value.KindDouble, value.KindInt:
		return v.AsDouble()
	}
	return fallback
}

// Sequencer walks an animation frame by frame. Each track has its own
// morph engine, fed with the keyframes around the current position.
type Sequencer struct {
	anim    *director.Animation
	opts    []morph.Option
	params  [][]value.Parameter // [keyframe][track]
	engines []*morph.Engine
	lastKey int
}

// NewSequencer decodes every keyframe of anim up front.
func NewSequencer(anim *director.Animation, opts ...morph.Option) (*Sequencer, error) {
	if err := anim.Validate(); err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	s := &Sequencer{
		anim:   anim,
		opts:   opts,
		params: make([][]value.Parameter, anim.Keyframes),
	}
	for k := range s.params {
		p, err := anim.Parameters(k)
		if err != nil {
			return nil, fmt.Errorf("renderer: keyframe %d: %w", k, err)
		}
		s.params[k] = p
	}
	s.reset()
	return s, nil
}

func (s *Sequencer) reset() {
	s.engines = make([]*morph.Engine, len(s.anim.Tracks))
	for i := range s.engines {
		s.engines[i] = morph.New(s.opts...)
	}
	s.lastKey = 0
}

// TotalFrames is the number of frames from the first keyframe to the last one inclusive.
func (s *Sequencer) TotalFrames() int {
	return (s.anim.Keyframes-1)*s.anim.FramesPerKeyframe + 1
}

// Frame interpolates every track at frame.
func (s *Sequencer) Frame(frame int) (FrameState, error) {
	if frame < 0 || frame >= s.TotalFrames() {
		return FrameState{}, fmt.Errorf("renderer: frame %d out of range [0, %d)", frame, s.TotalFrames())
	}

	fpk := s.anim.FramesPerKeyframe
	key := frame / fpk
	factor := float64(frame%fpk) / float64(fpk)

	// Engines keep samples in insertion order; moving backwards would leave
	// later keyframes ahead of earlier ones in the window.
	if key < s.lastKey {
		s.reset()
	}
	s.lastKey = key

	state := FrameState{
		Frame:    frame,
		Keyframe: key,
		Factor:   factor,
		Values:   make(map[string]value.Value, len(s.engines)),
	}

	for i, engine := range s.engines {
		for k := key - 2; k <= key+3; k++ {
			if k < 0 || k >= s.anim.Keyframes {
				continue
			}
			engine.AddSample(k, s.params[k][i])
		}
		p := engine.Interpolate(key, factor)
		state.Values[s.anim.Tracks[i].Name] = p.Actual()
	}

	return state, nil
}

// Frames returns the states of frames [from, to).
func (s *Sequencer) Frames(from, to int) ([]FrameState, error) {
	if from > to {
		return nil, fmt.Errorf("renderer: invalid frame range %d..%d", from, to)
	}
	states := make([]FrameState, 0, to-from)
	for f := from; f < to; f++ {
		st, err := s.Frame(f)
		if err != nil {
			return nil, err
		}
		states = append(states, st)
	}
	return states, nil
}
