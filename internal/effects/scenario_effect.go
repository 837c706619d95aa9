package effects

import (
	"context"
	"fmt"

	"github.com/ivlev/morphblur/internal/pixel"
)

// Settings are the per-frame effect parameters taken from the animation.
type Settings struct {
	Kind      string
	Radius    float64
	Intensity float64
}

// NewScenarioEffect builds the effect for one frame of an animation.
// Kind "none" yields a pass that leaves the image untouched.
func NewScenarioEffect(img pixel.Image, s Settings, opts ...HDRBlurOption) (Effect, error) {
	kind, err := ParseKind(s.Kind)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindNone:
		return passthrough{}, nil
	case KindHDRBlur:
		// Отрицательный радиус даёт пустое окно, поэтому ограничиваем снизу нулём
		radius := s.Radius
		if radius < 0 {
			radius = 0
		}
		blur := NewHDRBlur(img, opts...)
		blur.SetParameters(radius, s.Intensity)
		return blur, nil
	}
	return nil, fmt.Errorf("effect %s has no renderer", kind)
}

type passthrough struct{}

func (passthrough) Name() string { return KindNone }

func (passthrough) Render(context.Context) error { return nil }
