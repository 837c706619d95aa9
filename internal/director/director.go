package director

import (
	"fmt"
	"math"

	"github.com/ivlev/morphblur/internal/value"
)

const animationVersion = "1.0"

// Director generates template animations for the blur effect
type Director struct {
	Keyframes         int
	FramesPerKeyframe int
	MinRadius         float64 // Radius at the first and last keyframe
	MinIntensity      float64 // Intensity at the blur peak
	MaxIntensity      float64 // Intensity at the first and last keyframe
}

// NewDirector creates a new Director with default settings
func NewDirector(keyframes, framesPerKeyframe int) *Director {
	return &Director{
		Keyframes:         keyframes,
		FramesPerKeyframe: framesPerKeyframe,
		MinRadius:         1.0,
		MinIntensity:      0.5,
		MaxIntensity:      2.0,
	}
}

// Template creates an animation that starts sharp, blurs up to radius in the
// middle and returns to a sharp image at the end. A zero radius would turn
// the frame black, so the ends keep MinRadius.
func (d *Director) Template(source string, radius, intensity float64) (*Animation, error) {
	if d.Keyframes < 2 {
		return nil, fmt.Errorf("template needs at least 2 keyframes, got %d", d.Keyframes)
	}
	if d.FramesPerKeyframe < 1 {
		return nil, fmt.Errorf("frames per keyframe must be positive, got %d", d.FramesPerKeyframe)
	}

	anim := &Animation{
		Version:           animationVersion,
		Source:            source,
		Effect:            "hdr_blur",
		FramesPerKeyframe: d.FramesPerKeyframe,
		Keyframes:         d.Keyframes,
	}

	radii := make([]value.Value, d.Keyframes)
	intensities := make([]value.Value, d.Keyframes)
	labels := make([]value.Value, d.Keyframes)
	for i := 0; i < d.Keyframes; i++ {
		w := d.envelope(i)
		radii[i] = value.Double(d.MinRadius + (radius-d.MinRadius)*w)
		intensities[i] = value.Double(d.calculateIntensity(intensity, w))
		labels[i] = value.String(d.label(i))
	}

	if err := anim.AddTrack(TrackBlurRadius, value.KindDouble, value.MethodCatmullRom, radii); err != nil {
		return nil, err
	}
	if err := anim.AddTrack(TrackBlurIntensity, value.KindDouble, value.MethodCatmullRom, intensities); err != nil {
		return nil, err
	}
	if err := anim.AddTrack("keyframe_label", value.KindString, value.MethodNone, labels); err != nil {
		return nil, err
	}

	return anim, nil
}

// envelope is 0 at both ends and 1 in the middle of the keyframe range
func (d *Director) envelope(i int) float64 {
	w := math.Sin(math.Pi * float64(i) / float64(d.Keyframes-1))
	// sin(pi) is not exactly zero
	if math.Abs(w) < 1e-12 {
		return 0
	}
	return w
}

// calculateIntensity moves from MaxIntensity towards the requested intensity as the blur grows
func (d *Director) calculateIntensity(peak, w float64) float64 {
	if peak <= 0 {
		peak = d.MinIntensity
	}
	v := d.MaxIntensity + (peak-d.MaxIntensity)*w

	// Clamp to a positive range
	lo, hi := math.Min(peak, d.MaxIntensity), math.Max(peak, d.MaxIntensity)
	return math.Max(lo, math.Min(hi, v))
}

func (d *Director) label(i int) string {
	switch i {
	case 0:
		return "sharp_in"
	case d.Keyframes - 1:
		return "sharp_out"
	}
	return fmt.Sprintf("blur_%d", i)
}
