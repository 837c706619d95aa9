package director

import "gopkg.in/yaml.v3"

// Animation is a keyframed animation script. Every track holds exactly one
// value per keyframe; frames between keyframes are interpolated.
type Animation struct {
	Version           string  `yaml:"version"`
	Source            string  `yaml:"source,omitempty"`
	Effect            string  `yaml:"effect,omitempty"`
	FramesPerKeyframe int     `yaml:"frames_per_keyframe"`
	Keyframes         int     `yaml:"keyframes"`
	Tracks            []Track `yaml:"tracks"`
}

// Track is one animated parameter
type Track struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`            // null, bool, string, int, double, rgb, vector3, palette
	Morph string `yaml:"morph,omitempty"` // none, linear, catmullrom, catmullrom_angular, akima
	// Values are kept as raw nodes until the kind is known
	Values []yaml.Node `yaml:"values"`
}

// Well-known tracks read by the renderer.
const (
	TrackBlurRadius    = "hdr_blur_radius"
	TrackBlurIntensity = "hdr_blur_intensity"
)

// Track returns the track called name, or nil.
func (a *Animation) Track(name string) *Track {
	for i := range a.Tracks {
		if a.Tracks[i].Name == name {
			return &a.Tracks[i]
		}
	}
	return nil
}
