package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/morphblur/internal/effects"
	"github.com/ivlev/morphblur/internal/frames"
	"github.com/ivlev/morphblur/internal/morph"
	"github.com/ivlev/morphblur/internal/system"
)

var ErrInvalid = errors.New("invalid config")

// Clamp policy names.
const (
	ClampReference = "reference"
	ClampSymmetric = "symmetric"
)

// Config holds input, output and render settings.
type Config struct {
	// Paths
	InputPath     string `yaml:"input"`
	AnimationPath string `yaml:"animation"`
	OutputDir     string `yaml:"output_dir"`

	// Render settings
	Format            string  `yaml:"format"`
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	DPI               int     `yaml:"dpi"`
	Page              int     `yaml:"page"`
	Workers           int     `yaml:"workers"`
	BlurWorkers       int     `yaml:"blur_workers"`
	Keyframes         int     `yaml:"keyframes"`
	FramesPerKeyframe int     `yaml:"frames_per_keyframe"`
	Effect            string  `yaml:"effect"`
	Radius            float64 `yaml:"radius"`
	Intensity         float64 `yaml:"intensity"`
	Clamp             string  `yaml:"clamp"`

	ShowStats    bool   `yaml:"show_stats"`
	BenchmarkLog string `yaml:"benchmark_log"`
	BuildVersion string `yaml:"-"`
}

// Load reads a YAML config file. Unknown keys are rejected.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputPath     string
	AnimationPath string
	OutputDir     string
	Format        string
	Width         int
	Height        int
	DPI           int
	Page          int
	Workers       int
	Radius        float64
	Intensity     float64
	Clamp         string
	ShowStats     bool
}

// Resolve applies flags over the file values and fills in defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags, res system.Resources) {
	// CLI flags override config file
	if flags.InputPath != "" {
		c.InputPath = flags.InputPath
	}
	if flags.AnimationPath != "" {
		c.AnimationPath = flags.AnimationPath
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.DPI > 0 {
		c.DPI = flags.DPI
	}
	if flags.Page > 0 {
		c.Page = flags.Page
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	// Negative values pass through so Validate can reject them
	if flags.Radius != 0 {
		c.Radius = flags.Radius
	}
	if flags.Intensity != 0 {
		c.Intensity = flags.Intensity
	}
	if flags.Clamp != "" {
		c.Clamp = flags.Clamp
	}
	if flags.ShowStats {
		c.ShowStats = true
	}

	// Defaults
	if c.OutputDir == "" {
		c.OutputDir = "frames"
	}
	if c.Format == "" {
		c.Format = "png"
	}
	c.Format = strings.ToLower(c.Format)
	if c.DPI <= 0 {
		c.DPI = 150
	}
	if c.Keyframes <= 0 {
		c.Keyframes = 5
	}
	if c.FramesPerKeyframe <= 0 {
		c.FramesPerKeyframe = 25
	}
	if c.Effect == "" {
		c.Effect = effects.KindHDRBlur
	}
	if c.Radius == 0 {
		c.Radius = 100
	}
	if c.Intensity == 0 {
		c.Intensity = 1
	}
	if c.Clamp == "" {
		c.Clamp = ClampReference
	}
	if c.BenchmarkLog == "" {
		c.BenchmarkLog = "benchmark.log"
	}
	if c.Workers <= 0 {
		c.Workers = res.DefaultWorkers(c.FrameBytes())
	}
	if c.BlurWorkers <= 0 {
		c.BlurWorkers = 1
	}
}

// FrameBytes estimates the memory one frame in flight needs: the float
// image, the blur snapshot and the 8-bit output.
func (c *Config) FrameBytes() uint64 {
	w, h := c.Width, c.Height
	if w <= 0 || h <= 0 {
		w, h = 1920, 1080
	}
	return uint64(w) * uint64(h) * (12 + 12 + 4)
}

// Validate checks settings after Resolve.
func (c *Config) Validate() error {
	var problems []string

	if c.InputPath == "" && c.AnimationPath == "" {
		problems = append(problems, "no input image or animation")
	}
	if c.Width < 0 || c.Height < 0 {
		problems = append(problems, fmt.Sprintf("negative frame size %dx%d", c.Width, c.Height))
	}
	if c.Radius < 0 {
		problems = append(problems, fmt.Sprintf("radius must not be negative, got %g", c.Radius))
	}
	// intensity is the only term keeping the centre weight finite
	if c.Intensity <= 0 {
		problems = append(problems, fmt.Sprintf("intensity must be positive, got %g", c.Intensity))
	}
	if c.Page < 0 {
		problems = append(problems, fmt.Sprintf("page must not be negative, got %d", c.Page))
	}
	if !isFormat(c.Format) {
		problems = append(problems, fmt.Sprintf("unknown format %q", c.Format))
	}
	if _, err := effects.ParseKind(c.Effect); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Clamp != ClampReference && c.Clamp != ClampSymmetric {
		problems = append(problems, fmt.Sprintf("unknown clamp policy %q", c.Clamp))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// ClampPolicy maps the clamp name to the morph engine policy.
func (c *Config) ClampPolicy() morph.ClampPolicy {
	if c.Clamp == ClampSymmetric {
		return morph.ClampSymmetric
	}
	return morph.ClampReference
}

func isFormat(f string) bool {
	for _, known := range frames.Formats() {
		if f == known {
			return true
		}
	}
	return false
}
