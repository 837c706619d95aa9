package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/morphblur/internal/morph"
	"github.com/ivlev/morphblur/internal/system"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "morphblur.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
input: card.png
output_dir: out
format: webp
width: 640
radius: 80
intensity: 0.5
clamp: symmetric
show_stats: true
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "card.png", cfg.InputPath)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "webp", cfg.Format)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 80.0, cfg.Radius)
	assert.Equal(t, 0.5, cfg.Intensity)
	assert.True(t, cfg.ShowStats)
	assert.Equal(t, morph.ClampSymmetric, cfg.ClampPolicy())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("radius: 1\nzoom: 2\n"), 0644))
	_, err = Load(unknown)
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	cfg := Config{InputPath: "file.png", Radius: 10, Workers: 2}
	cfg.Resolve(Flags{Radius: 30, Format: "TIFF", ShowStats: true}, system.Resources{CPUs: 8})

	assert.Equal(t, "file.png", cfg.InputPath)
	assert.Equal(t, 30.0, cfg.Radius)
	assert.Equal(t, "tiff", cfg.Format)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "frames", cfg.OutputDir)
	assert.Equal(t, 150, cfg.DPI)
	assert.Equal(t, 1.0, cfg.Intensity)
	assert.Equal(t, ClampReference, cfg.Clamp)
	assert.Equal(t, morph.ClampReference, cfg.ClampPolicy())
	assert.Equal(t, 1, cfg.BlurWorkers)
	assert.True(t, cfg.ShowStats)
	require.NoError(t, cfg.Validate())

	auto := Config{InputPath: "file.png"}
	auto.Resolve(Flags{}, system.Resources{CPUs: 6})
	assert.Equal(t, 6, auto.Workers)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		c := Config{InputPath: "in.png"}
		c.Resolve(Flags{}, system.Resources{CPUs: 1})
		return c
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no input", func(c *Config) { c.InputPath = "" }},
		{"negative radius", func(c *Config) { c.Radius = -1 }},
		{"zero intensity", func(c *Config) { c.Intensity = 0 }},
		{"negative intensity", func(c *Config) { c.Intensity = -2 }},
		{"format", func(c *Config) { c.Format = "gif" }},
		{"effect", func(c *Config) { c.Effect = "bloom" }},
		{"clamp", func(c *Config) { c.Clamp = "mirror" }},
		{"size", func(c *Config) { c.Width = -5 }},
		{"page", func(c *Config) { c.Page = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			require.NoError(t, c.Validate())
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}
