package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, verbose = "", false

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInitAndSample(t *testing.T) {
	dir := t.TempDir()
	anim := filepath.Join(dir, "anim.yaml")

	_, err := execute(t, "init", "-o", anim, "--keyframes", "3", "--frames-per-keyframe", "2", "--radius", "40")
	require.NoError(t, err)
	_, err = os.Stat(anim)
	require.NoError(t, err)

	out, err := execute(t, "sample", anim)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[0], "hdr_blur_radius=1")
	assert.Contains(t, lines[2], "hdr_blur_radius=40")
	assert.Contains(t, lines[2], "keyframe_label=blur_1")

	out, err = execute(t, "sample", anim, "--from", "1", "--to", "3")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestRenderQRCard(t *testing.T) {
	dir := t.TempDir()
	anim := filepath.Join(dir, "anim.yaml")
	frames := filepath.Join(dir, "frames")

	_, err := execute(t, "init", "-o", anim, "--keyframes", "2", "--frames-per-keyframe", "1", "-i", "qr:morphblur")
	require.NoError(t, err)

	_, err = execute(t, "render", "-a", anim, "-o", frames, "--width", "24", "--height", "24", "--format", "webp", "-w", "2")
	require.NoError(t, err)

	for _, name := range []string{"frame_00000.webp", "frame_00001.webp"} {
		_, err := os.Stat(filepath.Join(frames, name))
		assert.NoError(t, err, name)
	}
}

func TestBlurCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "blurred.png")

	_, err := execute(t, "blur", out, "-i", "qr:hello", "--width", "20", "--height", "20", "--radius", "80")
	require.NoError(t, err)
	_, err = os.Stat(out)
	assert.NoError(t, err)

	_, err = execute(t, "blur", filepath.Join(dir, "blurred.jpg"), "-i", "qr:hello")
	assert.Error(t, err)

	_, err = execute(t, "blur", out, "-i", "qr:hello", "--intensity", "-1")
	assert.Error(t, err)
}
