package director

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/morphblur/internal/value"
)

func node(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	require.NotEmpty(t, doc.Content)
	return doc.Content[0]
}

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		name string
		kind value.Kind
		src  string
		want value.Value
	}{
		{"bool", value.KindBool, "true", value.Bool(true)},
		{"string", value.KindString, "hello", value.String("hello")},
		{"int", value.KindInt, "-42", value.Int(-42)},
		{"double", value.KindDouble, "1.5e3", value.Double(1500)},
		{"double from int", value.KindDouble, "7", value.Double(7)},
		{"rgb", value.KindRGB, "[1, 2, 3]", value.Color(value.RGB{R: 1, G: 2, B: 3})},
		{"vector", value.KindVector3, "[0.5, -1, 2]", value.Vector(value.Vector3{X: 0.5, Y: -1, Z: 2})},
		{"palette", value.KindPalette, "[[1, 2, 3], [4, 5, 6]]", value.PaletteOf(value.Palette{{R: 1, G: 2, B: 3}, {R: 4, G: 5, B: 6}})},
		{"empty palette", value.KindPalette, "[]", value.PaletteOf(value.Palette{})},
		{"null", value.KindNull, "~", value.Null()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeValue(tt.kind, node(t, tt.src))
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestDecodeValueErrors(t *testing.T) {
	tests := []struct {
		name string
		kind value.Kind
		src  string
	}{
		{"short rgb", value.KindRGB, "[1, 2]"},
		{"rgb scalar", value.KindRGB, "12"},
		{"long vector", value.KindVector3, "[1, 2, 3, 4]"},
		{"palette scalar", value.KindPalette, "red"},
		{"palette bad entry", value.KindPalette, "[[1, 2, 3], [1]]"},
		{"int from text", value.KindInt, "ten"},
		{"bool from text", value.KindBool, "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeValue(tt.kind, node(t, tt.src))
			assert.Error(t, err)
		})
	}
}

func TestEncodeValueRoundTrip(t *testing.T) {
	values := []value.Value{
		value.Null(),
		value.Bool(false),
		value.String("label"),
		value.Int(7),
		value.Double(0.25),
		value.Color(value.RGB{R: 100, G: 200, B: 300}),
		value.Vector(value.Vector3{X: 1, Y: 2, Z: 3}),
		value.PaletteOf(value.Palette{{R: 1}, {G: 1}}),
	}
	for _, v := range values {
		n, err := EncodeValue(v)
		require.NoError(t, err)
		got, err := DecodeValue(v.Kind(), &n)
		require.NoError(t, err)
		assert.True(t, v.Equal(got), "%s: got %s", v.Kind(), got)
	}
}

const validAnimation = `
version: "1.0"
frames_per_keyframe: 10
keyframes: 3
tracks:
  - name: hdr_blur_radius
    kind: double
    morph: catmullrom
    values: [0, 50, 0]
  - name: tint
    kind: rgb
    morph: linear
    values: [[0, 0, 0], [10, 20, 30], [0, 0, 0]]
`

func parse(t *testing.T, src string) *Animation {
	t.Helper()
	var a Animation
	require.NoError(t, yaml.Unmarshal([]byte(src), &a))
	return &a
}

func TestValidate(t *testing.T) {
	a := parse(t, validAnimation)
	require.NoError(t, a.Validate())
	assert.NotNil(t, a.Track("tint"))
	assert.Nil(t, a.Track("missing"))

	params, err := a.Parameters(1)
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Equal(t, 50.0, params[0].Actual().AsDouble())
	assert.Equal(t, value.RGB{R: 10, G: 20, B: 30}, params[1].Actual().AsRGB())

	_, err = a.Parameters(3)
	assert.Error(t, err)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *Animation)
		target error
	}{
		{"no keyframes", func(a *Animation) { a.Keyframes = 0 }, ErrNoKeyframes},
		{"no frames", func(a *Animation) { a.FramesPerKeyframe = 0 }, ErrInvalid},
		{"value count", func(a *Animation) { a.Tracks[0].Values = a.Tracks[0].Values[:2] }, ErrInvalid},
		{"unknown kind", func(a *Animation) { a.Tracks[0].Kind = "quaternion" }, ErrInvalid},
		{"unknown method", func(a *Animation) { a.Tracks[0].Morph = "bezier" }, ErrInvalid},
		{"duplicate", func(a *Animation) { a.Tracks[1].Name = a.Tracks[0].Name }, ErrInvalid},
		{"unnamed", func(a *Animation) { a.Tracks[1].Name = "" }, ErrInvalid},
		{"bad value", func(a *Animation) { a.Tracks[1].Kind = "vector3"; a.Tracks[1].Values[0] = *nodeFor("[1]") }, ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := parse(t, validAnimation)
			tt.mutate(a)
			err := a.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func nodeFor(src string) *yaml.Node {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		panic(err)
	}
	return doc.Content[0]
}
