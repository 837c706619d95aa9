package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for k, name := range kindNames {
		got, err := ParseKind(name)
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("matrix")
	assert.Error(t, err)
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"", MethodNone},
		{"none", MethodNone},
		{"Linear", MethodLinear},
		{"catmullrom", MethodCatmullRom},
		{"catmullrom_angular", MethodCatmullRomAngular},
		{" akima ", MethodAkima},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseMethod("bezier")
	assert.Error(t, err)
}

func TestNumericConversions(t *testing.T) {
	assert.Equal(t, 3.0, Int(3).AsDouble())
	assert.Equal(t, 2, Double(2.9).AsInt())
	assert.Equal(t, 0.0, String("x").AsDouble())
}

func TestPaletteNeverAliases(t *testing.T) {
	src := Palette{{R: 1}, {G: 2}}
	v := PaletteOf(src)
	src[0].R = 99
	assert.Equal(t, 1, v.AsPalette()[0].R)

	out := v.AsPalette()
	out[1].G = 42
	assert.Equal(t, 2, v.AsPalette()[1].G)
}

func TestParameterSlots(t *testing.T) {
	p := NewParameter("tint", KindPalette, MethodLinear)
	pal := Palette{{R: 10, G: 20, B: 30}}
	p.Set(PaletteOf(pal), SlotActual)
	p.Set(Int(5), SlotMax)

	copied := p
	copied.Set(PaletteOf(Palette{{R: 1}}), SlotActual)

	assert.True(t, p.Actual().Equal(PaletteOf(pal)), "copy must not share slots")
	assert.Equal(t, 5, p.Get(SlotMax).AsInt())
	assert.Equal(t, KindNull, p.Get(Slot(42)).Kind())
	assert.Equal(t, "tint", p.Name())
	assert.Equal(t, MethodLinear, p.MorphMethod())
	assert.Equal(t, KindPalette, p.ValueKind())
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Null().Equal(Value{}))
	assert.False(t, Int(1).Equal(Double(1)))
	assert.True(t, Vector(Vector3{1, 2, 3}).Equal(Vector(Vector3{1, 2, 3})))
	assert.False(t, PaletteOf(Palette{{R: 1}}).Equal(PaletteOf(Palette{{R: 1}, {R: 2}})))
	assert.Equal(t, "rgb(1, 2, 3)", Color(RGB{1, 2, 3}).String())
}
