package morph

import "github.com/ivlev/morphblur/internal/value"

// kindOps flattens an interpolatable value into independent float channels and
// rebuilds a value of the same kind from blended channels.
type kindOps struct {
	channels func(v value.Value) []float64
	rebuild  func(ch []float64) value.Value
	// splines reports whether the cubic and spline methods apply to the kind.
	// Kinds without spline support hold their value under those methods.
	splines bool
}

var kindTable = map[value.Kind]kindOps{
	value.KindInt: {
		channels: func(v value.Value) []float64 { return []float64{v.AsDouble()} },
		rebuild:  func(ch []float64) value.Value { return value.Int(int(ch[0])) },
		splines:  true,
	},
	value.KindDouble: {
		channels: func(v value.Value) []float64 { return []float64{v.AsDouble()} },
		rebuild:  func(ch []float64) value.Value { return value.Double(ch[0]) },
		splines:  true,
	},
	value.KindRGB: {
		channels: func(v value.Value) []float64 { return rgbChannels(nil, v.AsRGB()) },
		rebuild:  func(ch []float64) value.Value { return value.Color(rgbFromChannels(ch)) },
		splines:  true,
	},
	value.KindVector3: {
		channels: func(v value.Value) []float64 {
			p := v.AsVector3()
			return []float64{p.X, p.Y, p.Z}
		},
		rebuild: func(ch []float64) value.Value {
			return value.Vector(value.Vector3{X: ch[0], Y: ch[1], Z: ch[2]})
		},
		splines: true,
	},
	value.KindPalette: {
		channels: func(v value.Value) []float64 {
			pal := v.AsPalette()
			ch := make([]float64, 0, 3*len(pal))
			for _, c := range pal {
				ch = rgbChannels(ch, c)
			}
			return ch
		},
		rebuild: func(ch []float64) value.Value {
			pal := make(value.Palette, len(ch)/3)
			for i := range pal {
				pal[i] = rgbFromChannels(ch[3*i:])
			}
			return value.PaletteOf(pal)
		},
		splines: false,
	},
}

func rgbChannels(dst []float64, c value.RGB) []float64 {
	return append(dst, float64(c.R), float64(c.G), float64(c.B))
}

func rgbFromChannels(ch []float64) value.RGB {
	return value.RGB{R: int(ch[0]), G: int(ch[1]), B: int(ch[2])}
}

// alignChannels makes other as long as ref. Channels missing from other take
// the value of ref, extra channels are dropped.
func alignChannels(ref, other []float64) []float64 {
	if len(other) == len(ref) {
		return other
	}
	out := make([]float64, len(ref))
	copy(out, ref)
	copy(out, other[:min(len(other), len(ref))])
	return out
}
