package value

import (
	"fmt"
	"strings"
)

// Kind identifies the payload carried by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindString
	KindInt
	KindDouble
	KindRGB
	KindVector3
	KindPalette
)

var kindNames = map[Kind]string{
	KindNull:    "null",
	KindBool:    "bool",
	KindString:  "string",
	KindInt:     "int",
	KindDouble:  "double",
	KindRGB:     "rgb",
	KindVector3: "vector3",
	KindPalette: "palette",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind accepts the lower-case names returned by Kind.String.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindNull, fmt.Errorf("unknown value kind: %q", s)
}

// RGB is a colour with 16-bit channels.
type RGB struct {
	R, G, B int
}

// Vector3 is a point or direction in 3D space.
type Vector3 struct {
	X, Y, Z float64
}

// Palette is an ordered list of colours.
type Palette []RGB

// Value is a tagged union over every parameter payload.
// The zero Value is a null value.
type Value struct {
	kind    Kind
	b       bool
	s       string
	i       int
	d       float64
	rgb     RGB
	vec     Vector3
	palette Palette
}

func Null() Value { return Value{} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func String(s string) Value { return Value{kind: KindString, s: s} }

func Int(i int) Value { return Value{kind: KindInt, i: i} }

func Double(d float64) Value { return Value{kind: KindDouble, d: d} }

func Color(c RGB) Value { return Value{kind: KindRGB, rgb: c} }

func Vector(v Vector3) Value { return Value{kind: KindVector3, vec: v} }

// PaletteOf copies p so the Value never aliases the caller's slice.
func PaletteOf(p Palette) Value {
	return Value{kind: KindPalette, palette: p.Clone()}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsBool() bool { return v.b }

func (v Value) AsString() string { return v.s }

// AsInt converts numeric payloads; other kinds yield 0.
func (v Value) AsInt() int {
	if v.kind == KindDouble {
		return int(v.d)
	}
	return v.i
}

// AsDouble converts numeric payloads; other kinds yield 0.
func (v Value) AsDouble() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.d
}

func (v Value) AsRGB() RGB { return v.rgb }

func (v Value) AsVector3() Vector3 { return v.vec }

// AsPalette returns a copy of the palette payload.
func (v Value) AsPalette() Palette { return v.palette.Clone() }

// Equal reports whether both values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.s == o.s
	case KindInt:
		return v.i == o.i
	case KindDouble:
		return v.d == o.d
	case KindRGB:
		return v.rgb == o.rgb
	case KindVector3:
		return v.vec == o.vec
	case KindPalette:
		if len(v.palette) != len(o.palette) {
			return false
		}
		for i := range v.palette {
			if v.palette[i] != o.palette[i] {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindString:
		return v.s
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindDouble:
		return fmt.Sprintf("%g", v.d)
	case KindRGB:
		return fmt.Sprintf("rgb(%d, %d, %d)", v.rgb.R, v.rgb.G, v.rgb.B)
	case KindVector3:
		return fmt.Sprintf("(%g, %g, %g)", v.vec.X, v.vec.Y, v.vec.Z)
	case KindPalette:
		parts := make([]string, len(v.palette))
		for i, c := range v.palette {
			parts[i] = fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
		}
		return "[" + strings.Join(parts, " ") + "]"
	}
	return "null"
}

// Clone returns an independent copy of the palette.
func (p Palette) Clone() Palette {
	if p == nil {
		return nil
	}
	out := make(Palette, len(p))
	copy(out, p)
	return out
}
