package director

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/morphblur/internal/value"
)

var (
	ErrNoKeyframes = errors.New("animation has no keyframes")
	ErrInvalid     = errors.New("invalid animation")
)

// DecodeValue converts a YAML node into a value of the given kind.
// Colours and vectors are three element sequences, palettes are sequences of colours.
func DecodeValue(kind value.Kind, node *yaml.Node) (value.Value, error) {
	switch kind {
	case value.KindNull:
		return value.Null(), nil
	case value.KindBool:
		var b bool
		if err := node.Decode(&b); err != nil {
			return value.Null(), err
		}
		return value.Bool(b), nil
	case value.KindString:
		var s string
		if err := node.Decode(&s); err != nil {
			return value.Null(), err
		}
		return value.String(s), nil
	case value.KindInt:
		var i int
		if err := node.Decode(&i); err != nil {
			return value.Null(), err
		}
		return value.Int(i), nil
	case value.KindDouble:
		var d float64
		if err := node.Decode(&d); err != nil {
			return value.Null(), err
		}
		return value.Double(d), nil
	case value.KindRGB:
		c, err := decodeRGB(node)
		if err != nil {
			return value.Null(), err
		}
		return value.Color(c), nil
	case value.KindVector3:
		var v []float64
		if err := node.Decode(&v); err != nil {
			return value.Null(), err
		}
		if len(v) != 3 {
			return value.Null(), fmt.Errorf("line %d: vector needs 3 components, got %d", node.Line, len(v))
		}
		return value.Vector(value.Vector3{X: v[0], Y: v[1], Z: v[2]}), nil
	case value.KindPalette:
		if node.Kind != yaml.SequenceNode {
			return value.Null(), fmt.Errorf("line %d: palette must be a sequence", node.Line)
		}
		p := make(value.Palette, 0, len(node.Content))
		for _, item := range node.Content {
			c, err := decodeRGB(item)
			if err != nil {
				return value.Null(), err
			}
			p = append(p, c)
		}
		return value.PaletteOf(p), nil
	}
	return value.Null(), fmt.Errorf("unsupported kind %s", kind)
}

func decodeRGB(node *yaml.Node) (value.RGB, error) {
	var c []int
	if err := node.Decode(&c); err != nil {
		return value.RGB{}, err
	}
	if len(c) != 3 {
		return value.RGB{}, fmt.Errorf("line %d: colour needs 3 channels, got %d", node.Line, len(c))
	}
	return value.RGB{R: c[0], G: c[1], B: c[2]}, nil
}

// EncodeValue is the inverse of DecodeValue.
func EncodeValue(v value.Value) (yaml.Node, error) {
	var node yaml.Node
	var err error

	switch v.Kind() {
	case value.KindNull:
		err = node.Encode(nil)
	case value.KindBool:
		err = node.Encode(v.AsBool())
	case value.KindString:
		err = node.Encode(v.AsString())
	case value.KindInt:
		err = node.Encode(v.AsInt())
	case value.KindDouble:
		err = node.Encode(v.AsDouble())
	case value.KindRGB:
		c := v.AsRGB()
		err = node.Encode([]int{c.R, c.G, c.B})
		node.Style = yaml.FlowStyle
	case value.KindVector3:
		p := v.AsVector3()
		err = node.Encode([]float64{p.X, p.Y, p.Z})
		node.Style = yaml.FlowStyle
	case value.KindPalette:
		pal := v.AsPalette()
		rows := make([][]int, len(pal))
		for i, c := range pal {
			rows[i] = []int{c.R, c.G, c.B}
		}
		err = node.Encode(rows)
		node.Style = yaml.FlowStyle
	default:
		err = fmt.Errorf("unsupported kind %s", v.Kind())
	}
	return node, err
}

// Validate checks the header and that every track value decodes.
func (a *Animation) Validate() error {
	if a.Keyframes < 1 {
		return ErrNoKeyframes
	}
	if a.FramesPerKeyframe < 1 {
		return fmt.Errorf("%w: frames_per_keyframe must be at least 1, got %d", ErrInvalid, a.FramesPerKeyframe)
	}

	seen := make(map[string]bool, len(a.Tracks))
	for _, t := range a.Tracks {
		if t.Name == "" {
			return fmt.Errorf("%w: track without a name", ErrInvalid)
		}
		if seen[t.Name] {
			return fmt.Errorf("%w: duplicate track %s", ErrInvalid, t.Name)
		}
		seen[t.Name] = true

		if len(t.Values) != a.Keyframes {
			return fmt.Errorf("%w: track %s has %d values, want %d", ErrInvalid, t.Name, len(t.Values), a.Keyframes)
		}
		kind, _, err := t.types()
		if err != nil {
			return fmt.Errorf("%w: track %s: %v", ErrInvalid, t.Name, err)
		}
		for i := range t.Values {
			if _, err := DecodeValue(kind, &t.Values[i]); err != nil {
				return fmt.Errorf("%w: track %s keyframe %d: %v", ErrInvalid, t.Name, i, err)
			}
		}
	}
	return nil
}

func (t *Track) types() (value.Kind, value.Method, error) {
	kind, err := value.ParseKind(t.Kind)
	if err != nil {
		return value.KindNull, value.MethodNone, err
	}
	method, err := value.ParseMethod(t.Morph)
	if err != nil {
		return value.KindNull, value.MethodNone, err
	}
	return kind, method, nil
}

// Parameters returns every track's parameter at one keyframe, in track order.
func (a *Animation) Parameters(keyframe int) ([]value.Parameter, error) {
	if keyframe < 0 || keyframe >= a.Keyframes {
		return nil, fmt.Errorf("keyframe %d out of range [0, %d)", keyframe, a.Keyframes)
	}

	params := make([]value.Parameter, 0, len(a.Tracks))
	for _, t := range a.Tracks {
		kind, method, err := t.types()
		if err != nil {
			return nil, fmt.Errorf("track %s: %w", t.Name, err)
		}
		if keyframe >= len(t.Values) {
			return nil, fmt.Errorf("track %s: no value for keyframe %d", t.Name, keyframe)
		}
		v, err := DecodeValue(kind, &t.Values[keyframe])
		if err != nil {
			return nil, fmt.Errorf("track %s: %w", t.Name, err)
		}
		p := value.NewParameter(t.Name, kind, method)
		p.Set(v, value.SlotActual)
		params = append(params, p)
	}
	return params, nil
}

// AddTrack appends a track built from values.
func (a *Animation) AddTrack(name string, kind value.Kind, method value.Method, values []value.Value) error {
	t := Track{Name: name, Kind: kind.String(), Morph: method.String()}
	for _, v := range values {
		node, err := EncodeValue(v)
		if err != nil {
			return fmt.Errorf("track %s: %w", name, err)
		}
		t.Values = append(t.Values, node)
	}
	a.Tracks = append(a.Tracks, t)
	return nil
}
