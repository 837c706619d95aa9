package value

import (
	"fmt"
	"strings"
)

// Method selects the keyframe interpolation algorithm of a parameter.
type Method int

const (
	MethodNone Method = iota
	MethodLinear
	MethodCatmullRom
	MethodCatmullRomAngular
	MethodAkima
)

var methodNames = map[Method]string{
	MethodNone:              "none",
	MethodLinear:            "linear",
	MethodCatmullRom:        "catmullrom",
	MethodCatmullRomAngular: "catmullrom_angular",
	MethodAkima:             "akima",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod accepts the names returned by Method.String. An empty string means none.
func ParseMethod(s string) (Method, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MethodNone, nil
	}
	for m, name := range methodNames {
		if name == s {
			return m, nil
		}
	}
	return MethodNone, fmt.Errorf("unknown morph method: %q", s)
}

// Slot addresses one of the values stored by a Parameter.
type Slot int

const (
	SlotActual Slot = iota
	SlotDefault
	SlotMin
	SlotMax
	slotCount
)

// Parameter is a named, typed animation parameter.
// It is a value type: assigning a Parameter copies all of its slots.
type Parameter struct {
	name   string
	kind   Kind
	method Method
	slots  [slotCount]Value
}

func NewParameter(name string, kind Kind, method Method) Parameter {
	return Parameter{name: name, kind: kind, method: method}
}

func (p Parameter) Name() string { return p.name }

func (p Parameter) ValueKind() Kind { return p.kind }

func (p Parameter) MorphMethod() Method { return p.method }

// Get returns the value held in slot. Out of range slots yield a null value.
func (p Parameter) Get(slot Slot) Value {
	if slot < 0 || slot >= slotCount {
		return Null()
	}
	v := p.slots[slot]
	if v.kind == KindPalette {
		v.palette = v.palette.Clone()
	}
	return v
}

// Set stores a copy of v in slot.
func (p *Parameter) Set(v Value, slot Slot) {
	if slot < 0 || slot >= slotCount {
		return
	}
	if v.kind == KindPalette {
		v.palette = v.palette.Clone()
	}
	p.slots[slot] = v
}

// Actual is shorthand for Get(SlotActual).
func (p Parameter) Actual() Value { return p.Get(SlotActual) }

// WithActual returns a copy of p with v stored in the actual slot.
func (p Parameter) WithActual(v Value) Parameter {
	p.Set(v, SlotActual)
	return p
}
