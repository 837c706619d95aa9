package morph

import "math"

// ClampPolicy decides where Catmull-Rom results beyond -1e20 end up.
type ClampPolicy int

const (
	// ClampReference sends both overflow directions to +1e20, matching the
	// behaviour existing animations were authored against.
	ClampReference ClampPolicy = iota
	// ClampSymmetric keeps the sign and clamps negative overflow to -1e20.
	ClampSymmetric
)

const (
	magnitudeLimit = 1e20
	zeroLimit      = 1e-20
	// logDeviation is the relative variation above which Catmull-Rom blends in log space.
	logDeviation = 0.1
)

// Linear blends v1 toward v2.
func Linear(factor, v1, v2 float64) float64 {
	return v1 + (v2-v1)*factor
}

// CatmullRom evaluates the Catmull-Rom segment between v2 and v3.
//
// When all four control values share a strict sign and vary by more than 10%
// of their average, the curve is evaluated on ln|v| and exponentiated back so
// strictly signed quantities spanning orders of magnitude neither overshoot
// nor change sign. Results are limited to 1e20 in magnitude and snapped to 0
// below 1e-20.
func CatmullRom(factor, v1, v2, v3, v4 float64, clamp ClampPolicy) float64 {
	t := factor
	t2 := t * t
	t3 := t2 * t

	logarithmic := false
	negative := false
	if (v1 > 0 && v2 > 0 && v3 > 0 && v4 > 0) || (v1 < 0 && v2 < 0 && v3 < 0 && v4 < 0) {
		negative = v1 < 0
		average := (v1 + v2 + v3 + v4) / 4
		// A negative average never passes, so only positive sets switch to log space.
		if average > 0 {
			deviation := (math.Abs(v2-v1) + math.Abs(v3-v2) + math.Abs(v4-v3)) / average
			if deviation > logDeviation {
				v1 = math.Log(math.Abs(v1))
				v2 = math.Log(math.Abs(v2))
				v3 = math.Log(math.Abs(v3))
				v4 = math.Log(math.Abs(v4))
				logarithmic = true
			}
		}
	}

	value := 0.5 * (2*v2 + (-v1+v3)*t + (2*v1-5*v2+4*v3-v4)*t2 + (-v1+3*v2-3*v3+v4)*t3)

	if logarithmic {
		value = math.Exp(value)
		if negative {
			value = -value
		}
	}

	if value > magnitudeLimit {
		value = magnitudeLimit
	}
	if value < -magnitudeLimit {
		if clamp == ClampSymmetric {
			value = -magnitudeLimit
		} else {
			value = magnitudeLimit
		}
	}
	if math.Abs(value) < zeroLimit {
		value = 0
	}
	return value
}
