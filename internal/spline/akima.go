// Package spline implements the periodic Akima spline used by the akima morph method.
package spline

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrDomain is returned by Eval for abscissas outside the fitted range.
	ErrDomain = errors.New("spline: x outside interpolation range")
	// ErrSize is returned when the point count does not match the fit context.
	ErrSize = errors.New("spline: wrong number of points")
)

// minPoints is the smallest stencil the periodic slope extension can wrap around.
const minPoints = 5

// Akima is a reusable fit context for a periodic Akima spline over a fixed
// number of points. Init refits it in place; it is not safe for concurrent use.
type Akima struct {
	size int
	x, y []float64

	// m holds the secant slopes with two guard entries on each side: m[i+2] is slope i.
	m []float64

	b, c, d []float64

	// cache is the interval found by the previous Eval.
	cache int
}

// NewAkimaPeriodic allocates a context for exactly size points.
func NewAkimaPeriodic(size int) (*Akima, error) {
	if size < minPoints {
		return nil, fmt.Errorf("%w: need at least %d, got %d", ErrSize, minPoints, size)
	}
	return &Akima{
		size: size,
		x:    make([]float64, size),
		y:    make([]float64, size),
		m:    make([]float64, size+3),
		b:    make([]float64, size),
		c:    make([]float64, size),
		d:    make([]float64, size),
	}, nil
}

// Size is the number of points the context was allocated for.
func (a *Akima) Size() int { return a.size }

// Init fits the spline to the points (x[i], y[i]). x must be strictly increasing.
func (a *Akima) Init(x, y []float64) error {
	if len(x) != a.size || len(y) != a.size {
		return fmt.Errorf("%w: want %d, got x=%d y=%d", ErrSize, a.size, len(x), len(y))
	}
	for i := 1; i < a.size; i++ {
		if !(x[i] > x[i-1]) {
			return fmt.Errorf("spline: abscissas not strictly increasing at %d", i)
		}
	}
	copy(a.x, x)
	copy(a.y, y)
	a.cache = 0

	n := a.size
	for i := 0; i < n-1; i++ {
		a.setSlope(i, (y[i+1]-y[i])/(x[i+1]-x[i]))
	}

	// Periodic boundary: wrap the slopes around the ends.
	a.setSlope(-2, a.slope(n-3))
	a.setSlope(-1, a.slope(n-2))
	a.setSlope(n-1, a.slope(0))
	a.setSlope(n, a.slope(1))

	a.coefficients()
	return nil
}

func (a *Akima) slope(i int) float64 { return a.m[i+2] }

func (a *Akima) setSlope(i int, v float64) { a.m[i+2] = v }

func (a *Akima) coefficients() {
	for i := 0; i < a.size-1; i++ {
		ne := math.Abs(a.slope(i+1)-a.slope(i)) + math.Abs(a.slope(i-1)-a.slope(i-2))
		if ne == 0 {
			a.b[i] = a.slope(i)
			a.c[i] = 0
			a.d[i] = 0
			continue
		}

		h := a.x[i+1] - a.x[i]
		neNext := math.Abs(a.slope(i+2)-a.slope(i+1)) + math.Abs(a.slope(i)-a.slope(i-1))
		alpha := math.Abs(a.slope(i-1)-a.slope(i-2)) / ne

		var tNext float64
		if neNext == 0 {
			tNext = a.slope(i)
		} else {
			alphaNext := math.Abs(a.slope(i)-a.slope(i-1)) / neNext
			tNext = (1-alphaNext)*a.slope(i) + alphaNext*a.slope(i+1)
		}

		a.b[i] = (1-alpha)*a.slope(i-1) + alpha*a.slope(i)
		a.c[i] = (3*a.slope(i) - 2*a.b[i] - tNext) / h
		a.d[i] = (a.b[i] + tNext - 2*a.slope(i)) / (h * h)
	}
}

// Eval returns the spline value at x.
func (a *Akima) Eval(x float64) (float64, error) {
	n := a.size
	if math.IsNaN(x) || x < a.x[0] || x > a.x[n-1] {
		return math.NaN(), fmt.Errorf("%w: %g not in [%g, %g]", ErrDomain, x, a.x[0], a.x[n-1])
	}

	i := a.find(x)
	dx := x - a.x[i]
	return a.y[i] + dx*(a.b[i]+dx*(a.c[i]+a.d[i]*dx)), nil
}

// find locates the interval i with x[i] <= x < x[i+1], the last interval
// also covering its right end point.
func (a *Akima) find(x float64) int {
	last := a.size - 2
	if i := a.cache; a.x[i] <= x && (x < a.x[i+1] || i == last) {
		return i
	}
	i := sort.Search(a.size, func(j int) bool { return a.x[j] > x }) - 1
	if i > last {
		i = last
	}
	a.cache = i
	return i
}
