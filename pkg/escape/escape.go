// Package escape computes Mandelbrot escape iterations.
package escape

import "math"

const (
	DefaultLimit   = 1000
	DefaultBailout = 4.0

	invLn2 = 1.0 / math.Ln2
)

// Result reports the outcome of iterating a single point.
type Result struct {
	// N is the number of iterations completed before escape, or the
	// iteration limit for interior points.
	N int
	// Smooth is the fractional iteration count: monotone in distance to
	// the set, in [0, limit]. Equals the limit for interior points.
	Smooth float64
	// Escaped is false for points that never left the bailout radius.
	Escaped bool
}

// Iterator runs the z ← z² + c recurrence up to a fixed limit.
type Iterator struct {
	// Limit is the maximum number of iterations per point.
	Limit int
	// Bailout is the escape radius. Anything past 2 is mathematically
	// safe; larger radii smooth the fractional counts.
	Bailout float64
}

// NewIterator normalizes out-of-range settings to the defaults.
func NewIterator(limit int, bailout float64) Iterator {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if bailout <= 2 {
		bailout = DefaultBailout
	}
	return Iterator{Limit: limit, Bailout: bailout}
}

// Step applies one iteration of the recurrence.
func Step(z, c complex128) complex128 {
	return z*z + c
}

// Iterate runs the recurrence from z=0 at point c. The hot loop uses real
// arithmetic so escape checks cost no square root.
func (it Iterator) Iterate(c complex128) Result {
	cr := real(c)
	ci := imag(c)

	if interior(cr, ci) {
		return Result{N: it.Limit, Smooth: float64(it.Limit)}
	}

	bail2 := it.Bailout * it.Bailout

	var zr, zi float64
	for n := 0; n < it.Limit; n++ {
		zr2 := zr * zr
		zi2 := zi * zi
		if zr2+zi2 > bail2 {
			return Result{N: n, Smooth: it.smooth(n, zr2+zi2), Escaped: true}
		}
		zi = 2*zr*zi + ci
		zr = zr2 - zi2 + cr
	}

	return Result{N: it.Limit, Smooth: float64(it.Limit)}
}

// smooth converts a discrete escape count into the log-log fractional
// count, clamped to [0, Limit].
func (it Iterator) smooth(n int, mag2 float64) float64 {
	// mag2 > bail2 > 4 here, so both logs are positive.
	s := float64(n) + 1 - math.Log(math.Log(mag2)/2)*invLn2
	if s < 0 {
		return 0
	}
	if limit := float64(it.Limit); s > limit {
		return limit
	}
	return s
}

// interior reports whether c lies in the main cardioid or the period-2
// bulb. Both tests are exact, so points inside skip iteration entirely.
func interior(cr, ci float64) bool {
	// Main cardioid: q(q + (cr - 1/4)) <= ci²/4 with q = (cr-1/4)² + ci².
	x := cr - 0.25
	q := x*x + ci*ci
	if q*(q+x) <= 0.25*ci*ci {
		return true
	}
	// Period-2 bulb: circle of radius 1/4 around -1.
	x = cr + 1
	return x*x+ci*ci <= 0.0625
}
