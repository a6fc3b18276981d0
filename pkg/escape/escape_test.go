package escape

import (
	"math"
	"testing"
)

func TestIterateInterior(t *testing.T) {
	it := NewIterator(500, DefaultBailout)

	// Points well inside the set never escape.
	for _, c := range []complex128{
		complex(0, 0),
		complex(-1, 0),      // period-2 bulb center
		complex(-0.12, 0.1), // cardioid
		complex(0.25, 0),    // cardioid cusp
		complex(-1.3, 0),    // period-4 window, caught by iteration
	} {
		res := it.Iterate(c)
		if res.Escaped {
			t.Errorf("Iterate(%v) escaped at n=%d, want interior", c, res.N)
		}
		if res.N != it.Limit {
			t.Errorf("Iterate(%v).N = %d, want limit %d", c, res.N, it.Limit)
		}
		if res.Smooth != float64(it.Limit) {
			t.Errorf("Iterate(%v).Smooth = %v, want %v", c, res.Smooth, float64(it.Limit))
		}
	}
}

func TestIterateEscapes(t *testing.T) {
	it := NewIterator(500, DefaultBailout)

	tests := []struct {
		c    complex128
		maxN int
	}{
		{complex(2, 2), 3},
		{complex(1, 0), 5},
		{complex(-2.5, 0), 5},
		{complex(0.3, 0.6), 100},
	}

	for _, tt := range tests {
		res := it.Iterate(tt.c)
		if !res.Escaped {
			t.Errorf("Iterate(%v) never escaped", tt.c)
			continue
		}
		if res.N > tt.maxN {
			t.Errorf("Iterate(%v).N = %d, want <= %d", tt.c, res.N, tt.maxN)
		}
		if res.Smooth < 0 || res.Smooth > float64(it.Limit) {
			t.Errorf("Iterate(%v).Smooth = %v out of range", tt.c, res.Smooth)
		}
	}
}

// Walking toward the set along the real axis must never decrease the
// smooth count.
func TestSmoothMonotoneTowardSet(t *testing.T) {
	it := NewIterator(1000, DefaultBailout)

	prev := -1.0
	for x := 2.0; x > 0.2501; x -= 0.001 {
		res := it.Iterate(complex(x, 0))
		if !res.Escaped {
			t.Fatalf("c=%v should escape", x)
		}
		// The log-log approximation may wobble by a hair; anything more
		// is a real regression.
		if res.Smooth < prev-0.05 {
			t.Fatalf("smooth count fell from %v to %v at c=%v", prev, res.Smooth, x)
		}
		prev = res.Smooth
	}
}

// The interior shortcut must agree with what plain iteration concludes.
func TestInteriorShortcutMatchesIteration(t *testing.T) {
	it := Iterator{Limit: 2000, Bailout: DefaultBailout}

	for _, c := range []complex128{
		complex(0.1, 0.1),     // cardioid
		complex(-0.9, 0.05),   // period-2 bulb
		complex(-1.24, 0.05),  // inside the bulb, near its edge
		complex(0.26, 0),      // just outside the cusp
		complex(-0.76, 0.09),  // near the pinch point
		complex(0.249, 0.001), // just inside the cusp
	} {
		cr, ci := real(c), imag(c)
		got := interior(cr, ci)
		want := !iterateNaive(c, it.Limit)
		if got && !want {
			t.Errorf("interior(%v) = true, but naive iteration escapes", c)
		}
		// got == false with want == true is fine: the shortcut only
		// covers the cardioid and the period-2 bulb.
		res := it.Iterate(c)
		if res.Escaped == want {
			t.Errorf("Iterate(%v).Escaped = %v, naive says %v", c, res.Escaped, !want)
		}
	}
}

// iterateNaive reports whether c escapes within limit iterations, with no
// shortcuts.
func iterateNaive(c complex128, limit int) bool {
	var z complex128
	for n := 0; n < limit; n++ {
		if real(z)*real(z)+imag(z)*imag(z) > DefaultBailout*DefaultBailout {
			return true
		}
		z = Step(z, c)
	}
	return false
}

func TestNewIteratorNormalizes(t *testing.T) {
	tests := []struct {
		name        string
		limit       int
		bailout     float64
		wantLimit   int
		wantBailout float64
	}{
		{"zero limit", 0, 8, DefaultLimit, 8},
		{"negative limit", -5, 8, DefaultLimit, 8},
		{"bailout too small", 100, 1.5, 100, DefaultBailout},
		{"bailout exactly two", 100, 2, 100, DefaultBailout},
		{"valid", 100, 16, 100, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := NewIterator(tt.limit, tt.bailout)
			if it.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", it.Limit, tt.wantLimit)
			}
			if it.Bailout != tt.wantBailout {
				t.Errorf("Bailout = %v, want %v", it.Bailout, tt.wantBailout)
			}
		})
	}
}

func TestStep(t *testing.T) {
	if got := Step(complex(1, 1), complex(0.5, 0)); got != complex(0.5, 2) {
		t.Errorf("Step((1+1i), 0.5) = %v, want (0.5+2i)", got)
	}
}

func BenchmarkIterate(b *testing.B) {
	it := NewIterator(1000, DefaultBailout)
	// A slow-escaping point near the boundary.
	c := complex(-0.7453, 0.1127)
	for i := 0; i < b.N; i++ {
		_ = it.Iterate(c)
	}
}

func TestSmoothNearLimitClamped(t *testing.T) {
	it := NewIterator(3, DefaultBailout)
	res := it.Iterate(complex(0.3, 0.6))
	if res.Escaped {
		if res.Smooth > float64(it.Limit) || math.IsNaN(res.Smooth) {
			t.Errorf("Smooth = %v exceeds limit %d", res.Smooth, it.Limit)
		}
	}
}
