package palette

import (
	"math"
	"sort"

	"github.com/dodalovic/mandelbrot/pkg/escape"
)

// Extend defines how gradient lookups behave outside [0, 1].
type Extend int

const (
	// ExtendPad clamps to the edge colors.
	ExtendPad Extend = iota
	// ExtendRepeat repeats the gradient pattern.
	ExtendRepeat
	// ExtendReflect mirrors the gradient pattern.
	ExtendReflect
)

// Stop is a color at a position within a gradient.
type Stop struct {
	Offset float64 // position in the gradient, 0.0 to 1.0
	Color  Color
}

// Palette maps normalized escape values onto a color gradient. Interior
// points get their own dedicated color.
type Palette struct {
	// Interior colors points that never escaped.
	Interior Color
	// Extend selects the out-of-range behavior for gradient lookups.
	Extend Extend
	// Density stretches escape values across the gradient; above one the
	// gradient cycles (with ExtendRepeat) for more visible banding detail
	// near the set boundary.
	Density float64

	stops []Stop
}

// New builds a palette from its stops. Stops are copied, clamped to
// [0, 1], and kept sorted by offset.
func New(interior Color, stops ...Stop) *Palette {
	sorted := make([]Stop, len(stops))
	copy(sorted, stops)
	for i := range sorted {
		sorted[i].Offset = clamp01(sorted[i].Offset)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	return &Palette{
		Interior: interior,
		Density:  1,
		stops:    sorted,
	}
}

// Stops returns a copy of the gradient stops in offset order.
func (p *Palette) Stops() []Stop {
	out := make([]Stop, len(p.stops))
	copy(out, p.stops)
	return out
}

// At looks up the gradient color at position t, applying the palette's
// extend mode first.
func (p *Palette) At(t float64) Color {
	if len(p.stops) == 0 {
		return p.Interior
	}
	if len(p.stops) == 1 {
		return p.stops[0].Color
	}

	t = extend(t, p.Extend)

	if t <= p.stops[0].Offset {
		return p.stops[0].Color
	}
	last := p.stops[len(p.stops)-1]
	if t >= last.Offset {
		return last.Color
	}

	i := sort.Search(len(p.stops), func(i int) bool {
		return p.stops[i].Offset >= t
	})
	lo, hi := p.stops[i-1], p.stops[i]
	span := hi.Offset - lo.Offset
	if span <= 0 {
		return hi.Color
	}
	return lerp(lo.Color, hi.Color, (t-lo.Offset)/span)
}

// Map colors one escape result. The limit is the iteration limit the
// result was produced under.
func (p *Palette) Map(res escape.Result, limit int) Color {
	if !res.Escaped {
		return p.Interior
	}
	if limit <= 0 {
		limit = 1
	}
	d := p.Density
	if d <= 0 {
		d = 1
	}
	return p.At(res.Smooth * d / float64(limit))
}

// extend normalizes t to [0, 1] according to the extend mode.
func extend(t float64, mode Extend) float64 {
	switch mode {
	case ExtendRepeat:
		t -= math.Floor(t)
		if t < 0 {
			t++
		}
	case ExtendReflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	default:
		t = clamp01(t)
	}
	return t
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
