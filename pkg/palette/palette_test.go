package palette

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/dodalovic/mandelbrot/pkg/escape"
	"github.com/dodalovic/mandelbrot/pkg/fractal"
)

func TestExtend(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		mode Extend
		want float64
	}{
		{"pad negative", -0.5, ExtendPad, 0},
		{"pad middle", 0.5, ExtendPad, 0.5},
		{"pad over", 1.5, ExtendPad, 1},

		{"repeat negative", -0.25, ExtendRepeat, 0.75},
		{"repeat middle", 0.5, ExtendRepeat, 0.5},
		{"repeat one", 1, ExtendRepeat, 0},
		{"repeat 2.5", 2.5, ExtendRepeat, 0.5},

		{"reflect negative", -0.25, ExtendReflect, 0.25},
		{"reflect middle", 0.5, ExtendReflect, 0.5},
		{"reflect 1.25", 1.25, ExtendReflect, 0.75},
		{"reflect 2.25", 2.25, ExtendReflect, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extend(tt.t, tt.mode)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("extend(%v, %v) = %v, want %v", tt.t, tt.mode, got, tt.want)
			}
		})
	}
}

func TestPaletteAt(t *testing.T) {
	p := New(Color{},
		Stop{1.0, Color{200, 100, 0}}, // deliberately out of order
		Stop{0.0, Color{0, 100, 200}},
	)

	if got, want := p.At(0), (Color{0, 100, 200}); got != want {
		t.Errorf("At(0) = %v, want %v", got, want)
	}
	if got, want := p.At(1), (Color{200, 100, 0}); got != want {
		t.Errorf("At(1) = %v, want %v", got, want)
	}
	if got, want := p.At(0.5), (Color{100, 100, 100}); got != want {
		t.Errorf("At(0.5) = %v, want %v", got, want)
	}
	// Pad extend clamps out-of-range lookups to the edge colors.
	if got, want := p.At(-3), p.At(0); got != want {
		t.Errorf("At(-3) = %v, want edge color %v", got, want)
	}
	if got, want := p.At(7), p.At(1); got != want {
		t.Errorf("At(7) = %v, want edge color %v", got, want)
	}
}

func TestPaletteSingleStopIsConstant(t *testing.T) {
	p := New(Color{}, Stop{0.4, Color{10, 20, 30}})
	for _, v := range []float64{0, 0.3, 0.9, 1} {
		if got := p.At(v); got != (Color{10, 20, 30}) {
			t.Errorf("At(%v) = %v, want constant color", v, got)
		}
	}
}

func TestPaletteMapInterior(t *testing.T) {
	p := New(Color{1, 2, 3},
		Stop{0, Color{255, 255, 255}},
		Stop{1, Color{0, 0, 0}},
	)

	res := escape.Result{N: 100, Smooth: 100, Escaped: false}
	if got := p.Map(res, 100); got != (Color{1, 2, 3}) {
		t.Errorf("interior mapped to %v, want the interior color", got)
	}
}

func TestPaletteMapUsesDensity(t *testing.T) {
	p := New(Color{},
		Stop{0, Color{0, 0, 0}},
		Stop{1, Color{255, 255, 255}},
	)
	p.Density = 2

	res := escape.Result{N: 50, Smooth: 50, Escaped: true}
	// Smooth/limit = 0.5 and density doubles it to the far edge.
	if got := p.Map(res, 100); got != (Color{255, 255, 255}) {
		t.Errorf("Map = %v, want the top stop", got)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		p, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if len(p.Stops()) == 0 {
			t.Fatalf("palette %q has no stops", name)
		}
	}

	_, err := Lookup("no-such-palette")
	if err == nil {
		t.Fatal("expected error for unknown palette")
	}
	if !errors.Is(err, fractal.ErrUnknownPalette) {
		t.Fatalf("expected ErrUnknownPalette, got %v", err)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	if len(names) < 4 {
		t.Errorf("expected at least the four built-ins, got %v", names)
	}
}

func TestColorRGBA(t *testing.T) {
	r, g, b, a := Color{255, 128, 0}.RGBA()
	if r != 0xffff || a != 0xffff {
		t.Errorf("RGBA() = (%d, %d, %d, %d), want full red and alpha", r, g, b, a)
	}
	if g != 0x8080 || b != 0 {
		t.Errorf("RGBA() = (%d, %d, %d, %d), want g=0x8080 b=0", r, g, b, a)
	}
}

func TestColorHex(t *testing.T) {
	if got := (Color{255, 0, 171}).Hex(); got != "#ff00ab" {
		t.Errorf("Hex() = %q, want #ff00ab", got)
	}
}
