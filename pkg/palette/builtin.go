package palette

import (
	"fmt"
	"sort"

	"github.com/dodalovic/mandelbrot/pkg/fractal"
)

// DefaultName is the palette used when nothing else is requested.
const DefaultName = "classic"

var builtin = map[string]func() *Palette{
	"classic":   Classic,
	"fire":      Fire,
	"grayscale": Grayscale,
	"wheel":     Wheel,
}

// Lookup returns a fresh copy of a built-in palette by name.
func Lookup(name string) (*Palette, error) {
	mk, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", fractal.ErrUnknownPalette, name)
	}
	return mk(), nil
}

// Names lists the built-in palette names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classic is the familiar deep-blue-to-gold gradient.
func Classic() *Palette {
	p := New(Color{},
		Stop{0.0, Color{0, 7, 100}},
		Stop{0.16, Color{32, 107, 203}},
		Stop{0.42, Color{237, 255, 255}},
		Stop{0.64, Color{255, 170, 0}},
		Stop{0.86, Color{0, 2, 0}},
		Stop{1.0, Color{0, 7, 100}},
	)
	p.Extend = ExtendRepeat
	p.Density = 8
	return p
}

// Fire fades black through red and yellow to white.
func Fire() *Palette {
	return New(Color{},
		Stop{0.0, Color{20, 0, 0}},
		Stop{0.3, Color{180, 0, 0}},
		Stop{0.6, Color{255, 160, 0}},
		Stop{1.0, Color{255, 255, 220}},
	)
}

// Grayscale ramps linearly from black to white.
func Grayscale() *Palette {
	return New(Color{},
		Stop{0.0, Color{0, 0, 0}},
		Stop{1.0, Color{255, 255, 255}},
	)
}

// Wheel cycles the six-spoke RGB color wheel.
func Wheel() *Palette {
	p := New(Color{},
		Stop{0.0, Color{255, 0, 0}},
		Stop{1.0 / 6, Color{255, 255, 0}},
		Stop{2.0 / 6, Color{0, 255, 0}},
		Stop{3.0 / 6, Color{0, 255, 255}},
		Stop{4.0 / 6, Color{0, 0, 255}},
		Stop{5.0 / 6, Color{255, 0, 255}},
		Stop{1.0, Color{255, 0, 0}},
	)
	p.Extend = ExtendRepeat
	p.Density = 16
	return p
}
