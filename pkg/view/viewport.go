// Package view maps pixel grids onto rectangles of the complex plane.
package view

import (
	"fmt"
	"math"

	"github.com/dodalovic/mandelbrot/pkg/fractal"
)

// Viewport is an axis-aligned rectangle in the complex plane. Top is the
// largest imaginary part, Left the smallest real part; Top > Bottom and
// Right > Left for any valid viewport.
type Viewport struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// NewViewport validates the four edges and returns the viewport.
func NewViewport(top, left, bottom, right float64) (Viewport, error) {
	v := Viewport{Top: top, Left: left, Bottom: bottom, Right: right}
	if err := v.Validate(); err != nil {
		return Viewport{}, err
	}
	return v, nil
}

// Around builds a viewport centered on a point, with the given height in
// plane units and width = height*aspect.
func Around(center complex128, height, aspect float64) Viewport {
	halfH := height / 2
	halfW := height * aspect / 2
	return Viewport{
		Top:    imag(center) + halfH,
		Left:   real(center) - halfW,
		Bottom: imag(center) - halfH,
		Right:  real(center) + halfW,
	}
}

// Validate reports whether the viewport is a usable region of the plane.
func (v Viewport) Validate() error {
	for _, e := range []struct {
		name string
		val  float64
	}{
		{"top", v.Top}, {"left", v.Left}, {"bottom", v.Bottom}, {"right", v.Right},
	} {
		if math.IsNaN(e.val) || math.IsInf(e.val, 0) {
			return fmt.Errorf("%w: %s edge is %v", fractal.ErrDegenerateRegion, e.name, e.val)
		}
	}
	if v.Top <= v.Bottom {
		return fmt.Errorf("%w: top (%v) must exceed bottom (%v)", fractal.ErrDegenerateRegion, v.Top, v.Bottom)
	}
	if v.Right <= v.Left {
		return fmt.Errorf("%w: right (%v) must exceed left (%v)", fractal.ErrDegenerateRegion, v.Right, v.Left)
	}
	return nil
}

// Width returns the extent along the real axis.
func (v Viewport) Width() float64 { return v.Right - v.Left }

// Height returns the extent along the imaginary axis.
func (v Viewport) Height() float64 { return v.Top - v.Bottom }

// Aspect returns width over height.
func (v Viewport) Aspect() float64 { return v.Width() / v.Height() }

// Center returns the midpoint of the viewport as a complex number.
func (v Viewport) Center() complex128 {
	return complex((v.Left+v.Right)/2, (v.Bottom+v.Top)/2)
}

// Zoom scales the viewport around its center. Factors below one zoom in.
func (v Viewport) Zoom(factor float64) Viewport {
	return Around(v.Center(), v.Height()*factor, v.Aspect())
}

// Pan shifts the viewport by fractions of its own size. Positive dx moves
// right, positive dy moves up.
func (v Viewport) Pan(dx, dy float64) Viewport {
	rx := dx * v.Width()
	ry := dy * v.Height()
	return Viewport{
		Top:    v.Top + ry,
		Left:   v.Left + rx,
		Bottom: v.Bottom + ry,
		Right:  v.Right + rx,
	}
}

// FitAspect grows the viewport so its aspect ratio matches a w×h pixel
// grid. The region only ever expands; the requested rectangle stays fully
// visible, letterboxed along one axis.
func (v Viewport) FitAspect(w, h int) Viewport {
	if w <= 0 || h <= 0 {
		return v
	}
	want := float64(w) / float64(h)
	have := v.Aspect()
	switch {
	case have < want:
		// Too narrow: widen around the center.
		width := v.Height() * want
		cx := (v.Left + v.Right) / 2
		return Viewport{Top: v.Top, Left: cx - width/2, Bottom: v.Bottom, Right: cx + width/2}
	case have > want:
		// Too wide: heighten around the center.
		height := v.Width() / want
		cy := (v.Bottom + v.Top) / 2
		return Viewport{Top: cy + height/2, Left: v.Left, Bottom: cy - height/2, Right: v.Right}
	default:
		return v
	}
}

func (v Viewport) String() string {
	return fmt.Sprintf("top=%g left=%g bottom=%g right=%g", v.Top, v.Left, v.Bottom, v.Right)
}
