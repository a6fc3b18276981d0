package render

import (
	"context"
	"fmt"
	"image"

	"github.com/dodalovic/mandelbrot/pkg/fractal"
	"github.com/dodalovic/mandelbrot/pkg/view"
)

// BandOffset returns the first grid row of band i when a grid h rows tall
// is split into n horizontal bands. The split covers every row exactly
// once; earlier bands are never shorter than later ones by more than one
// row.
func BandOffset(h, i, n int) int {
	return i * h / n
}

// RenderBand renders band i of n of the full w×h render of the viewport.
// The returned image holds just the band's rows; the offset is the y
// position where the band belongs in the full image. Stacking all n bands
// in order reproduces a plain Render of the same grid.
func (r *Renderer) RenderBand(ctx context.Context, vp view.Viewport, w, h, i, n int) (*image.RGBA, int, error) {
	if n < 1 || i < 0 || i >= n {
		return nil, 0, fmt.Errorf("%w: band %d of %d", fractal.ErrInvalidParam, i, n)
	}
	if err := vp.Validate(); err != nil {
		return nil, 0, err
	}

	y0 := BandOffset(h, i, n)
	y1 := BandOffset(h, i+1, n)
	if y1 <= y0 {
		// More bands than rows; this band is empty.
		return image.NewRGBA(image.Rect(0, 0, w, 0)), y0, nil
	}

	// Sample against the full grid so band boundaries are seamless.
	s := view.NewSampler(vp, w, h)
	dst := NewImageSurface(w, y1-y0)
	if err := r.renderRows(ctx, s, y0, y1, dst); err != nil {
		return nil, 0, err
	}
	return dst.Image(), y0, nil
}
