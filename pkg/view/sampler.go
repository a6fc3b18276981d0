package view

// Sampler converts pixel coordinates of a fixed w×h grid into points of a
// viewport. Pixel (0,0) is the top-left corner; row 0 carries the largest
// imaginary parts.
type Sampler struct {
	vp   Viewport
	w, h int
	// plane units per pixel along each axis
	stepX float64
	stepY float64
}

// NewSampler builds a sampler for the grid. Non-positive dimensions are
// clamped to one pixel.
func NewSampler(vp Viewport, w, h int) Sampler {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return Sampler{
		vp:    vp,
		w:     w,
		h:     h,
		stepX: vp.Width() / float64(w),
		stepY: vp.Height() / float64(h),
	}
}

// At returns the plane point at the center of pixel (x, y).
func (s Sampler) At(x, y int) complex128 {
	return s.AtSub(x, y, 0.5, 0.5)
}

// AtSub returns the plane point at offset (dx, dy) within pixel (x, y),
// where dx and dy are in [0, 1). Used for jittered supersampling.
func (s Sampler) AtSub(x, y int, dx, dy float64) complex128 {
	re := s.vp.Left + (float64(x)+dx)*s.stepX
	im := s.vp.Top - (float64(y)+dy)*s.stepY
	return complex(re, im)
}

// Size returns the pixel dimensions of the grid.
func (s Sampler) Size() (w, h int) { return s.w, s.h }

// PixelSize returns the plane extent of one pixel along each axis.
func (s Sampler) PixelSize() (px, py float64) { return s.stepX, s.stepY }

// Viewport returns the region the sampler covers.
func (s Sampler) Viewport() Viewport { return s.vp }
