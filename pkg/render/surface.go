// Package render turns viewports into pixel buffers.
package render

import (
	"image"

	"github.com/dodalovic/mandelbrot/pkg/palette"
)

// Surface is a writable pixel target. One implementation exists per
// deployment target; the renderer never knows which it is writing to.
//
// Set must be safe for concurrent calls on distinct rows; the renderer
// guarantees no two goroutines ever touch the same row.
type Surface interface {
	Set(x, y int, c palette.Color)
	Bounds() (w, h int)
}

// ImageSurface backs the PNG/HTTP target with a stdlib image.RGBA.
type ImageSurface struct {
	img *image.RGBA
}

// NewImageSurface allocates a w×h image-backed surface.
func NewImageSurface(w, h int) *ImageSurface {
	return &ImageSurface{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (s *ImageSurface) Set(x, y int, c palette.Color) {
	i := s.img.PixOffset(x, y)
	s.img.Pix[i+0] = c.R
	s.img.Pix[i+1] = c.G
	s.img.Pix[i+2] = c.B
	s.img.Pix[i+3] = 0xff
}

func (s *ImageSurface) Bounds() (w, h int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the underlying image.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

// CanvasSurface backs the browser target: a flat RGBA byte slice laid out
// exactly like canvas ImageData, ready to hand to putImageData.
type CanvasSurface struct {
	w, h int
	data []uint8
}

// NewCanvasSurface allocates a w×h canvas-ordered surface.
func NewCanvasSurface(w, h int) *CanvasSurface {
	return &CanvasSurface{w: w, h: h, data: make([]uint8, w*h*4)}
}

func (s *CanvasSurface) Set(x, y int, c palette.Color) {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return
	}
	i := (y*s.w + x) * 4
	s.data[i+0] = c.R
	s.data[i+1] = c.G
	s.data[i+2] = c.B
	s.data[i+3] = 0xff
}

func (s *CanvasSurface) Bounds() (w, h int) { return s.w, s.h }

// Data returns the raw RGBA bytes in ImageData order.
func (s *CanvasSurface) Data() []uint8 { return s.data }
