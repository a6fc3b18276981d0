package render

import (
	"context"
	"image"
	"math/rand"
	"runtime"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/dodalovic/mandelbrot/pkg/escape"
	"github.com/dodalovic/mandelbrot/pkg/palette"
	"github.com/dodalovic/mandelbrot/pkg/view"
)

// Renderer composes a sampler, an escape iterator and a palette into
// pixel buffers. A Renderer is safe for concurrent use.
type Renderer struct {
	iter       escape.Iterator
	pal        *palette.Palette
	workers    int
	subSamples int
	oversample int
	seed       int64
}

// Option adjusts a Renderer at construction.
type Option func(*Renderer)

// WithWorkers caps the number of row-rendering goroutines.
func WithWorkers(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithSubSamples enables jittered supersampling with n samples per pixel.
func WithSubSamples(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.subSamples = n
		}
	}
}

// WithOversample makes RenderImage render at n times the requested
// resolution and downscale the result.
func WithOversample(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.oversample = n
		}
	}
}

// WithSeed fixes the jitter source, making supersampled renders
// reproducible.
func WithSeed(seed int64) Option {
	return func(r *Renderer) { r.seed = seed }
}

// New builds a renderer. By default it uses one worker per CPU, a single
// sample per pixel, and no oversampling.
func New(iter escape.Iterator, pal *palette.Palette, opts ...Option) *Renderer {
	r := &Renderer{
		iter:       iter,
		pal:        pal,
		workers:    runtime.NumCPU(),
		subSamples: 1,
		oversample: 1,
		seed:       1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Limit returns the iteration limit renders run under.
func (r *Renderer) Limit() int { return r.iter.Limit }

// Render fills dst with the viewport. Rows are fanned out across the
// worker pool; cancellation is honored between rows.
func (r *Renderer) Render(ctx context.Context, vp view.Viewport, dst Surface) error {
	if err := vp.Validate(); err != nil {
		return err
	}
	w, h := dst.Bounds()
	s := view.NewSampler(vp, w, h)
	return r.renderRows(ctx, s, 0, h, dst)
}

// RenderImage renders the viewport at w×h and returns the image. With
// oversampling configured, the render happens at a multiple of the
// requested size and is downscaled with a Catmull-Rom kernel.
func (r *Renderer) RenderImage(ctx context.Context, vp view.Viewport, w, h int) (*image.RGBA, error) {
	if r.oversample <= 1 {
		dst := NewImageSurface(w, h)
		if err := r.Render(ctx, vp, dst); err != nil {
			return nil, err
		}
		return dst.Image(), nil
	}

	big := NewImageSurface(w*r.oversample, h*r.oversample)
	if err := r.Render(ctx, vp, big); err != nil {
		return nil, err
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(out, out.Bounds(), big.Image(), big.Image().Bounds(), xdraw.Src, nil)
	return out, nil
}

// renderRows renders grid rows [y0, y1) of s into dst, which must be
// y1-y0 rows tall. Writes land at dst row y-y0.
func (r *Renderer) renderRows(ctx context.Context, s view.Sampler, y0, y1 int, dst Surface) error {
	rows := make(chan int)
	go func() {
		defer close(rows)
		for y := y0; y < y1; y++ {
			select {
			case rows <- y:
			case <-ctx.Done():
				return
			}
		}
	}()

	w, _ := s.Size()

	var wg sync.WaitGroup
	wg.Add(r.workers)
	for i := 0; i < r.workers; i++ {
		go func(worker int) {
			defer wg.Done()
			var rng *rand.Rand
			if r.subSamples > 1 {
				rng = rand.New(rand.NewSource(r.seed + int64(worker)))
			}
			for y := range rows {
				if ctx.Err() != nil {
					continue
				}
				r.renderRow(s, y, y-y0, w, dst, rng)
			}
		}(i)
	}
	wg.Wait()

	return ctx.Err()
}

func (r *Renderer) renderRow(s view.Sampler, y, dstY, w int, dst Surface, rng *rand.Rand) {
	for x := 0; x < w; x++ {
		dst.Set(x, dstY, r.pixel(s, x, y, rng))
	}
}

// pixel colors one grid cell, averaging jittered samples when
// supersampling is on.
func (r *Renderer) pixel(s view.Sampler, x, y int, rng *rand.Rand) palette.Color {
	if r.subSamples <= 1 || rng == nil {
		res := r.iter.Iterate(s.At(x, y))
		return r.pal.Map(res, r.iter.Limit)
	}

	var sr, sg, sb float64
	for i := 0; i < r.subSamples; i++ {
		res := r.iter.Iterate(s.AtSub(x, y, rng.Float64(), rng.Float64()))
		c := r.pal.Map(res, r.iter.Limit)
		sr += float64(c.R)
		sg += float64(c.G)
		sb += float64(c.B)
	}
	n := float64(r.subSamples)
	return palette.Color{
		R: uint8(sr/n + 0.5),
		G: uint8(sg/n + 0.5),
		B: uint8(sb/n + 0.5),
	}
}
