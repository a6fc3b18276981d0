package server

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/dodalovic/mandelbrot/pkg/escape"
	"github.com/dodalovic/mandelbrot/pkg/fractal"
	"github.com/dodalovic/mandelbrot/pkg/palette"
	"github.com/dodalovic/mandelbrot/pkg/view"
)

var regionKeys = [4]string{"top", "left", "bottom", "right"}

// renderParams is one fully-resolved render request.
type renderParams struct {
	vp     view.Viewport
	width  int
	height int
	iter   escape.Iterator
	pal    *palette.Palette

	banded bool
	band   int
	bands  int
}

// parseParams resolves the query string against the configured defaults
// and limits.
func (s *Server) parseParams(q url.Values) (renderParams, error) {
	p := renderParams{
		vp:     s.defaultView,
		width:  s.cfg.Render.Width,
		height: s.cfg.Render.Height,
	}

	vp, err := s.parseRegion(q)
	if err != nil {
		return renderParams{}, err
	}
	p.vp = vp

	if p.width, err = intParam(q, "width", p.width, s.cfg.Server.MaxWidth); err != nil {
		return renderParams{}, err
	}
	if p.height, err = intParam(q, "height", p.height, s.cfg.Server.MaxHeight); err != nil {
		return renderParams{}, err
	}

	iters, err := intParam(q, "iters", s.cfg.Render.Iterations, s.cfg.Server.MaxIterations)
	if err != nil {
		return renderParams{}, err
	}
	p.iter = escape.NewIterator(iters, escape.DefaultBailout)

	name := q.Get("palette")
	if name == "" {
		name = s.cfg.Render.Palette
	}
	if p.pal, err = palette.Lookup(name); err != nil {
		return renderParams{}, err
	}

	if err := parseBand(q, &p); err != nil {
		return renderParams{}, err
	}
	if p.banded && p.bands > p.height {
		return renderParams{}, &fractal.ParamError{
			Name:  "bands",
			Value: q.Get("bands"),
			Err:   fmt.Errorf("more bands (%d) than image rows (%d)", p.bands, p.height),
		}
	}
	return p, nil
}

// parseRegion reads the four region edges. They are all-or-none: zero
// edges selects the default view, four select the requested one, and any
// other count is an error.
func (s *Server) parseRegion(q url.Values) (view.Viewport, error) {
	present := 0
	for _, k := range regionKeys {
		if q.Has(k) {
			present++
		}
	}
	switch present {
	case 0:
		return s.defaultView, nil
	case len(regionKeys):
	default:
		return view.Viewport{}, fmt.Errorf(
			"%w: region needs all of top, left, bottom, right (got %d of 4)",
			fractal.ErrInvalidParam, present)
	}

	var edges [4]float64
	for i, k := range regionKeys {
		v, err := floatParam(q, k)
		if err != nil {
			return view.Viewport{}, err
		}
		edges[i] = v
	}
	return view.NewViewport(edges[0], edges[1], edges[2], edges[3])
}

// parseBand reads the progressive-band selector. band and bands come
// together or not at all.
func parseBand(q url.Values, p *renderParams) error {
	hasBand, hasBands := q.Has("band"), q.Has("bands")
	if !hasBand && !hasBands {
		return nil
	}
	if hasBand != hasBands {
		return fmt.Errorf("%w: band and bands must be supplied together", fractal.ErrInvalidParam)
	}

	bands, err := intParam(q, "bands", 0, 64)
	if err != nil {
		return err
	}
	raw := q.Get("band")
	band, err := strconv.Atoi(raw)
	if err != nil {
		return &fractal.ParamError{Name: "band", Value: raw, Err: err}
	}
	if band < 0 || band >= bands {
		return &fractal.ParamError{
			Name:  "band",
			Value: raw,
			Err:   fmt.Errorf("band index must be in [0, %d)", bands),
		}
	}
	p.banded = true
	p.band = band
	p.bands = bands
	return nil
}

// floatParam parses a required finite float.
func floatParam(q url.Values, name string) (float64, error) {
	raw := q.Get(name)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &fractal.ParamError{Name: name, Value: raw, Err: err}
	}
	return v, nil
}

// intParam parses an optional positive integer, clamping to max. Zero and
// negative values are rejected rather than clamped: a client asking for a
// zero-width image is confused, not ambitious.
func intParam(q url.Values, name string, def, max int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &fractal.ParamError{Name: name, Value: raw, Err: err}
	}
	if v < 1 {
		return 0, &fractal.ParamError{Name: name, Value: raw, Err: fmt.Errorf("must be positive")}
	}
	if v > max {
		v = max
	}
	return v, nil
}
