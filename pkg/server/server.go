// Package server exposes rendered Mandelbrot regions over HTTP and hosts
// the browser canvas client.
package server

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dodalovic/mandelbrot/pkg/config"
	"github.com/dodalovic/mandelbrot/pkg/fractal"
	"github.com/dodalovic/mandelbrot/pkg/logging"
	"github.com/dodalovic/mandelbrot/pkg/render"
	"github.com/dodalovic/mandelbrot/pkg/view"
)

const shutdownGrace = 5 * time.Second

// Server renders regions of the Mandelbrot set on demand.
type Server struct {
	cfg         config.Config
	defaultView view.Viewport
	log         *slog.Logger
	mux         *http.ServeMux
}

// Option adjusts a Server at construction.
type Option func(*Server)

// WithLogger replaces the process logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// New validates the configuration and wires up the routes.
func New(cfg config.Config, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	vp, err := cfg.Viewport()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:         cfg,
		defaultView: vp,
		log:         logging.L(),
		mux:         http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/mandelbrot", s.handleMandelbrot)
	s.mux.HandleFunc("/healthz", s.handleHealthz)
	return s, nil
}

// Handler returns the route table wrapped in request logging.
func (s *Server) Handler() http.Handler { return s.withLogging(s.mux) }

type ctxKey int

const requestIDKey ctxKey = iota

// requestID returns the ID the logging middleware assigned.
func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// statusWriter records the status code a handler settles on.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// withLogging tags every request with an ID and logs method, path, status
// and duration once the handler returns.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rid := uuid.NewString()
		w.Header().Set("X-Request-Id", rid)

		sw := &statusWriter{ResponseWriter: w}
		ctx := context.WithValue(r.Context(), requestIDKey, rid)
		next.ServeHTTP(sw, r.WithContext(ctx))

		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}
		s.log.Info("request.done",
			"id", rid,
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"elapsed", time.Since(start),
		)
	})
}

// ListenAndServe runs the server until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Info("server.listening", "addr", s.cfg.Server.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleMandelbrot(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rid := requestID(r.Context())

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	p, err := s.parseParams(r.URL.Query())
	if err != nil {
		status := statusFor(err)
		s.log.Warn("request.rejected", "id", rid, "path", r.URL.String(), "status", status, "err", err)
		http.Error(w, err.Error(), status)
		return
	}

	rnd := render.New(p.iter, p.pal,
		render.WithWorkers(s.cfg.Render.Workers),
		render.WithSubSamples(s.cfg.Render.SubSamples),
	)

	var (
		img    *image.RGBA
		offset int
	)
	if p.banded {
		img, offset, err = rnd.RenderBand(r.Context(), p.vp, p.width, p.height, p.band, p.bands)
	} else {
		img, err = rnd.RenderImage(r.Context(), p.vp, p.width, p.height)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.log.Info("request.cancelled", "id", rid, "region", p.vp.String(), "elapsed", time.Since(start))
			return
		}
		s.log.Error("render.failed", "id", rid, "region", p.vp.String(), "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		s.log.Error("encode.failed", "id", rid, "err", err)
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if p.banded {
		w.Header().Set("X-Band-Offset", strconv.Itoa(offset))
	}
	_, _ = w.Write(buf.Bytes())

	s.log.Info("request.served",
		"id", rid,
		"region", p.vp.String(),
		"size", image.Pt(p.width, p.height).String(),
		"iterations", p.iter.Limit,
		"bytes", buf.Len(),
		"elapsed", time.Since(start),
	)
}

// statusFor maps error classes onto response codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, fractal.ErrDegenerateRegion):
		return http.StatusUnprocessableEntity
	case errors.Is(err, fractal.ErrInvalidParam), errors.Is(err, fractal.ErrUnknownPalette):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
