package cli

import (
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dodalovic/mandelbrot/pkg/escape"
	"github.com/dodalovic/mandelbrot/pkg/palette"
	"github.com/dodalovic/mandelbrot/pkg/render"
	"github.com/dodalovic/mandelbrot/pkg/view"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		out        string
		width      int
		height     int
		iters      int
		palName    string
		oversample int
		subSamples int
		edges      [4]float64
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a region of the plane to a PNG file",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			vp, err := a.renderViewport(cmd, edges)
			if err != nil {
				return err
			}
			if width == 0 {
				width = a.cfg.Render.Width
			}
			if height == 0 {
				height = a.cfg.Render.Height
			}
			if iters == 0 {
				iters = a.cfg.Render.Iterations
			}
			if palName == "" {
				palName = a.cfg.Render.Palette
			}
			pal, err := palette.Lookup(palName)
			if err != nil {
				return err
			}

			rnd := render.New(
				escape.NewIterator(iters, escape.DefaultBailout),
				pal,
				render.WithWorkers(a.cfg.Render.Workers),
				render.WithSubSamples(subSamples),
				render.WithOversample(oversample),
			)

			start := time.Now()
			img, err := rnd.RenderImage(cmd.Context(), vp, width, height)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			if out == "" {
				if err := os.MkdirAll("out", os.ModePerm); err != nil {
					return err
				}
				out = filepath.Join("out", time.Now().Format("20060102150405")+".png")
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			if err := png.Encode(f, img); err != nil {
				return err
			}

			a.log.Info("render.done", "path", out, "size", fmt.Sprintf("%dx%d", width, height),
				"iterations", iters, "elapsed", elapsed)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default out/<timestamp>.png)")
	cmd.Flags().IntVar(&width, "width", 0, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "image height in pixels")
	cmd.Flags().IntVar(&iters, "iters", 0, "iteration limit")
	cmd.Flags().StringVar(&palName, "palette", "", "palette name: "+fmt.Sprint(palette.Names()))
	cmd.Flags().IntVar(&oversample, "oversample", 1, "render at N× resolution and downscale")
	cmd.Flags().IntVar(&subSamples, "subsamples", 0, "jittered samples per pixel")
	cmd.Flags().Float64Var(&edges[0], "top", math.NaN(), "top edge of the region")
	cmd.Flags().Float64Var(&edges[1], "left", math.NaN(), "left edge of the region")
	cmd.Flags().Float64Var(&edges[2], "bottom", math.NaN(), "bottom edge of the region")
	cmd.Flags().Float64Var(&edges[3], "right", math.NaN(), "right edge of the region")
	return cmd
}

// renderViewport resolves the region flags: all four set selects that
// region, none selects the configured default, anything in between is an
// error.
func (a *app) renderViewport(cmd *cobra.Command, edges [4]float64) (view.Viewport, error) {
	names := []string{"top", "left", "bottom", "right"}
	set := 0
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			set++
		}
	}
	switch set {
	case 0:
		return a.cfg.Viewport()
	case len(names):
		return view.NewViewport(edges[0], edges[1], edges[2], edges[3])
	default:
		return view.Viewport{}, fmt.Errorf("region needs all of --top --left --bottom --right (got %d of 4)", set)
	}
}
