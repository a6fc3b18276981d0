// Package cli wires the mandelbrot commands together.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dodalovic/mandelbrot/pkg/config"
	"github.com/dodalovic/mandelbrot/pkg/logging"
)

// app carries the state shared by every subcommand.
type app struct {
	cfgPath string
	debug   bool

	cfg config.Config
	log *slog.Logger
}

// setup runs before any subcommand: logging first, then configuration.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.log = logging.Setup(a.debug)

	if a.cfgPath == "" {
		a.cfg = config.Default()
		return nil
	}
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log.Debug("config.loaded", "path", a.cfgPath)
	return nil
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:               "mandelbrot",
		Short:             "Render the Mandelbrot set to PNG files, HTTP, or your terminal",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.cfgPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newServeCmd(a),
		newRenderCmd(a),
		newExploreCmd(a),
	)
	return cmd
}
