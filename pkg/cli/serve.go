package cli

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/dodalovic/mandelbrot/pkg/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered regions and the canvas client over HTTP",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			srv, err := server.New(a.cfg, server.WithLogger(a.log))
			if err != nil {
				return err
			}
			err = srv.ListenAndServe(cmd.Context())
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8000", "listen address (overrides config)")
	return cmd
}
