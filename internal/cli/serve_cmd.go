package cli

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/liftplan/internal/api"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the plan generation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.HTTPHandler == nil {
				return fmt.Errorf("http api is not wired")
			}
			if addr == "" {
				addr = app.HTTPAddr
			}

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}
			return api.Serve(ctx, ln, app.HTTPHandler, app.logger())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from LIFTPLAN_HTTP_ADDR)")

	return cmd
}
