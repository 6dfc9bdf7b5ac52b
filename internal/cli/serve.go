package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"cigate/internal/app"
	"cigate/internal/server"
)

func newServeCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the runner over HTTP",
		Long:  "Starts an HTTP API: GET /api/tools lists tools, POST /api/run runs them and returns the JSON report (422 on FAIL).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			sess, err := app.Load(cmd.Context(), g.overrides())
			if err != nil {
				return err
			}
			if !g.verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			srv := &server.Server{Addr: addr, Session: sess}

			// Handle Ctrl+C
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			if err := srv.Start(ctx); err != nil {
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringP("addr", "a", "127.0.0.1:8787", "address to bind (host:port)")
	return cmd
}
