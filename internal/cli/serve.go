package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwessel/phigrid/pkg/httpapi"
	"github.com/mwessel/phigrid/pkg/topology"
	"github.com/mwessel/phigrid/pkg/watch"
)

// shutdownTimeout bounds graceful HTTP shutdown on SIGINT/SIGTERM.
const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noStore bool
	)
	sf := &storeFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulator over HTTP",
		Long: `Serve the simulator over HTTP.

The server holds one current complex, regenerated on POST /api/v1/complex
and streamed to subscribers on GET /api/v1/events (server-sent events).
Snapshot routes use the selected store backend; --no-store disables them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			holder := watch.New()
			defer holder.Close()

			// Seed the holder so GET /complex works before any POST.
			initial, err := topology.Generate(c.Config.Architecture(), c.Config.Generation.Elements,
				topology.WithGridWidth(c.Config.Generation.GridWidth),
				topology.WithEvaluator(c.Config.Scale()),
			)
			if err != nil {
				return err
			}
			holder.Set(initial)

			server := httpapi.New(c.Config, holder, nil, c.Logger)
			if !noStore {
				st, err := sf.open(ctx)
				if err != nil {
					return err
				}
				defer st.Close(context.Background())
				server = httpapi.New(c.Config, holder, st, c.Logger)
			}

			httpServer := &http.Server{
				Addr:    addr,
				Handler: server.Handler(),
				BaseContext: func(net.Listener) context.Context {
					return ctx
				},
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("serving", "addr", addr)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				c.Logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutdown: %w", err)
				}
				return nil
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "disable snapshot routes")
	sf.register(cmd)

	return cmd
}
