package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/sitesearch/registry"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API and MCP over HTTP",
		Long: `serve exposes the site over HTTP:

  GET  /api/search?q=...     ranked results
  GET  /api/entries/{id}     entry documentation
  GET  /api/categories       categories and featured entries
  POST /api/contact          contact form submission
  POST /mcp                  MCP JSON-RPC
  POST /mcp/sse              MCP JSON-RPC answered as a server-sent event
  /mcp/stream                MCP streamable HTTP transport
  GET  /healthz              health check`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, nil)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}

// serve runs the HTTP server until ctx is done. If ready is non-nil it
// receives the bound address once the listener is open.
func (a *app) serve(ctx context.Context, ready chan<- string) error {
	reg, site, cleanup, err := a.site(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	ln, err := net.Listen("tcp", a.cfg.Server.Addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           registry.Handler(reg, site),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.logger.Info("serving", zap.String("addr", ln.Addr().String()))
	if ready != nil {
		ready <- ln.Addr().String()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
