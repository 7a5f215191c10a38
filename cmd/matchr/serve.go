package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/matchr/config"
	"github.com/jonwraymond/matchr/registry"
)

const shutdownTimeout = 5 * time.Second

// HTTP routes served by the http transport.
const (
	routeMCP = "/mcp"
	routeRPC = "/rpc"
	routeSSE = "/sse"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		transport string
		addr      string
		raw       bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the score and match_items MCP tools",
		Long: "Serve the score and match_items MCP tools over stdio or HTTP.\n\n" +
			"The http transport serves the MCP streamable HTTP endpoint at " + routeMCP + ",\n" +
			"plain JSON-RPC at " + routeRPC + ", single-event SSE at " + routeSSE + " and\n" +
			"Prometheus metrics at the configured metrics path.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := a.cfg.Server
			if cmd.Flags().Changed("transport") {
				server.Transport = transport
			}
			if cmd.Flags().Changed("addr") {
				server.Addr = addr
			}

			promReg := prometheus.NewRegistry()
			var metrics *registry.Metrics
			if a.cfg.Metrics.Enabled {
				metrics = registry.NewMetrics(promReg)
			}
			reg := a.newRegistry(metrics)
			ctx := cmd.Context()

			switch server.Transport {
			case config.TransportStdio:
				a.logger.Info().Str("transport", server.Transport).Bool("raw", raw).Msg("serving")
				if raw {
					return registry.ServeStdio(ctx, reg, cmd.InOrStdin(), cmd.OutOrStdout())
				}
				return registry.NewMCPServer(reg).Run(ctx, &mcp.StdioTransport{})
			case config.TransportHTTP:
				handler := newHTTPHandler(reg, promReg, a.cfg.Metrics)
				return serveHTTP(ctx, server.Addr, handler, a.logger)
			default:
				return fmt.Errorf("%w: unsupported transport %q", config.ErrInvalidConfig, server.Transport)
			}
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "", "transport: stdio or http (default from config)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address for the http transport (default from config)")
	cmd.Flags().BoolVar(&raw, "raw", false, "speak line-delimited JSON-RPC on stdio without MCP session handling")
	return cmd
}

func newHTTPHandler(reg *registry.Registry, gatherer prometheus.Gatherer, metrics config.MetricsConfig) http.Handler {
	server := registry.NewMCPServer(reg)

	mux := http.NewServeMux()
	mux.Handle(routeMCP, mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil))
	mux.Handle(routeRPC, registry.ServeHTTP(reg))
	mux.Handle(routeSSE, registry.ServeSSE(reg))
	if metrics.Enabled {
		mux.Handle(metrics.Path, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}

// serveHTTP serves handler on addr until ctx is cancelled, then shuts the
// server down gracefully.
func serveHTTP(ctx context.Context, addr string, handler http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", addr).Msg("serving http")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
