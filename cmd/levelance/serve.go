package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/levelance/internal/cli"
	"github.com/aretw0/levelance/internal/presentation/tui"
	httpAdapter "github.com/aretw0/levelance/pkg/adapters/http"
	"github.com/aretw0/levelance/pkg/domain"
	"github.com/aretw0/levelance/pkg/observability"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP decode server",
		Long: `Exposes the decoder as a JSON API over HTTP. Both modes are served; the
configured mode (delimited unless --strict) is the default for requests that
do not name one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if cmd.Flags().Changed("addr") {
				a.cfg.HTTP.Addr, _ = cmd.Flags().GetString("addr")
			}
			quiet, _ := cmd.Flags().GetBool("quiet")

			handler, err := newServeHandler(a)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              a.cfg.HTTP.Addr,
				Handler:           handler,
				ReadHeaderTimeout: 5 * time.Second,
			}

			if !quiet {
				tui.PrintBanner(cmd.ErrOrStderr(), a.cfg.NoColor)
			}
			return runServer(cmd.Context(), srv, a)
		},
	}
	cmd.Flags().String("addr", "", "Address to listen on (default from config, :8080)")
	cmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
	return cmd
}

// newServeHandler wires both engines, metrics and the HTTP adapter.
func newServeHandler(a *app) (http.Handler, error) {
	var (
		hooks      []domain.LifecycleHooks
		handlerOpt = []httpAdapter.Option{httpAdapter.WithLogger(a.logger)}
	)

	if a.cfg.HTTP.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		hooks = append(hooks, metrics.Hooks())
		handlerOpt = append(handlerOpt, httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	// The configured mode goes first so it becomes the default.
	engines := []httpAdapter.Engine{
		cli.CreateEngine(cli.EngineOptions{Strict: a.strict, Cache: a.cache, Hooks: hooks}, a.logger),
		cli.CreateEngine(cli.EngineOptions{Strict: !a.strict, Cache: a.cache, Hooks: hooks}, a.logger),
	}
	return httpAdapter.NewHandler(engines, handlerOpt...)
}

func runServer(ctx context.Context, srv *http.Server, a *app) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting Levelance Server", "addr", srv.Addr, "strict", a.strict)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		a.logger.Info("Start shutdown...")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		a.logger.Info("Levelance Server stopped gracefully")
		return nil
	}
}
