package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aretw0/solliq"
	httpAdapter "github.com/aretw0/solliq/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	shutdownTimeout = 5 * time.Second
	watchDebounce   = 200 * time.Millisecond
)

func newServeCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Serves the calculator as a JSON API under /v1, described by /openapi.yaml
and browsable at /swagger. Prometheus metrics are exposed at /metrics.

With --watch, edits to the presets file are picked up without a restart and
announced to /v1/events subscribers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			calc, cleanup, err := e.sampler(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			opts := []httpAdapter.Option{httpAdapter.WithLogger(e.logger), httpAdapter.WithRegistry(registry)}

			store, err := e.presets()
			if err != nil {
				return err
			}
			if store != nil {
				opts = append(opts, httpAdapter.WithPresets(store))
			}
			srv := httpAdapter.NewServer(calc, opts...)
			handler, err := srv.Handler()
			if err != nil {
				return err
			}

			if store != nil && watch {
				store.OnReload(func(names []string) {
					data, _ := json.Marshal(names)
					srv.Broadcast("presets", string(data))
				})
				go func() {
					if err := store.Watch(ctx, watchDebounce); err != nil {
						e.logger.Error("presets watcher stopped", "error", err)
					}
				}()
			}

			httpServer := &http.Server{
				Addr:              fmt.Sprintf(":%d", e.cfg.HTTP.Port),
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)
			go func() {
				e.logger.Info("solliq HTTP server listening",
					"address", httpServer.Addr,
					"version", strings.TrimSpace(solliq.Version),
					"cache", e.cfg.Cache.Backend)
				serverErrors <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				e.logger.Info("shutting down HTTP server")
				// Give outstanding requests a deadline for completion.
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					e.logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
					return httpServer.Close()
				}
				return nil
			}
		},
	}
	cmd.Flags().IntP("port", "p", 8080, "port to listen on")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the presets file when it changes")
	_ = viper.BindPFlag("http.port", cmd.Flags().Lookup("port"))
	return cmd
}
