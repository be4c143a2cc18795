package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/patrimoine/internal/api"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [input-file]",
		Short: "Serve the household simulation over HTTP",
		Long: `Start a JSON API over one household configuration. The configuration is
loaded once and read-only while the server runs. There is no
authentication: bind to a loopback address.`,
		Example: `  patrimoine serve household.yaml
  patrimoine serve household.yaml --addr 127.0.0.1:3000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args[0])
			if err != nil {
				return err
			}
			addr, _ := cmd.Flags().GetString("addr")
			logger := newLogger(cmd)
			engine := newEngine(cmd, cfg)

			server := &http.Server{
				Addr:         addr,
				Handler:      api.NewRouter(api.NewHandler(cfg, engine), logger),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				logger.Info("server starting", "addr", "http://"+addr, "api", "http://"+addr+"/api")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
				}
				close(errc)
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().String("addr", "127.0.0.1:8080", "Listen address")
	return cmd
}
