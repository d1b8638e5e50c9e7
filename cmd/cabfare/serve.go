package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpDelivery "github.com/cabfare/backend/internal/delivery/http"
)

func newServeCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger := state.cfg, state.logger
			ctx := cmd.Context()

			logger.Info("starting cabfare backend",
				zap.String("version", "1.0.0"),
				zap.String("environment", cfg.Server.Environment),
				zap.String("port", cfg.Server.Port),
			)

			a, err := newApp(ctx, cfg, logger, true)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			handler := httpDelivery.NewHandler(a.comparisons, a.chat)
			router := httpDelivery.SetupRouter(cfg, handler, logger, a.metrics)

			srv := &http.Server{
				Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
				Handler:      router,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 60 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("server forced shutdown", zap.Error(err))
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}
}
