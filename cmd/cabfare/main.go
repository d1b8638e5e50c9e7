package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cabfare/backend/config"
	"github.com/cabfare/backend/internal/infrastructure/logging"
)

// rootState is filled in by the root command's PersistentPreRunE
type rootState struct {
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	state := &rootState{}
	var logLevel string

	root := &cobra.Command{
		Use:           "cabfare",
		Short:         "Compare Uber and Lyft fares with AI assistance",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// .env is optional
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}

			logger, err := logging.New(cfg.Server.Environment, cfg.Log.Level)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}

			state.cfg = cfg
			state.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if state.logger != nil {
				_ = state.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides config")

	root.AddCommand(
		newCompareCmd(state),
		newChatCmd(state),
		newETACmd(state),
		newServeCmd(state),
	)
	return root
}
