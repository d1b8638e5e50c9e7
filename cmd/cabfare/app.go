package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cabfare/backend/config"
	"github.com/cabfare/backend/internal/domain"
	"github.com/cabfare/backend/internal/infrastructure/cache"
	"github.com/cabfare/backend/internal/infrastructure/fareapi"
	"github.com/cabfare/backend/internal/infrastructure/llm"
	"github.com/cabfare/backend/internal/infrastructure/lyft"
	"github.com/cabfare/backend/internal/infrastructure/metrics"
	"github.com/cabfare/backend/internal/infrastructure/uber"
	"github.com/cabfare/backend/internal/usecase"
)

// app wires the infrastructure and use cases for one command run
type app struct {
	comparisons *usecase.ComparisonService
	chat        *usecase.ChatService
	metrics     *metrics.Metrics
	closers     []func() error
}

// newApp builds the service graph. withSessions adds the comparison store
// used by the dashboard API.
func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, withSessions bool) (*app, error) {
	a := &app{metrics: metrics.New()}

	uberClient := uber.NewClient(providerTransport(cfg.Uber), cfg.Uber.Fallback, logger, a.metrics)
	lyftClient := lyft.NewClient(providerTransport(cfg.Lyft), cfg.Lyft.Fallback, logger, a.metrics)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" && cfg.Log.Level == "debug" {
		uberClient.SetDebug(true)
		lyftClient.SetDebug(true)
	}

	if cfg.Uber.APIKey == "" {
		logger.Warn("Uber API key not configured, requests will fall back", zap.Bool("fallback", cfg.Uber.Fallback))
	}
	if cfg.Lyft.APIKey == "" {
		logger.Warn("Lyft API key not configured, requests will fall back", zap.Bool("fallback", cfg.Lyft.Fallback))
	}

	var store domain.ComparisonStore
	if withSessions {
		s, err := newStore(ctx, cfg.Session, a.metrics)
		if err != nil {
			return nil, err
		}
		store = s
		a.closers = append(a.closers, s.Close)
		logger.Info("session store ready", zap.String("type", cfg.Session.Type), zap.Duration("ttl", cfg.Session.TTL))
	}

	a.comparisons = usecase.NewComparisonService(
		uberClient,
		lyftClient,
		store,
		usecase.ComparisonServiceConfig{SessionTTL: cfg.Session.TTL},
		logger,
		a.metrics,
	)

	generator, err := llm.NewGenerator(ctx, llm.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  cfg.LLM.Timeout,
	})
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to create language model client: %w", err)
	}
	a.closers = append(a.closers, generator.Close)
	logger.Info("language model", zap.String("provider", cfg.LLM.Provider))

	a.chat = usecase.NewChatService(generator, usecase.ChatServiceConfig{
		Temperature:      &cfg.LLM.Temperature,
		MaxTokens:        cfg.LLM.MaxTokens,
		SummaryMaxTokens: cfg.LLM.SummaryMaxTokens,
	}, logger)

	return a, nil
}

// Close releases the store and language model clients
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type closableStore interface {
	domain.ComparisonStore
	Close() error
}

func newStore(ctx context.Context, cfg config.SessionConfig, m *metrics.Metrics) (closableStore, error) {
	switch cfg.Type {
	case "redis":
		store, err := cache.NewRedisStoreFromURL(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect session store: %w", err)
		}
		return store, nil
	default:
		store := cache.NewMemoryStore()
		m.WatchSessions(store.Size)
		return store, nil
	}
}

func providerTransport(cfg config.ProviderConfig) fareapi.Config {
	return fareapi.Config{
		BaseURL:       cfg.BaseURL,
		APIKey:        cfg.APIKey,
		Timeout:       cfg.Timeout,
		MaxRetries:    cfg.Retries,
		RatePerSecond: cfg.RatePerSecond,
	}
}
