package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cabfare/backend/internal/domain"
	"github.com/cabfare/backend/internal/infrastructure/lyft"
	"github.com/cabfare/backend/internal/infrastructure/metrics"
	"github.com/cabfare/backend/internal/infrastructure/uber"
)

// ComparisonServiceConfig holds configuration for the comparison service
type ComparisonServiceConfig struct {
	// SessionTTL is how long a comparison stays readable by Lookup
	SessionTTL time.Duration
}

// ComparisonService fetches both providers' fares and ranks them
type ComparisonService struct {
	uber       domain.UberClient
	lyft       domain.LyftClient
	store      domain.ComparisonStore
	sessionTTL time.Duration
	logger     *zap.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewComparisonService creates a comparison service. store may be nil, in
// which case results are not kept for Lookup.
func NewComparisonService(
	uberClient domain.UberClient,
	lyftClient domain.LyftClient,
	store domain.ComparisonStore,
	config ComparisonServiceConfig,
	logger *zap.Logger,
	m *metrics.Metrics,
) *ComparisonService {
	sessionTTL := config.SessionTTL
	if sessionTTL == 0 {
		sessionTTL = 30 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ComparisonService{
		uber:       uberClient,
		lyft:       lyftClient,
		store:      store,
		sessionTTL: sessionTTL,
		logger:     logger,
		metrics:    m,
		now:        time.Now,
	}
}

// Compare fetches estimates for a trip from both providers and builds the
// ranked comparison. A provider that fails contributes no options; a
// provider payload missing or mistyping prices fails the comparison.
func (s *ComparisonService) Compare(ctx context.Context, trip domain.Trip) (*domain.ComparisonResult, error) {
	var (
		g                errgroup.Group
		uberResp         *domain.UberPriceResponse
		lyftResp         *domain.LyftCostResponse
		uberErr, lyftErr error
	)
	g.Go(func() error {
		uberResp, uberErr = s.uber.GetPriceEstimate(ctx, trip)
		return malformed(uberErr)
	})
	g.Go(func() error {
		lyftResp, lyftErr = s.lyft.GetCostEstimate(ctx, trip)
		return malformed(lyftErr)
	})
	if err := g.Wait(); err != nil {
		s.metrics.ObserveComparison(metrics.OutcomeFailed)
		return nil, err
	}

	outcome := metrics.OutcomeOK

	uberOptions := []domain.RideOption{}
	if uberErr != nil {
		s.logger.Warn("uber estimate unavailable", zap.Error(uberErr))
		outcome = metrics.OutcomePartial
	} else {
		opts, err := uber.MapPriceEstimates(uberResp)
		if err != nil {
			s.metrics.ObserveComparison(metrics.OutcomeFailed)
			return nil, err
		}
		uberOptions = opts
	}

	lyftOptions := []domain.RideOption{}
	if lyftErr != nil {
		s.logger.Warn("lyft estimate unavailable", zap.Error(lyftErr))
		outcome = metrics.OutcomePartial
	} else {
		opts, err := lyft.MapCostEstimates(lyftResp)
		if err != nil {
			s.metrics.ObserveComparison(metrics.OutcomeFailed)
			return nil, err
		}
		lyftOptions = opts
	}

	result := &domain.ComparisonResult{
		ID:        uuid.NewString(),
		Trip:      trip,
		Uber:      uberOptions,
		Lyft:      lyftOptions,
		CreatedAt: s.now().UTC(),
	}
	result.Recommendations = Recommend(result.AllOptions())
	result.Summary = Summarize(result.OptionsFor(domain.ProviderUber), result.OptionsFor(domain.ProviderLyft))
	s.metrics.ObserveComparison(outcome)

	s.logger.Info("fares compared",
		zap.String("comparison_id", result.ID),
		zap.Int("uber_options", len(uberOptions)),
		zap.Int("lyft_options", len(lyftOptions)),
		zap.String("outcome", outcome),
	)

	if s.store != nil {
		if err := s.store.Save(ctx, result, s.sessionTTL); err != nil {
			s.logger.Warn("failed to keep comparison for session", zap.String("comparison_id", result.ID), zap.Error(err))
		}
	}

	return result, nil
}

// Lookup returns a comparison recorded by an earlier Compare call
func (s *ComparisonService) Lookup(ctx context.Context, id string) (*domain.ComparisonResult, error) {
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}
	if s.store == nil {
		return nil, domain.ErrComparisonNotFound
	}
	result, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup comparison %s: %w", id, err)
	}
	return result, nil
}

// PickupETAs returns both providers' pickup estimates at a location,
// Uber's first. A provider that fails contributes no estimates.
func (s *ComparisonService) PickupETAs(ctx context.Context, lat, lng float64) ([]domain.PickupETA, error) {
	var (
		g                errgroup.Group
		uberResp         *domain.UberTimeResponse
		lyftResp         *domain.LyftETAResponse
		uberErr, lyftErr error
	)
	g.Go(func() error {
		uberResp, uberErr = s.uber.GetTimeEstimate(ctx, lat, lng)
		return malformed(uberErr)
	})
	g.Go(func() error {
		lyftResp, lyftErr = s.lyft.GetETA(ctx, lat, lng)
		return malformed(lyftErr)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	etas := []domain.PickupETA{}
	if uberErr != nil {
		s.logger.Warn("uber time estimate unavailable", zap.Error(uberErr))
	} else {
		uberETAs, err := uber.MapTimeEstimates(uberResp)
		if err != nil {
			return nil, err
		}
		etas = append(etas, uberETAs...)
	}

	if lyftErr != nil {
		s.logger.Warn("lyft eta unavailable", zap.Error(lyftErr))
	} else {
		lyftETAs, err := lyft.MapETAEstimates(lyftResp)
		if err != nil {
			return nil, err
		}
		etas = append(etas, lyftETAs...)
	}

	return etas, nil
}

// malformed passes through payload errors, which fail the whole call.
// Other provider errors are kept by the caller and degrade to no options.
func malformed(err error) error {
	if errors.Is(err, domain.ErrMalformedPayload) {
		return err
	}
	return nil
}
