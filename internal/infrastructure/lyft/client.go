package lyft

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/cabfare/backend/internal/domain"
	"github.com/cabfare/backend/internal/infrastructure/fareapi"
	"github.com/cabfare/backend/internal/infrastructure/metrics"
)

// DefaultBaseURL is the Lyft API v1 root
const DefaultBaseURL = "https://api.lyft.com/v1"

// Client handles communication with the Lyft API
type Client struct {
	api      *fareapi.Client
	fallback bool
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewClient creates a new Lyft API client. With fallback enabled, transport
// failures are answered with sample data instead of an error. A response
// that decodes but does not fit the payload schema is always an error.
func NewClient(cfg fareapi.Config, fallback bool, logger *zap.Logger, m *metrics.Metrics) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.Name = string(domain.ProviderLyft)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		api:      fareapi.NewClient(cfg, logger, m),
		fallback: fallback,
		logger:   logger.With(zap.String("provider", cfg.Name)),
		metrics:  m,
	}
}

// SetDebug enables or disables HTTP dumps
func (c *Client) SetDebug(debug bool) {
	c.api.SetDebug(debug)
}

// GetCostEstimate returns cost estimates for every ride type on the trip
func (c *Client) GetCostEstimate(ctx context.Context, trip domain.Trip) (*domain.LyftCostResponse, error) {
	query := map[string]string{
		"start_lat": formatCoord(trip.PickupLat),
		"start_lng": formatCoord(trip.PickupLng),
		"end_lat":   formatCoord(trip.DropoffLat),
		"end_lng":   formatCoord(trip.DropoffLng),
	}

	var resp domain.LyftCostResponse
	if err := c.api.Get(ctx, "/cost", query, &resp); err != nil {
		if errors.Is(err, domain.ErrMalformedPayload) {
			c.logger.Warn("rejected provider payload", zap.String("endpoint", "/cost"), zap.Error(err))
			return nil, err
		}
		c.metrics.IncFallback(string(domain.ProviderLyft))
		if !c.fallback {
			c.logger.Warn("cost estimate failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
		}
		c.logger.Warn("cost estimate failed, using sample data", zap.Error(err))
		return SampleCostResponse(), nil
	}

	c.logger.Debug("cost estimate", zap.Int("ride_types", len(resp.CostEstimates)))
	return &resp, nil
}

// GetETA returns pickup ETAs at a location
func (c *Client) GetETA(ctx context.Context, lat, lng float64) (*domain.LyftETAResponse, error) {
	query := map[string]string{
		"lat": formatCoord(lat),
		"lng": formatCoord(lng),
	}

	var resp domain.LyftETAResponse
	if err := c.api.Get(ctx, "/eta", query, &resp); err != nil {
		if errors.Is(err, domain.ErrMalformedPayload) {
			c.logger.Warn("rejected provider payload", zap.String("endpoint", "/eta"), zap.Error(err))
			return nil, err
		}
		c.metrics.IncFallback(string(domain.ProviderLyft))
		if !c.fallback {
			c.logger.Warn("eta failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
		}
		c.logger.Warn("eta failed, returning no estimates", zap.Error(err))
		return &domain.LyftETAResponse{}, nil
	}
	return &resp, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
