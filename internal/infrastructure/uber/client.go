package uber

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

// DefaultBaseURL is the Uber Rides API v1.2 root
const DefaultBaseURL = "https://api.uber.com/v1.2"

// Client handles communication with the Uber Rides API
type Client struct {
	api      *fareapi.Client
	fallback bool
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewClient creates a new Uber API client. With fallback enabled, transport
// failures are answered with sample data instead of an error. A response
// that decodes but does not fit the payload schema is always an error.
func NewClient(cfg fareapi.Config, fallback bool, logger *zap.Logger, m *metrics.Metrics) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.Name = string(domain.ProviderUber)
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

// GetPriceEstimate returns price estimates for every product on the trip
func (c *Client) GetPriceEstimate(ctx context.Context, trip domain.Trip) (*domain.UberPriceResponse, error) {
	query := map[string]string{
		"start_latitude":  formatCoord(trip.PickupLat),
		"start_longitude": formatCoord(trip.PickupLng),
		"end_latitude":    formatCoord(trip.DropoffLat),
		"end_longitude":   formatCoord(trip.DropoffLng),
	}

	var resp domain.UberPriceResponse
	if err := c.api.Get(ctx, "/estimates/price", query, &resp); err != nil {
		if errors.Is(err, domain.ErrMalformedPayload) {
			c.logger.Warn("rejected provider payload", zap.String("endpoint", "/estimates/price"), zap.Error(err))
			return nil, err
		}
		c.metrics.IncFallback(string(domain.ProviderUber))
		if !c.fallback {
			c.logger.Warn("price estimate failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
		}
		c.logger.Warn("price estimate failed, using sample data", zap.Error(err))
		return SamplePriceResponse(), nil
	}

	c.logger.Debug("price estimate", zap.Int("products", len(resp.Prices)))
	return &resp, nil
}

// GetTimeEstimate returns pickup time estimates at a location
func (c *Client) GetTimeEstimate(ctx context.Context, lat, lng float64) (*domain.UberTimeResponse, error) {
	query := map[string]string{
		"start_latitude":  formatCoord(lat),
		"start_longitude": formatCoord(lng),
	}

	var resp domain.UberTimeResponse
	if err := c.api.Get(ctx, "/estimates/time", query, &resp); err != nil {
		if errors.Is(err, domain.ErrMalformedPayload) {
			c.logger.Warn("rejected provider payload", zap.String("endpoint", "/estimates/time"), zap.Error(err))
			return nil, err
		}
		c.metrics.IncFallback(string(domain.ProviderUber))
		if !c.fallback {
			c.logger.Warn("time estimate failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
		}
		c.logger.Warn("time estimate failed, returning no estimates", zap.Error(err))
		return &domain.UberTimeResponse{}, nil
	}
	return &resp, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
