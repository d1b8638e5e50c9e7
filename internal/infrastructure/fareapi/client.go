package fareapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/cabfare/backend/internal/domain"
	"github.com/cabfare/backend/internal/infrastructure/metrics"
)

// Config holds the transport settings for one provider API
type Config struct {
	Name          string
	BaseURL       string
	APIKey        string
	Timeout       time.Duration
	MaxRetries    int
	RetryBackoff  time.Duration
	RatePerSecond float64
	Burst         int
}

// StatusError is returned when the provider answers with a non-2xx status
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// Retryable reports whether the status is worth another attempt
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode == http.StatusRequestTimeout
}

// Client performs rate-limited, retried JSON GETs against a provider API
type Client struct {
	name        string
	http        *resty.Client
	rateLimiter *rate.Limiter
	maxRetries  int
	backoff     time.Duration
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// NewClient creates a provider transport. Zero values in cfg fall back to
// a 10s timeout, 2 retries from 200ms, and 5 requests/sec with a burst of 10.
func NewClient(cfg Config, logger *zap.Logger, m *metrics.Metrics) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 200 * time.Millisecond
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "Cabfare/1.0")
	if cfg.APIKey != "" {
		httpClient.SetAuthToken(cfg.APIKey)
	}

	return &Client{
		name:        cfg.Name,
		http:        httpClient,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		maxRetries:  cfg.MaxRetries,
		backoff:     cfg.RetryBackoff,
		logger:      logger.With(zap.String("provider", cfg.Name)),
		metrics:     m,
	}
}

// SetDebug enables or disables resty request/response dumps
func (c *Client) SetDebug(debug bool) {
	c.http.SetDebug(debug)
}

// Get fetches endpoint with the given query and decodes the JSON body into
// result. A 2xx body that is valid JSON but does not fit result yields an
// error wrapping domain.ErrMalformedPayload.
func (c *Client) Get(ctx context.Context, endpoint string, query map[string]string, result any) error {
	start := time.Now()
	defer func() {
		c.metrics.ObserveRequest(c.name, endpoint, time.Since(start))
	}()

	backoff := retry.WithMaxRetries(uint64(c.maxRetries), retry.NewExponential(c.backoff)) // #nosec G115 -- clamped in NewClient

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(query).
			Get(endpoint)
		if err != nil {
			c.logger.Debug("request error", zap.String("endpoint", endpoint), zap.Int("attempt", attempt), zap.Error(err))
			if ctx.Err() != nil {
				return err
			}
			return retry.RetryableError(err)
		}

		if resp.IsError() {
			statusErr := &StatusError{Provider: c.name, StatusCode: resp.StatusCode(), Body: truncate(resp.String(), 256)}
			c.logger.Debug("unexpected status", zap.String("endpoint", endpoint), zap.Int("attempt", attempt), zap.Int("status", resp.StatusCode()))
			if statusErr.Retryable() {
				return retry.RetryableError(statusErr)
			}
			return statusErr
		}

		body := resp.Body()
		if err := json.Unmarshal(body, result); err != nil {
			if json.Valid(body) {
				return fmt.Errorf("%w: decode %s response: %v", domain.ErrMalformedPayload, c.name, err)
			}
			return fmt.Errorf("decode %s response: %w", c.name, err)
		}
		return nil
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
