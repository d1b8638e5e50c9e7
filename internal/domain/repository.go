package domain

import (
	"context"
	"time"
)

// UberClient defines the interface for interacting with the Uber Rides API
type UberClient interface {
	GetPriceEstimate(ctx context.Context, trip Trip) (*UberPriceResponse, error)
	GetTimeEstimate(ctx context.Context, lat, lng float64) (*UberTimeResponse, error)
}

// LyftClient defines the interface for interacting with the Lyft API
type LyftClient interface {
	GetCostEstimate(ctx context.Context, trip Trip) (*LyftCostResponse, error)
	GetETA(ctx context.Context, lat, lng float64) (*LyftETAResponse, error)
}

// ComparisonStore keeps recent comparisons for a short time so a dashboard
// session can chat about them
type ComparisonStore interface {
	Save(ctx context.Context, result *ComparisonResult, ttl time.Duration) error
	Get(ctx context.Context, id string) (*ComparisonResult, error)
	Delete(ctx context.Context, id string) error
}

// GenerateOptions tunes a single text generation call
type GenerateOptions struct {
	// Temperature is always sent, zero included
	Temperature float64
	// MaxTokens <= 0 leaves the provider default
	MaxTokens int
}

// TextGenerator is a stateless chat-completion backend
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt string, messages []Message, opts GenerateOptions) (string, error)
}
