package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/cabfare/backend/internal/domain"
)

// Supported providers
const (
	ProviderNone   = "none"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Default models per provider
const (
	DefaultOpenAIModel = "gpt-3.5-turbo"
	DefaultGeminiModel = "gemini-2.0-flash"
)

// Config selects and configures the language model backend
type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// Generator is a text generator that may hold client resources
type Generator interface {
	domain.TextGenerator
	Close() error
}

// NewGenerator builds the generator for cfg.Provider. An empty provider
// or "none" yields a generator that always fails with ErrGeneratorDisabled.
func NewGenerator(ctx context.Context, cfg Config) (Generator, error) {
	switch cfg.Provider {
	case "", ProviderNone:
		return DisabledGenerator{}, nil
	case ProviderOpenAI:
		if cfg.Model == "" {
			cfg.Model = DefaultOpenAIModel
		}
		gen, err := NewOpenAIGenerator(cfg)
		if err != nil {
			return nil, err
		}
		return gen, nil
	case ProviderGemini:
		if cfg.Model == "" {
			cfg.Model = DefaultGeminiModel
		}
		gen, err := NewGeminiGenerator(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return gen, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// DisabledGenerator stands in when no language model is configured
type DisabledGenerator struct{}

// Generate always fails
func (DisabledGenerator) Generate(context.Context, string, []domain.Message, domain.GenerateOptions) (string, error) {
	return "", domain.ErrGeneratorDisabled
}

// Close is a no-op
func (DisabledGenerator) Close() error {
	return nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
