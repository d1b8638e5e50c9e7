package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/cabfare/backend/internal/domain"
)

// OpenAIGenerator generates chat completions through langchaingo's OpenAI model
type OpenAIGenerator struct {
	model   llms.Model
	timeout time.Duration
}

// NewOpenAIGenerator creates an OpenAI-backed generator
func NewOpenAIGenerator(cfg Config) (*OpenAIGenerator, error) {
	opts := []openai.Option{
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("openai: create client: %w", err)
	}
	return newOpenAIGenerator(model, cfg.Timeout), nil
}

func newOpenAIGenerator(model llms.Model, timeout time.Duration) *OpenAIGenerator {
	return &OpenAIGenerator{model: model, timeout: timeout}
}

// Generate sends the system prompt and messages as one chat completion
func (g *OpenAIGenerator) Generate(
	ctx context.Context,
	systemPrompt string,
	messages []domain.Message,
	opts domain.GenerateOptions,
) (string, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	content := make([]llms.MessageContent, 0, len(messages)+1)
	if systemPrompt != "" {
		content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))
	}
	for _, msg := range messages {
		content = append(content, llms.TextParts(chatMessageType(msg.Role), msg.Content))
	}

	callOpts := []llms.CallOption{llms.WithTemperature(opts.Temperature)}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}

	resp, err := g.model.GenerateContent(ctx, content, callOpts...)
	if err != nil {
		return "", fmt.Errorf("openai: generate content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", fmt.Errorf("openai: %w: empty choices", domain.ErrGenerationFailed)
	}
	return resp.Choices[0].Content, nil
}

// Close is a no-op; the OpenAI client holds no resources
func (g *OpenAIGenerator) Close() error {
	return nil
}

func chatMessageType(role string) llms.ChatMessageType {
	if role == domain.RoleAssistant {
		return llms.ChatMessageTypeAI
	}
	return llms.ChatMessageTypeHuman
}
