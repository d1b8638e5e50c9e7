package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cabfare/backend/internal/domain"
)

const systemPrompt = `You are Cabfare AI, a helpful assistant that compares ride fares
between Uber and Lyft. You help users find the best ride options based on their needs and preferences.

You can:
- Compare prices between Uber and Lyft
- Recommend the best value option
- Suggest fastest rides
- Find luxury options
- Explain surge pricing
- Provide travel tips

Be friendly, concise, and helpful. Always present fare information clearly with specific prices.
When presenting comparisons, use emojis and formatting to make it easy to read.`

const summaryPrompt = `Based on this fare data, provide a brief, friendly summary
comparing Uber and Lyft options. Keep it under 100 words.

%s`

// ChatServiceConfig holds generation settings for the chat service
type ChatServiceConfig struct {
	// Temperature is sent on every call; nil means 0.7
	Temperature      *float64
	MaxTokens        int
	SummaryMaxTokens int
}

// ChatService answers questions about a comparison through a language model.
// It keeps no conversation state: callers pass the history on every call.
type ChatService struct {
	generator   domain.TextGenerator
	config      ChatServiceConfig
	temperature float64
	logger      *zap.Logger
}

// NewChatService creates a chat service. Unset config values default to
// temperature 0.7, 800 tokens for replies and 200 for summaries.
func NewChatService(generator domain.TextGenerator, config ChatServiceConfig, logger *zap.Logger) *ChatService {
	temperature := 0.7
	if config.Temperature != nil {
		temperature = *config.Temperature
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 800
	}
	if config.SummaryMaxTokens == 0 {
		config.SummaryMaxTokens = 200
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{generator: generator, config: config, temperature: temperature, logger: logger}
}

// Respond answers userText given the prior history. When comparison is not
// nil its fare data is appended to the user's message. Failures come back
// as an apology string, never as an error.
func (s *ChatService) Respond(ctx context.Context, userText string, history []domain.Message, comparison *domain.ComparisonResult) string {
	content := userText
	if comparison != nil {
		content = fmt.Sprintf("%s\n\nFare Data:\n%s", userText, FormatFareContext(comparison))
	}

	messages := make([]domain.Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, domain.Message{Role: domain.RoleUser, Content: content})

	reply, err := s.generator.Generate(ctx, systemPrompt, messages, domain.GenerateOptions{
		Temperature: s.temperature,
		MaxTokens:   s.config.MaxTokens,
	})
	if err != nil {
		s.logger.Warn("chat generation failed", zap.Error(err))
		return fmt.Sprintf("Sorry, I encountered an error: %v", err)
	}
	return reply
}

// Summarize asks the model for a short natural-language summary of a comparison
func (s *ChatService) Summarize(ctx context.Context, comparison *domain.ComparisonResult) string {
	if comparison == nil {
		return fmt.Sprintf("Error generating summary: %v", domain.ErrInvalidRequest)
	}

	prompt := fmt.Sprintf(summaryPrompt, FormatFareContext(comparison))
	summary, err := s.generator.Generate(ctx, systemPrompt, []domain.Message{
		{Role: domain.RoleUser, Content: prompt},
	}, domain.GenerateOptions{
		Temperature: s.temperature,
		MaxTokens:   s.config.SummaryMaxTokens,
	})
	if err != nil {
		s.logger.Warn("summary generation failed", zap.String("comparison_id", comparison.ID), zap.Error(err))
		return fmt.Sprintf("Error generating summary: %v", err)
	}
	return summary
}

// FormatFareContext renders a comparison as plain text for a model prompt
func FormatFareContext(comparison *domain.ComparisonResult) string {
	var b strings.Builder

	writeOptions := func(title string, options []domain.RideOption) {
		b.WriteString(title)
		b.WriteString(":\n")
		for _, opt := range options {
			fmt.Fprintf(&b, "- %s: %s (~%.0f min, %.1f mi)\n",
				opt.RideType, opt.EstimateDisplay, opt.DurationMinutes, opt.DistanceMiles)
		}
	}

	writeOptions("UBER OPTIONS", comparison.Uber)
	b.WriteString("\n")
	writeOptions("LYFT OPTIONS", comparison.Lyft)

	b.WriteString("\nRECOMMENDATIONS:\n")
	recs := comparison.Recommendations
	if bv := recs.BestValue; bv != nil {
		fmt.Fprintf(&b, "💰 Best Value: %s %s - %s\n", bv.Service, bv.RideType, bv.EstimateDisplay)
	}
	if fast := recs.Fastest; fast != nil {
		fmt.Fprintf(&b, "⚡ Fastest: %s %s - %.0f min\n", fast.Service, fast.RideType, fast.DurationMinutes)
	}
	if lux := recs.Luxury; lux != nil {
		fmt.Fprintf(&b, "✨ Luxury: %s %s - %s\n", lux.Service, lux.RideType, lux.EstimateDisplay)
	}

	return b.String()
}
