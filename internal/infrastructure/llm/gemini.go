package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/cabfare/backend/internal/domain"
)

// GeminiGenerator generates replies with Google's Gemini models
type GeminiGenerator struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
}

// NewGeminiGenerator initializes a Gemini client
func NewGeminiGenerator(ctx context.Context, cfg Config) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiGenerator{client: client, modelName: cfg.Model, timeout: cfg.Timeout}, nil
}

// Generate replays all but the last message as chat history and sends the last one
func (g *GeminiGenerator) Generate(
	ctx context.Context,
	systemPrompt string,
	messages []domain.Message,
	opts domain.GenerateOptions,
) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("gemini: %w: no messages", domain.ErrInvalidRequest)
	}

	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	// Model settings are per call.
	model := g.client.GenerativeModel(g.modelName)
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	}
	model.SetTemperature(float32(opts.Temperature))
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens)) // #nosec G115 -- token limits are small
	}

	chat := model.StartChat()
	last := messages[len(messages)-1]
	for _, msg := range messages[:len(messages)-1] {
		chat.History = append(chat.History, &genai.Content{
			Role:  geminiRole(msg.Role),
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := chat.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: %w: empty candidates", domain.ErrGenerationFailed)
	}

	var textParts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		txt, ok := part.(genai.Text)
		if !ok || strings.TrimSpace(string(txt)) == "" {
			continue
		}
		textParts = append(textParts, string(txt))
	}
	if len(textParts) == 0 {
		return "", fmt.Errorf("gemini: %w: empty text parts", domain.ErrGenerationFailed)
	}

	return strings.Join(textParts, "\n"), nil
}

// Close releases the Gemini client
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

func geminiRole(role string) string {
	if role == domain.RoleAssistant {
		return "model"
	}
	return "user"
}
