// Package gemini wraps the Google GenAI SDK for text generation.
package gemini

import (
	"context"

	"github.com/rotisserie/eris"
	"google.golang.org/genai"
)

// Usage reports token consumption for a single generation.
type Usage struct {
	PromptTokens int64
	OutputTokens int64
}

// Client generates text with a Gemini model.
type Client interface {
	GenerateText(ctx context.Context, model, prompt string) (string, Usage, error)
}

// client implements Client over the official genai SDK.
type client struct {
	genai *genai.Client
}

// NewClient creates a Gemini client for the public Gemini API.
func NewClient(ctx context.Context, apiKey string) (Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}
	return &client{genai: c}, nil
}

// GenerateText sends a single-turn prompt and returns the model's text.
func (c *client) GenerateText(ctx context.Context, model, prompt string) (string, Usage, error) {
	result, err := c.genai.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", Usage{}, eris.Wrap(err, "gemini: generate content")
	}
	if result == nil {
		return "", Usage{}, eris.New("gemini: nil result")
	}

	var usage Usage
	if meta := result.UsageMetadata; meta != nil {
		usage.PromptTokens = int64(meta.PromptTokenCount)
		usage.OutputTokens = int64(meta.CandidatesTokenCount)
	}

	return result.Text(), usage, nil
}

// BuildConfig returns the GenerateContentConfig used for extraction calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		Temperature: &temp,
	}
}
