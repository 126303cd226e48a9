package extract

import (
	"context"
	"errors"
	"net/http"

	"github.com/KI-IAN/llm-web-scrapper/internal/model"
	"github.com/KI-IAN/llm-web-scrapper/pkg/anthropic"
	"github.com/KI-IAN/llm-web-scrapper/pkg/gemini"
	"github.com/KI-IAN/llm-web-scrapper/pkg/nvidia"
)

const defaultTemperature = 0.2

// NvidiaCompleter adapts the NVIDIA NIM chat client.
type NvidiaCompleter struct {
	client    nvidia.Client
	maxTokens int
}

// NewNvidiaCompleter creates a Completer over an NVIDIA NIM client.
func NewNvidiaCompleter(client nvidia.Client, maxTokens int) *NvidiaCompleter {
	return &NvidiaCompleter{client: client, maxTokens: maxTokens}
}

// Complete implements Completer.
func (c *NvidiaCompleter) Complete(ctx context.Context, modelName, prompt string) (string, model.TokenUsage, error) {
	temp := defaultTemperature
	req := nvidia.ChatCompletionRequest{
		Model:       modelName,
		Messages:    []nvidia.Message{{Role: "user", Content: prompt}},
		Temperature: &temp,
	}
	if c.maxTokens > 0 {
		req.MaxTokens = &c.maxTokens
	}

	resp, err := c.client.ChatCompletion(ctx, req)
	if err != nil {
		var apiErr *nvidia.APIError
		if errors.As(err, &apiErr) {
			if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
				return "", model.TokenUsage{}, model.WrapError(model.EUNAVAILABLE, err,
					"nvidia rejected the configured API key")
			}
			return "", model.TokenUsage{}, model.WrapError(model.EUPSTREAM, err,
				"nvidia returned HTTP %d", apiErr.StatusCode)
		}
		return "", model.TokenUsage{}, model.WrapError(model.ENETWORK, err, "could not reach nvidia")
	}

	if len(resp.Choices) == 0 {
		return "", model.TokenUsage{}, model.Errorf(model.EUPSTREAM, "nvidia returned no completion choices")
	}

	usage := model.TokenUsage{
		InputTokens:  int64(resp.Usage.PromptTokens),
		OutputTokens: int64(resp.Usage.CompletionTokens),
	}
	return resp.Choices[0].Message.Content, usage, nil
}

// GeminiCompleter adapts the Google Gemini client.
type GeminiCompleter struct {
	client gemini.Client
}

// NewGeminiCompleter creates a Completer over a Gemini client.
func NewGeminiCompleter(client gemini.Client) *GeminiCompleter {
	return &GeminiCompleter{client: client}
}

// Complete implements Completer.
func (c *GeminiCompleter) Complete(ctx context.Context, modelName, prompt string) (string, model.TokenUsage, error) {
	text, usage, err := c.client.GenerateText(ctx, modelName, prompt)
	if err != nil {
		return "", model.TokenUsage{}, model.WrapError(model.EUPSTREAM, err,
			"gemini request failed for model %q", modelName)
	}
	return text, model.TokenUsage{
		InputTokens:  usage.PromptTokens,
		OutputTokens: usage.OutputTokens,
	}, nil
}

// AnthropicCompleter adapts the Anthropic messages client.
type AnthropicCompleter struct {
	client    anthropic.Client
	maxTokens int64
}

// NewAnthropicCompleter creates a Completer over an Anthropic client.
func NewAnthropicCompleter(client anthropic.Client, maxTokens int) *AnthropicCompleter {
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &AnthropicCompleter{client: client, maxTokens: int64(maxTokens)}
}

// Complete implements Completer.
func (c *AnthropicCompleter) Complete(ctx context.Context, modelName, prompt string) (string, model.TokenUsage, error) {
	temp := defaultTemperature
	resp, err := c.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       modelName,
		MaxTokens:   c.maxTokens,
		Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
		Temperature: &temp,
	})
	if err != nil {
		return "", model.TokenUsage{}, model.WrapError(model.EUPSTREAM, err,
			"anthropic request failed for model %q", modelName)
	}
	return resp.Text(), model.TokenUsage{
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
	}, nil
}
