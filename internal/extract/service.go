// Package extract asks an LLM provider to answer a query using scraped page
// content as the only context, and shapes the answer to a requested format.
package extract

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KI-IAN/llm-web-scrapper/internal/config"
	"github.com/KI-IAN/llm-web-scrapper/internal/model"
	"github.com/KI-IAN/llm-web-scrapper/internal/telemetry"
)

// Completer performs a single-turn completion against one provider.
type Completer interface {
	Complete(ctx context.Context, modelName, prompt string) (string, model.TokenUsage, error)
}

// Service dispatches extraction requests to the registered providers.
// A provider whose credential is missing is never registered; selecting it
// yields a configuration error.
type Service struct {
	completers map[model.Provider]Completer
	choices    []model.ModelChoice
	timeout    time.Duration
	tracer     *telemetry.Tracer
}

// NewService creates a Service with no providers registered.
func NewService(cfg config.ExtractConfig, tracer *telemetry.Tracer) *Service {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Service{
		completers: make(map[model.Provider]Completer),
		choices:    model.DefaultModelChoices(),
		timeout:    timeout,
		tracer:     tracer,
	}
}

// Register adds a provider.
func (s *Service) Register(p model.Provider, c Completer) {
	s.completers[p] = c
}

// Choices returns the model/provider combinations whose provider is
// registered, in presentation order.
func (s *Service) Choices() []model.ModelChoice {
	var out []model.ModelChoice
	for _, c := range s.choices {
		if _, ok := s.completers[c.Provider]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Extract runs one extraction. A single provider call, bounded by the
// configured timeout; no retry.
func (s *Service) Extract(ctx context.Context, req model.ExtractionRequest) (*model.ExtractionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tr := s.tracer.Start("llm-extraction", map[string]any{
		"query":    req.Query,
		"model":    req.Model,
		"provider": string(req.Provider),
		"format":   string(req.Format),
	})

	result, err := s.extract(ctx, req)
	usage := map[string]any{}
	if result != nil {
		usage["input"] = result.Usage.InputTokens
		usage["output"] = result.Usage.OutputTokens
	}
	if err != nil {
		tr.EndGeneration(req.Model, nil, usage, err)
		zap.L().Warn("extraction failed",
			zap.String("model", req.Model),
			zap.String("provider", string(req.Provider)),
			zap.String("kind", string(model.ErrorKind(err))),
			zap.Error(err),
		)
		return nil, err
	}

	tr.EndGeneration(req.Model, map[string]any{"answer_chars": len(result.Answer)}, usage, nil)
	zap.L().Info("extraction complete",
		zap.String("model", req.Model),
		zap.String("provider", string(req.Provider)),
		zap.Int64("input_tokens", result.Usage.InputTokens),
		zap.Int64("output_tokens", result.Usage.OutputTokens),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

func (s *Service) extract(ctx context.Context, req model.ExtractionRequest) (*model.ExtractionResult, error) {
	completer, ok := s.completers[req.Provider]
	if !ok {
		return nil, model.Errorf(model.EUNAVAILABLE,
			"LLM provider %q is not configured: set its API key", string(req.Provider))
	}

	if !s.supported(req.Model, req.Provider) {
		return nil, model.Errorf(model.EUNAVAILABLE,
			"model %q is not supported by provider %q", req.Model, string(req.Provider))
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := BuildPrompt(req.Query, req.Content, req.Format)

	start := time.Now()
	answer, usage, err := completer.Complete(ctx, req.Model, prompt)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, model.WrapError(model.ENETWORK, err,
				"extraction timed out after %s", s.timeout)
		}
		return nil, err
	}

	if strings.TrimSpace(answer) == "" {
		return nil, model.Errorf(model.EUPSTREAM,
			"no information could be extracted from the scraped content: check your query or try a different model or provider")
	}

	answer, err = Normalize(answer, req.Format)
	if err != nil {
		return nil, err
	}

	return &model.ExtractionResult{
		Answer:   answer,
		Provider: req.Provider,
		Model:    req.Model,
		Usage:    usage,
		Elapsed:  time.Since(start),
	}, nil
}

func (s *Service) supported(modelName string, provider model.Provider) bool {
	for _, c := range s.choices {
		if c.Model == modelName && c.Provider == provider {
			return true
		}
	}
	return false
}
