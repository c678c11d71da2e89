// Package ai wraps the LLM used for caption suggestions.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/ports/providers"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 400
)

// CaptionGenerator implements providers.CaptionGenerator on any langchaingo model.
type CaptionGenerator struct {
	model       llms.Model
	temperature float64
	maxTokens   int
}

var _ providers.CaptionGenerator = (*CaptionGenerator)(nil)

// NewCaptionGenerator wraps an existing model.
func NewCaptionGenerator(model llms.Model) *CaptionGenerator {
	return &CaptionGenerator{model: model, temperature: defaultTemperature, maxTokens: defaultMaxTokens}
}

// NewOpenAICaptionGenerator builds an OpenAI chat model. baseURL may point at any
// OpenAI compatible endpoint; empty keeps the library default.
func NewOpenAICaptionGenerator(apiKey, model, baseURL string) (*CaptionGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	opts := []openai.Option{openai.WithToken(apiKey)}
	if model != "" {
		opts = append(opts, openai.WithModel(model))
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return NewCaptionGenerator(llm), nil
}

func (g *CaptionGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt,
		llms.WithTemperature(g.temperature),
		llms.WithMaxTokens(g.maxTokens),
	)
	if err != nil {
		return "", &apperrors.UpstreamError{Provider: "openai", Message: "Failed to generate caption", Err: err}
	}
	caption := cleanCaption(out)
	if caption == "" {
		return "", &apperrors.UpstreamError{Provider: "openai", Message: "Caption model returned no text"}
	}
	return caption, nil
}

// cleanCaption trims whitespace and a single pair of wrapping quotes.
func cleanCaption(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
