package summarizer

import (
	"context"
	"errors"
	"fmt"

	"tubenotes/config"
)

// Generator turns a prompt into generated text
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyResponse is returned when the service answers without any text
var ErrEmptyResponse = errors.New("generation service returned no text")

// Summarize sends prompt followed by the transcript as one request and returns the response verbatim
func Summarize(ctx context.Context, g Generator, transcript, prompt string) (string, error) {
	return g.Generate(ctx, prompt+transcript)
}

// New selects the generation backend named in cfg
func New(ctx context.Context, cfg config.GeneratorConfig) (Generator, error) {
	switch cfg.Backend {
	case config.GeneratorGemini, "":
		return NewGemini(ctx, cfg.GoogleAPIKey, cfg.GeminiModel, "")
	case config.GeneratorCohere:
		return NewCohere(cfg.CohereAPIKey, cfg.CohereModel, nil), nil
	default:
		return nil, fmt.Errorf("unknown generator backend %q", cfg.Backend)
	}
}
