package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"tubenotes/config"
)

// Gemini calls the Gemini API generateContent method
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds a client for model. An empty apiKey yields a client whose
// calls fail, so a missing secret surfaces as a run error rather than at startup.
// baseURL overrides the API host and is empty in production.
func NewGemini(ctx context.Context, apiKey, model, baseURL string) (*Gemini, error) {
	if model == "" {
		model = config.DefaultGeminiModel
	}
	g := &Gemini{model: strings.TrimPrefix(model, "models/")}
	if apiKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create Gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", errors.New("GOOGLE_API_KEY is not configured")
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return candidateText(resp)
}

// candidateText concatenates the text parts of the first candidate
func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrEmptyResponse
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", fmt.Errorf("prompt blocked: %s", fb.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		if reason := resp.Candidates[0].FinishReason; reason != "" {
			return "", fmt.Errorf("%w (finish reason %s)", ErrEmptyResponse, reason)
		}
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
