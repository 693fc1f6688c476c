package summarizer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"tubenotes/config"
)

// Cohere calls the Cohere Chat API
type Cohere struct {
	client *cohereclient.Client
	model  string
	keySet bool
}

// NewCohere builds a chat client. A nil httpClient uses an HTTP/1.1 client with a 2 minute timeout.
func NewCohere(apiKey, model string, httpClient *http.Client) *Cohere {
	if model == "" {
		model = config.DefaultCohereModel
	}
	if httpClient == nil {
		// Force HTTP/1.1, the Cohere edge resets long HTTP/2 streams
		httpClient = &http.Client{
			Timeout: 2 * time.Minute,
			Transport: &http.Transport{
				TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
				ForceAttemptHTTP2: false,
			},
		}
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &Cohere{client: client, model: model, keySet: apiKey != ""}
}

func (c *Cohere) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.keySet {
		return "", errors.New("COHERE_API_KEY is not configured")
	}

	model := c.model
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message: prompt,
		Model:   &model,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || resp.Text == "" {
		return "", ErrEmptyResponse
	}
	return resp.Text, nil
}
