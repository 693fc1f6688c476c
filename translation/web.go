package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tubenotes/config"
)

// WebClient talks to the keyless Google Translate web endpoint. The source
// language is always auto-detected.
type WebClient struct {
	http     *http.Client
	endpoint string
	logger   *slog.Logger
}

func NewWebClient(httpClient *http.Client, endpoint string, logger *slog.Logger) *WebClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if endpoint == "" {
		endpoint = config.DefaultTranslateEndpoint
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WebClient{http: httpClient, endpoint: endpoint, logger: logger.With("component", "translator")}
}

func (c *WebClient) Translate(ctx context.Context, text, code string) (string, error) {
	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", "auto")
	query.Set("tl", code)
	query.Set("dt", "t")

	form := url.Values{}
	form.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?"+query.Encode(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("translate HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return "", fmt.Errorf("read translate response: %w", err)
	}
	out, err := parseWebResponse(body)
	if err != nil {
		return "", err
	}

	c.logger.Debug("translated", slog.String("target", code), slog.Int("chars", len(out)))
	return out, nil
}

// parseWebResponse joins the translated sentence chunks of the nested array
// response: [[["<translated>","<source>",...],...],...]
func parseWebResponse(body []byte) (string, error) {
	var root []json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	if len(root) == 0 {
		return "", ErrEmptyTranslation
	}

	var sentences [][]any
	if err := json.Unmarshal(root[0], &sentences); err != nil {
		return "", fmt.Errorf("decode translated sentences: %w", err)
	}

	var sb strings.Builder
	for _, sentence := range sentences {
		if len(sentence) == 0 {
			continue
		}
		if chunk, ok := sentence[0].(string); ok {
			sb.WriteString(chunk)
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyTranslation
	}
	return sb.String(), nil
}
