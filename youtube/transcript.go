package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"tubenotes/config"
	"tubenotes/types"
)

// TranscriptOptions configures a TranscriptClient. Zero values fall back to defaults.
type TranscriptOptions struct {
	HTTPClient        *http.Client
	BaseURL           string
	Languages         []string
	RequestsPerSecond float64
	Logger            *slog.Logger
}

// TranscriptClient fetches caption tracks for public videos
type TranscriptClient struct {
	http      *http.Client
	baseURL   string
	languages []string
	limiter   *rate.Limiter
	logger    *slog.Logger
}

func NewTranscriptClient(opts TranscriptOptions) *TranscriptClient {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	langs := opts.Languages
	if len(langs) == 0 {
		langs = []string{config.DefaultTranscriptLanguage}
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = config.DefaultYouTubeRPS
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &TranscriptClient{
		http:      client,
		baseURL:   baseURL,
		languages: langs,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		logger:    logger.With("component", "transcript"),
	}
}

// Fetch returns the ordered caption segments of a video. The InnerTube player
// endpoint is asked first; the watch page is scraped when that fails.
func (c *TranscriptClient) Fetch(ctx context.Context, id types.VideoID) (types.Transcript, error) {
	tracks, playerErr := c.tracksFromPlayer(ctx, id)
	if playerErr != nil {
		c.logger.Warn("player lookup failed, scraping watch page",
			slog.String("video_id", string(id)), slog.Any("err", playerErr))

		var pageErr error
		tracks, pageErr = c.tracksFromWatchPage(ctx, id)
		if pageErr != nil {
			return nil, fmt.Errorf("player: %w; watch page: %w", playerErr, pageErr)
		}
	}

	track, err := pickTrack(tracks, c.languages)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, strings.Replace(track.BaseURL, "&fmt=srv3", "", 1), "")
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	transcript, err := parseTimedText(body)
	if err != nil {
		return nil, err
	}
	if len(transcript) == 0 {
		return nil, fmt.Errorf("%w: caption track is empty", ErrNoTranscript)
	}

	c.logger.Info("transcript fetched",
		slog.String("video_id", string(id)),
		slog.String("language", track.LanguageCode),
		slog.Int("segments", len(transcript)))
	return transcript, nil
}

func (c *TranscriptClient) tracksFromPlayer(ctx context.Context, id types.VideoID) ([]captionTrack, error) {
	payload, err := json.Marshal(newPlayerRequest(id))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+playerPath+"?prettyPrint=false", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", androidUserAgent)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", androidVersion)

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}
	resp, err := decodePlayerResponse(body)
	if err != nil {
		return nil, err
	}
	return resp.captionTracks()
}

func (c *TranscriptClient) tracksFromWatchPage(ctx context.Context, id types.VideoID) ([]captionTrack, error) {
	body, err := c.get(ctx, c.baseURL+"/watch?v="+string(id), browserUserAgent)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}
	if doc.Find("div.g-recaptcha").Length() > 0 {
		return nil, ErrTooManyRequests
	}

	var raw []byte
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, playerResponseMarker)
		if idx < 0 {
			return true
		}
		raw = extractJSONObject([]byte(text[idx+len(playerResponseMarker):]))
		return raw == nil
	})
	if raw == nil {
		return nil, fmt.Errorf("%w: no player response in watch page", ErrVideoUnavailable)
	}

	resp, err := decodePlayerResponse(raw)
	if err != nil {
		return nil, err
	}
	return resp.captionTracks()
}

func (c *TranscriptClient) get(ctx context.Context, url, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	return c.do(req)
}

// do paces the request through the limiter and reads a successful body
func (c *TranscriptClient) do(req *http.Request) ([]byte, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrTooManyRequests
	case resp.StatusCode != http.StatusOK:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	return io.ReadAll(io.LimitReader(resp.Body, 8*1024*1024))
}
