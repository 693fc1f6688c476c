package youtube

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"tubenotes/types"
)

// InnerTube wire types, caption track selection and timedtext parsing.

const (
	defaultBaseURL   = "https://www.youtube.com"
	playerPath       = "/youtubei/v1/player"
	androidVersion   = "20.10.38"
	androidUserAgent = "com.google.android.youtube/" + androidVersion + " (Linux; U; Android 11) gzip"
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	playerResponseMarker = "ytInitialPlayerResponse = "
)

var (
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrNoTranscript        = errors.New("no transcript found for the requested languages")
	ErrVideoUnavailable    = errors.New("video is unavailable")
	ErrTooManyRequests     = errors.New("youtube is rate limiting requests from this address")
)

type playerRequest struct {
	VideoID        string        `json:"videoId"`
	Context        playerContext `json:"context"`
	RacyCheckOk    bool          `json:"racyCheckOk"`
	ContentCheckOk bool          `json:"contentCheckOk"`
}

type playerContext struct {
	Client playerClient `json:"client"`
}

type playerClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

type playerResponse struct {
	Captions *struct {
		TracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

func newPlayerRequest(id types.VideoID) playerRequest {
	return playerRequest{
		VideoID: string(id),
		Context: playerContext{
			Client: playerClient{
				ClientName:        "ANDROID",
				ClientVersion:     androidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	}
}

// captionTracks classifies a player response into usable tracks or a sentinel error
func (p playerResponse) captionTracks() ([]captionTrack, error) {
	if ps := p.PlayabilityStatus; ps != nil && ps.Status != "" && ps.Status != "OK" {
		if ps.Reason != "" {
			return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, ps.Reason)
		}
		return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, strings.ToLower(ps.Status))
	}
	if p.Captions == nil || len(p.Captions.TracklistRenderer.CaptionTracks) == 0 {
		return nil, ErrTranscriptsDisabled
	}
	return p.Captions.TracklistRenderer.CaptionTracks, nil
}

// needsPoToken reports whether a track URL can only be fetched by a browser
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickTrack prefers a manual track in the first matching language, then an
// auto-generated one. Languages are tried in preference order.
func pickTrack(tracks []captionTrack, langs []string) (captionTrack, error) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}

	for _, lang := range langs {
		for _, t := range usable {
			if strings.EqualFold(t.LanguageCode, lang) && t.Kind != "asr" {
				return t, nil
			}
		}
	}
	for _, lang := range langs {
		for _, t := range usable {
			if strings.EqualFold(t.LanguageCode, lang) {
				return t, nil
			}
		}
	}

	available := make([]string, 0, len(tracks))
	for _, t := range tracks {
		available = append(available, t.LanguageCode)
	}
	return captionTrack{}, fmt.Errorf("%w: requested %v, available %v", ErrNoTranscript, langs, available)
}

type timedText struct {
	Lines []timedLine `xml:"text"`
}

type timedLine struct {
	Start    string `xml:"start,attr"`
	Duration string `xml:"dur,attr"`
	Text     string `xml:",chardata"`
}

var markupRE = regexp.MustCompile(`<[^>]*>`)

// parseTimedText converts a timedtext XML document into ordered segments
func parseTimedText(body []byte) (types.Transcript, error) {
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	transcript := make(types.Transcript, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := strings.TrimSpace(markupRE.ReplaceAllString(html.UnescapeString(line.Text), ""))
		if text == "" {
			continue
		}
		start, _ := strconv.ParseFloat(line.Start, 64)
		dur, _ := strconv.ParseFloat(line.Duration, 64)
		transcript = append(transcript, types.Segment{Text: text, Start: start, Duration: dur})
	}
	return transcript, nil
}

// extractJSONObject returns the balanced JSON object at the start of data
func extractJSONObject(data []byte) []byte {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 || data[0] != '{' {
		return nil
	}

	depth := 0
	inString := false
	escaped := false
	for i, b := range data {
		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}
		switch b {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return data[:i+1]
			}
		}
	}
	return nil
}

func decodePlayerResponse(data []byte) (playerResponse, error) {
	var resp playerResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return playerResponse{}, fmt.Errorf("decode player response: %w", err)
	}
	return resp, nil
}
