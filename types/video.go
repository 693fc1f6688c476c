package types

import "strings"

// VideoID is the identifier segment of a supported YouTube URL
type VideoID string

// Segment is one timed caption unit returned by the transcript service.
// Start and Duration are in seconds and are carried for display only.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is an ordered sequence of caption segments
type Transcript []Segment

// Text joins the segment texts with a single space, preserving order
func (t Transcript) Text() string {
	parts := make([]string, len(t))
	for i, seg := range t {
		parts[i] = seg.Text
	}
	return strings.Join(parts, " ")
}

// VideoInfo holds optional display metadata for an extracted video
type VideoInfo struct {
	ID           VideoID `json:"video_id"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Title        string  `json:"title,omitempty"`
	Channel      string  `json:"channel,omitempty"`
}

// FeedEntry is a lightweight card for a channel upload
type FeedEntry struct {
	ID        VideoID `json:"video_id"`
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Published string  `json:"published,omitempty"`
}
