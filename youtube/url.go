package youtube

import (
	"strings"

	"tubenotes/types"
)

const (
	watchMarker = "youtube.com/watch?v="
	shortMarker = "youtu.be/"
)

// ExtractVideoID returns the identifier segment of a standard watch URL or a
// youtu.be short link. The identifier shape is not validated.
func ExtractVideoID(rawURL string) (types.VideoID, bool) {
	var id string
	switch {
	case strings.Contains(rawURL, watchMarker):
		_, rest, _ := strings.Cut(rawURL, "v=")
		id, _, _ = strings.Cut(rest, "&")
	case strings.Contains(rawURL, shortMarker):
		_, rest, _ := strings.Cut(rawURL, shortMarker)
		id, _, _ = strings.Cut(rest, "?")
	default:
		return "", false
	}
	if id == "" {
		return "", false
	}
	return types.VideoID(id), true
}

// ThumbnailURL is the static preview image for a video
func ThumbnailURL(id types.VideoID) string {
	return "http://img.youtube.com/vi/" + string(id) + "/0.jpg"
}
