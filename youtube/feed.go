package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"tubenotes/types"
)

const defaultFeedURL = "https://www.youtube.com/feeds/videos.xml"

// FeedClient lists recent uploads from a channel's public RSS feed
type FeedClient struct {
	parser  *gofeed.Parser
	feedURL string
}

// NewFeedClient builds a client. An empty feedURL uses the public YouTube endpoint.
func NewFeedClient(httpClient *http.Client, feedURL string) *FeedClient {
	parser := gofeed.NewParser()
	if httpClient != nil {
		parser.Client = httpClient
	}
	if feedURL == "" {
		feedURL = defaultFeedURL
	}
	return &FeedClient{parser: parser, feedURL: feedURL}
}

// Latest retrieves up to maxCount uploads, newest first as published by the feed
func (c *FeedClient) Latest(ctx context.Context, channelID string, maxCount int) ([]types.FeedEntry, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return nil, errors.New("channel id is required")
	}

	feed, err := c.parser.ParseURLWithContext(c.feedURL+"?channel_id="+channelID, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	count := len(feed.Items)
	if maxCount > 0 && maxCount < count {
		count = maxCount
	}
	entries := make([]types.FeedEntry, 0, count)

	for _, item := range feed.Items[:count] {
		id := feedVideoID(item)
		if id == "" {
			continue
		}

		published := item.Published
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.Format(time.RFC3339)
		}

		entries = append(entries, types.FeedEntry{
			ID:        id,
			Title:     item.Title,
			URL:       item.Link,
			Published: published,
		})
	}

	return entries, nil
}

// feedVideoID prefers the yt:videoId extension, otherwise parses the link
func feedVideoID(item *gofeed.Item) types.VideoID {
	if ext, ok := item.Extensions["yt"]["videoId"]; ok && len(ext) > 0 && ext[0].Value != "" {
		return types.VideoID(ext[0].Value)
	}
	id, _ := ExtractVideoID(item.Link)
	return id
}
