package youtube

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"tubenotes/types"
)

// MetadataClient looks up display metadata through the YouTube Data API
type MetadataClient struct {
	service *yt.Service
}

func NewMetadataClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*MetadataClient, error) {
	if apiKey == "" {
		return nil, errors.New("youtube data api key is not configured")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}
	return &MetadataClient{service: service}, nil
}

// Lookup returns title and channel for id. The thumbnail is always the static preview URL.
func (c *MetadataClient) Lookup(ctx context.Context, id types.VideoID) (types.VideoInfo, error) {
	info := types.VideoInfo{ID: id, ThumbnailURL: ThumbnailURL(id)}

	resp, err := c.service.Videos.List([]string{"snippet"}).Id(string(id)).Context(ctx).Do()
	if err != nil {
		return info, fmt.Errorf("failed to list video %s: %w", id, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return info, fmt.Errorf("%w: %s", ErrVideoUnavailable, id)
	}

	snippet := resp.Items[0].Snippet
	info.Title = snippet.Title
	info.Channel = snippet.ChannelTitle
	return info, nil
}
