package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/pep299/video-summarizer/internal/model"
)

// oembedResponse holds the fields we read from the oEmbed payload
type oembedResponse struct {
	Title      *string `json:"title"`
	AuthorName *string `json:"author_name"`
}

// FetchMetadata looks up title and author of a video via the public oEmbed endpoint.
// Absent fields fall back to placeholders; they never fail the call.
func (c *Client) FetchMetadata(ctx context.Context, videoID string) (*model.VideoInfo, error) {
	// The watch URL is embedded unencoded, as YouTube's own share links do.
	endpoint := fmt.Sprintf("%s/oembed?url=%s&format=json", c.baseURL, "http://www.youtube.com/watch?v="+url.QueryEscape(videoID))

	body, err := c.get(ctx, endpoint, "application/json", 1<<20)
	if err != nil {
		return nil, fmt.Errorf("fetching oembed: %w", err)
	}

	var payload oembedResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding oembed response: %w", err)
	}

	info := &model.VideoInfo{
		Title:  model.UnknownTitle,
		Author: model.UnknownAuthor,
		URL:    model.WatchURL(videoID),
	}
	if payload.Title != nil {
		info.Title = *payload.Title
	}
	if payload.AuthorName != nil {
		info.Author = *payload.AuthorName
	}
	return info, nil
}
