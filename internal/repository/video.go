package repository

import (
	"context"

	"github.com/pep299/video-summarizer/internal/model"
	"github.com/pep299/video-summarizer/internal/youtube"
)

type VideoRepository interface {
	FetchMetadata(ctx context.Context, videoID string) (*model.VideoInfo, error)
	FetchCaptions(ctx context.Context, videoID string) ([]model.Caption, error)
}

type videoRepository struct {
	client *youtube.Client
}

func NewVideoRepository(client *youtube.Client) VideoRepository {
	return &videoRepository{
		client: client,
	}
}

func (v *videoRepository) FetchMetadata(ctx context.Context, videoID string) (*model.VideoInfo, error) {
	return v.client.FetchMetadata(ctx, videoID)
}

func (v *videoRepository) FetchCaptions(ctx context.Context, videoID string) ([]model.Caption, error) {
	return v.client.FetchCaptions(ctx, videoID)
}
