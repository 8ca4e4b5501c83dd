package mocks

import (
	"context"
	"sync"

	"github.com/pep299/video-summarizer/internal/model"
)

// Mock Video Repository
type MockVideoRepo struct {
	Info        *model.VideoInfo
	Captions    []model.Caption
	MetadataErr error
	CaptionsErr error

	// Block makes the failing side wait for ctx cancellation instead of returning.
	BlockMetadata bool
	BlockCaptions bool

	mu            sync.Mutex
	MetadataCalls []string
	CaptionsCalls []string
}

func (m *MockVideoRepo) FetchMetadata(ctx context.Context, videoID string) (*model.VideoInfo, error) {
	m.mu.Lock()
	m.MetadataCalls = append(m.MetadataCalls, videoID)
	m.mu.Unlock()

	if m.BlockMetadata {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.MetadataErr != nil {
		return nil, m.MetadataErr
	}
	if m.Info != nil {
		info := *m.Info
		return &info, nil
	}
	return &model.VideoInfo{Title: "test title", Author: "test author", URL: model.WatchURL(videoID)}, nil
}

func (m *MockVideoRepo) FetchCaptions(ctx context.Context, videoID string) ([]model.Caption, error) {
	m.mu.Lock()
	m.CaptionsCalls = append(m.CaptionsCalls, videoID)
	m.mu.Unlock()

	if m.BlockCaptions {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.CaptionsErr != nil {
		return nil, m.CaptionsErr
	}
	if m.Captions != nil {
		return m.Captions, nil
	}
	return []model.Caption{{Text: "Hello", Start: 0, Duration: 1}, {Text: "world", Start: 1, Duration: 1}}, nil
}
