package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"golang.org/x/sync/errgroup"

	"github.com/pep299/video-summarizer/internal/model"
	"github.com/pep299/video-summarizer/internal/repository"
	"github.com/pep299/video-summarizer/internal/youtube"
)

// Video resolves a user supplied URL into metadata plus transcript
type Video struct {
	repo       repository.VideoRepository
	concurrent bool
}

func NewVideo(repo repository.VideoRepository, concurrent bool) *Video {
	return &Video{
		repo:       repo,
		concurrent: concurrent,
	}
}

// Resolve returns a complete Video or a *model.Error; never a partial result
func (v *Video) Resolve(ctx context.Context, rawURL string) (*model.Video, error) {
	logger := log.New(funcframework.LogWriter(ctx), "", 0)

	videoID, ok := youtube.ExtractVideoID(rawURL)
	if !ok {
		return nil, model.NewInvalidURL("Invalid YouTube URL")
	}

	start := time.Now()
	var (
		info     *model.VideoInfo
		captions []model.Caption
		err      error
	)
	if v.concurrent {
		info, captions, err = v.fetchConcurrently(ctx, videoID)
	} else {
		info, captions, err = v.fetchSequentially(ctx, videoID)
	}
	if err != nil {
		logger.Printf("Video resolution failed video_id=%s duration_ms=%d error=%v", videoID, time.Since(start).Milliseconds(), err)
		return nil, err
	}

	transcript := model.JoinCaptions(captions)
	if strings.TrimSpace(transcript) == "" {
		return nil, model.NewTranscriptUnavailable(youtube.ErrNoTranscriptFound)
	}

	logger.Printf("Video resolved video_id=%s captions=%d transcript_chars=%d concurrent=%t duration_ms=%d",
		videoID, len(captions), len(transcript), v.concurrent, time.Since(start).Milliseconds())

	return &model.Video{
		ID:         videoID,
		Info:       *info,
		Transcript: transcript,
		Captions:   captions,
	}, nil
}

// fetchSequentially looks up metadata first, then the transcript
func (v *Video) fetchSequentially(ctx context.Context, videoID string) (*model.VideoInfo, []model.Caption, error) {
	info, err := v.repo.FetchMetadata(ctx, videoID)
	if err != nil {
		return nil, nil, model.NewMetadataExtraction(err)
	}

	captions, err := v.repo.FetchCaptions(ctx, videoID)
	if err != nil {
		return nil, nil, model.NewTranscriptUnavailable(err)
	}
	return info, captions, nil
}

// fetchConcurrently runs both lookups at once. The first failure cancels the
// other lookup. A metadata failure is reported ahead of a transcript failure,
// unless it is only the cancellation caused by the transcript failing.
func (v *Video) fetchConcurrently(ctx context.Context, videoID string) (*model.VideoInfo, []model.Caption, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		info        *model.VideoInfo
		captions    []model.Caption
		metadataErr error
		captionsErr error
	)

	g.Go(func() error {
		info, metadataErr = v.repo.FetchMetadata(gctx, videoID)
		return metadataErr
	})
	g.Go(func() error {
		captions, captionsErr = v.repo.FetchCaptions(gctx, videoID)
		return captionsErr
	})
	_ = g.Wait()

	cancelledBySibling := func(err error) bool {
		return ctx.Err() == nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) && gctx.Err() != nil
	}

	switch {
	case metadataErr != nil && !(captionsErr != nil && cancelledBySibling(metadataErr)):
		return nil, nil, model.NewMetadataExtraction(metadataErr)
	case captionsErr != nil:
		return nil, nil, model.NewTranscriptUnavailable(captionsErr)
	}
	return info, captions, nil
}
