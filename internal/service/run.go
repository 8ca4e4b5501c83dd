package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/google/uuid"

	"github.com/pep299/video-summarizer/internal/model"
)

// Run performs one user action: resolve, prompt, summarize, record
type Run struct {
	video   *Video
	summary *Summary
}

func NewRun(video *Video, summary *Summary) *Run {
	return &Run{
		video:   video,
		summary: summary,
	}
}

// Execute runs the whole pipeline for rawURL. The entry is appended to history
// only after every stage succeeded; on failure history is left untouched.
func (r *Run) Execute(ctx context.Context, history *History, rawURL string, opts model.Options) (*model.Result, error) {
	logger := log.New(funcframework.LogWriter(ctx), "", 0)
	startTime := time.Now()

	if strings.TrimSpace(rawURL) == "" {
		return nil, model.NewInvalidURL("Please enter a valid YouTube URL")
	}

	logger.Printf("Summary run started url=%s length=%s style=%s", rawURL, opts.Length, opts.Style)

	// Fetch phase
	fetchStart := time.Now()
	video, err := r.video.Resolve(ctx, rawURL)
	if err != nil {
		logger.Printf("Error resolving video url=%s: %v", rawURL, err)
		return nil, err
	}
	fetchDuration := time.Since(fetchStart)

	// Summarization phase
	summaryStart := time.Now()
	prompt := BuildPrompt(video.Info, video.Transcript, opts)
	summary, err := r.summary.Summarize(ctx, prompt)
	if err != nil {
		logger.Printf("Error summarizing video_id=%s: %v", video.ID, err)
		return nil, err
	}
	summaryDuration := time.Since(summaryStart)

	entry := model.HistoryEntry{
		ID:         uuid.NewString(),
		Title:      video.Info.Title,
		URL:        rawURL,
		Summary:    summary,
		Author:     video.Info.Author,
		Transcript: video.Transcript,
		Options:    opts,
		CreatedAt:  time.Now(),
	}
	if history != nil {
		history.Append(entry)
	}

	logger.Printf("Summary run completed video_id=%s total_duration_ms=%d fetch_duration_ms=%d summary_duration_ms=%d",
		video.ID, time.Since(startTime).Milliseconds(), fetchDuration.Milliseconds(), summaryDuration.Milliseconds())

	return &model.Result{Entry: entry, Info: video.Info, Captions: video.Captions}, nil
}
