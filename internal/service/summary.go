package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	"github.com/pep299/video-summarizer/internal/model"
	"github.com/pep299/video-summarizer/internal/repository"
)

// SystemPrompt is sent as the system message of every completion
const SystemPrompt = "You are a helpful AI assistant that provides concise summaries of YouTube video transcripts."

// BuildPrompt lays out the user message sent to the model
func BuildPrompt(info model.VideoInfo, transcript string, opts model.Options) string {
	var b strings.Builder
	b.WriteString("Please summarize the following YouTube video transcript:\n")
	fmt.Fprintf(&b, "Title: %s\n", info.Title)
	fmt.Fprintf(&b, "Author: %s\n", info.Author)
	fmt.Fprintf(&b, "Transcript: %s\n", transcript)
	fmt.Fprintf(&b, "Format: %s\n", opts.Style)
	fmt.Fprintf(&b, "Summary Length: %s", opts.Length)
	return b.String()
}

// Summary turns prompts into summaries with one chat completion each
type Summary struct {
	chat repository.ChatRepository
}

func NewSummary(chat repository.ChatRepository) *Summary {
	return &Summary{
		chat: chat,
	}
}

// Summarize issues exactly one completion. Failures, including an empty
// completion, come back as a SummaryGeneration error.
func (s *Summary) Summarize(ctx context.Context, prompt string) (string, error) {
	logger := log.New(funcframework.LogWriter(ctx), "", 0)
	start := time.Now()

	text, err := s.chat.Complete(ctx, SystemPrompt, prompt)
	if err != nil {
		logger.Printf("Summary generation failed prompt_chars=%d duration_ms=%d error=%v", len(prompt), time.Since(start).Milliseconds(), err)
		return "", model.NewSummaryGeneration(err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", model.NewSummaryGeneration(errors.New("model returned an empty summary"))
	}

	logger.Printf("Summary generated prompt_chars=%d summary_chars=%d duration_ms=%d", len(prompt), len(text), time.Since(start).Milliseconds())
	return text, nil
}
