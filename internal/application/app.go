package application

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/pep299/video-summarizer/internal/azure"
	"github.com/pep299/video-summarizer/internal/infrastructure"
	"github.com/pep299/video-summarizer/internal/repository"
	"github.com/pep299/video-summarizer/internal/service"
	"github.com/pep299/video-summarizer/internal/transport/handler"
	"github.com/pep299/video-summarizer/internal/youtube"
)

// Application represents the application with all business logic components
type Application struct {
	Config      *infrastructure.Config
	Sessions    *service.Sessions
	Run         *service.Run
	PageHandler *handler.Page
	APIHandler  *handler.API
	cleanup     func() error
}

// New creates a new application instance with all dependencies
func New() (*Application, error) {
	// Load configuration
	cfg, err := infrastructure.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return NewWithConfig(cfg), nil
}

// NewWithConfig wires the real YouTube and Azure OpenAI clients
func NewWithConfig(cfg *infrastructure.Config) *Application {
	youtubeClient := youtube.NewClient(cfg.HTTPTimeout(), youtube.WithLanguages(cfg.TranscriptLanguages...))
	azureClient := azure.NewClient(cfg.AzureAPIKey, cfg.AzureEndpoint, cfg.AzureDeployment, cfg.AzureAPIVersion, cfg.HTTPTimeout())

	return NewWithRepositories(cfg,
		repository.NewVideoRepository(youtubeClient),
		repository.NewChatRepository(azureClient),
	)
}

// NewWithRepositories wires services and handlers on top of the given repositories
func NewWithRepositories(cfg *infrastructure.Config, videoRepo repository.VideoRepository, chatRepo repository.ChatRepository) *Application {
	// Create services (business logic)
	videoService := service.NewVideo(videoRepo, cfg.FetchConcurrently)
	summaryService := service.NewSummary(chatRepo)
	runService := service.NewRun(videoService, summaryService)
	sessions := service.NewSessions(cfg.SessionTTL())

	// Create handlers (HTTP layer)
	return &Application{
		Config:      cfg,
		Sessions:    sessions,
		Run:         runService,
		PageHandler: handler.NewPage(runService),
		APIHandler:  handler.NewAPI(runService, sessions),
	}
}

// StartSessionSweeper schedules removal of idle sessions. Close stops it.
func (a *Application) StartSessionSweeper() error {
	if a.cleanup != nil {
		return fmt.Errorf("session sweeper already started")
	}

	c := cron.New()
	_, err := c.AddFunc(a.Config.SessionSweepSchedule, func() {
		if removed := a.Sessions.CleanupExpired(); removed > 0 {
			log.Printf("Session sweep removed=%d remaining=%d", removed, a.Sessions.Stats().TotalSessions)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling session sweep: %w", err)
	}
	c.Start()

	a.cleanup = func() error {
		<-c.Stop().Done()
		return nil
	}
	return nil
}

// Close cleans up application resources
func (a *Application) Close() error {
	if a.cleanup != nil {
		return a.cleanup()
	}
	return nil
}
