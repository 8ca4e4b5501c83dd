package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pep299/video-summarizer/internal/application"
	"github.com/pep299/video-summarizer/internal/transport/server"
)

func main() {
	// Create application (loads configuration)
	app, err := application.New()
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	cfg := app.Config

	// Drop idle sessions on schedule
	if err := app.StartSessionSweeper(); err != nil {
		log.Fatalf("Failed to start session sweeper: %v", err)
	}

	// Create HTTP server
	httpServer := &http.Server{
		Addr:        fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:     server.NewRouter(app),
		ReadTimeout: 30 * time.Second,
		// a run makes up to three outbound calls, each bounded by the HTTP timeout
		WriteTimeout: 3*cfg.HTTPTimeout() + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server
	go func() {
		log.Printf("Starting server on %s:%s deployment=%s concurrent_fetch=%t", cfg.Host, cfg.Port, cfg.AzureDeployment, cfg.FetchConcurrently)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down server...")

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	// Stop background tasks
	if err := app.Close(); err != nil {
		log.Printf("Application cleanup error: %v", err)
	}

	log.Println("Server stopped")
}
