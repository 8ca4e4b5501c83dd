package main

import (
	"fmt"
	"os"

	"github.com/pep299/video-summarizer/internal/application"
	"github.com/pep299/video-summarizer/internal/infrastructure"
	"github.com/pep299/video-summarizer/internal/service"
)

// Build information, set via -ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	app := newCLIApp(os.Stdout, infrastructure.Load, func(cfg *infrastructure.Config) *service.Run {
		return application.NewWithConfig(cfg).Run
	})

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
