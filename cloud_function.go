package videosummarizer

import (
	"log"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/pep299/video-summarizer/internal/transport/server"
)

// DefaultFunctionTarget is registered when FUNCTION_TARGET is not set
const DefaultFunctionTarget = "SummarizeVideo"

func init() {
	functionTarget := os.Getenv("FUNCTION_TARGET")
	if functionTarget == "" {
		functionTarget = DefaultFunctionTarget
	}

	log.Printf("Registering function: %s", functionTarget)
	functions.HTTP(functionTarget, server.HandleRequest)
}
