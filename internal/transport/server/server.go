package server

import (
	"log"
	"net/http"
	"runtime/debug"
	"sync"

	"github.com/gorilla/mux"

	"github.com/pep299/video-summarizer/internal/application"
	"github.com/pep299/video-summarizer/internal/transport/middleware"
	"github.com/pep299/video-summarizer/internal/transport/response"
)

// NewRouter maps the page, download and JSON API routes onto app's handlers
func NewRouter(app *application.Application) *mux.Router {
	sessionMiddleware := middleware.Session(app.Sessions, app.Config.SessionTTL())

	r := mux.NewRouter()
	r.Use(middleware.Logging)
	r.MethodNotAllowedHandler = middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.WriteMethodNotAllowed(w, "Method not allowed")
	}))

	// Page routes
	page := r.NewRoute().Subrouter()
	page.Use(sessionMiddleware)
	page.HandleFunc("/", app.PageHandler.Index).Methods("GET")
	page.HandleFunc("/summarize", app.PageHandler.Summarize).Methods("POST")
	page.HandleFunc("/download/{id}/{artifact:summary|transcript}", app.PageHandler.Download).Methods("GET")

	// API routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.CORS)
	api.HandleFunc("/health", app.APIHandler.Health).Methods("GET")

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(app.Config.APIAuthToken))
	protected.Use(sessionMiddleware)
	protected.HandleFunc("/summaries", app.APIHandler.CreateSummary).Methods("POST", "OPTIONS")
	protected.HandleFunc("/history", app.APIHandler.History).Methods("GET", "OPTIONS")
	protected.HandleFunc("/status", app.APIHandler.Status).Methods("GET")

	return r
}

// CreateHandler creates the main HTTP handler for the application
func CreateHandler() (http.Handler, func(), error) {
	// Create application (handles all DI and business logic)
	app, err := application.New()
	if err != nil {
		log.Printf("Error creating application: %v\nStack:\n%s", err, debug.Stack())
		return nil, nil, err
	}

	if err := app.StartSessionSweeper(); err != nil {
		log.Printf("Error starting session sweeper: %v", err)
		return nil, nil, err
	}

	// Return handler and cleanup function
	cleanup := func() {
		app.Close()
	}

	return NewRouter(app), cleanup, nil
}

var (
	sharedOnce    sync.Once
	sharedHandler http.Handler
	sharedErr     error
)

// HandleRequest handles a single HTTP request (for Cloud Functions).
// The handler is built once per instance so sessions survive between invocations.
func HandleRequest(w http.ResponseWriter, r *http.Request) {
	sharedOnce.Do(func() {
		sharedHandler, _, sharedErr = CreateHandler()
	})
	if sharedErr != nil {
		log.Printf("Failed to create handler: %v", sharedErr)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	sharedHandler.ServeHTTP(w, r)
}
