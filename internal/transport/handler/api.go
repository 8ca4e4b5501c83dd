package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pep299/video-summarizer/internal/model"
	"github.com/pep299/video-summarizer/internal/service"
	"github.com/pep299/video-summarizer/internal/transport/middleware"
	"github.com/pep299/video-summarizer/internal/transport/response"
)

// API serves the JSON endpoints under /api/v1
type API struct {
	run      *service.Run
	sessions *service.Sessions
}

func NewAPI(run *service.Run, sessions *service.Sessions) *API {
	return &API{
		run:      run,
		sessions: sessions,
	}
}

type summaryRequest struct {
	URL    string `json:"url"`
	Length string `json:"length"`
	Style  string `json:"style"`
}

// Health provides health check endpoint
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"version":   Version,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// CreateSummary runs one summarization and records it in the caller's session
func (a *API) CreateSummary(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		response.WriteInternalError(w, "Session unavailable")
		return
	}

	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteBadRequest(w, "Invalid JSON")
		return
	}

	opts, err := model.ParseOptions(req.Length, req.Style)
	if err != nil {
		response.WriteBadRequest(w, err.Error())
		return
	}

	result, err := a.run.Execute(r.Context(), session.History, req.URL, opts)
	if err != nil {
		response.WriteRunError(w, err)
		return
	}

	response.WriteSuccess(w, "Summary generated successfully!", result)
}

// History lists the caller's session entries, oldest first
func (a *API) History(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		response.WriteInternalError(w, "Session unavailable")
		return
	}

	response.WriteSuccess(w, "", session.History.Entries())
}

// Status reports session store statistics
func (a *API) Status(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, "", a.sessions.Stats())
}
