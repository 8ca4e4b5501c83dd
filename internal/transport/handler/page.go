package handler

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/gorilla/mux"

	"github.com/pep299/video-summarizer/internal/model"
	"github.com/pep299/video-summarizer/internal/service"
	"github.com/pep299/video-summarizer/internal/transport/middleware"
)

// Page serves the interactive summarizer page and its downloads
type Page struct {
	run  *service.Run
	tmpl *template.Template
}

func NewPage(run *service.Run) *Page {
	return &Page{
		run:  run,
		tmpl: parseTemplates(),
	}
}

type pageData struct {
	Version string
	URL     string
	Lengths []model.Length
	Styles  []model.Style
	Options model.Options
	Result  *model.Result
	Success string
	Warning string
	Error   string
	History []model.HistoryEntry
}

func (p *Page) newPageData(session *service.Session) pageData {
	data := pageData{
		Version: Version,
		Lengths: model.Lengths,
		Styles:  model.Styles,
		Options: model.DefaultOptions(),
	}
	if session != nil {
		entries := session.History.Entries()
		// newest first
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
		data.History = entries
	}
	return data
}

// Index renders the empty form
func (p *Page) Index(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.SessionFrom(r.Context())
	p.render(w, r, http.StatusOK, p.newPageData(session))
}

// Summarize handles the form submission and renders the outcome inline
func (p *Page) Summarize(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		data := p.newPageData(session)
		data.Error = "Invalid form submission"
		p.render(w, r, http.StatusBadRequest, data)
		return
	}

	rawURL := r.PostFormValue("url")
	opts, err := model.ParseOptions(r.PostFormValue("length"), r.PostFormValue("style"))
	if err != nil {
		data := p.newPageData(session)
		data.URL = rawURL
		data.Error = err.Error()
		p.render(w, r, http.StatusBadRequest, data)
		return
	}

	result, err := p.run.Execute(r.Context(), session.History, rawURL, opts)

	// history is read after the run so a new entry shows up immediately
	data := p.newPageData(session)
	data.URL = rawURL
	data.Options = opts
	if err != nil {
		status := http.StatusInternalServerError
		var runErr *model.Error
		switch {
		case errors.As(err, &runErr) && strings.TrimSpace(rawURL) == "":
			// nothing entered: a warning, not an error
			data.Warning = runErr.Message
			status = runErr.Kind.HTTPStatus()
		case errors.As(err, &runErr):
			data.Error = err.Error()
			status = runErr.Kind.HTTPStatus()
		default:
			data.Error = "Unexpected error: " + err.Error()
		}
		p.render(w, r, status, data)
		return
	}

	data.Result = result
	data.Success = "Summary generated successfully!"
	p.render(w, r, http.StatusOK, data)
}

// Download serves the summary or transcript of a history entry as a text file
func (p *Page) Download(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		http.NotFound(w, r)
		return
	}

	vars := mux.Vars(r)
	entry, found := session.History.Get(vars["id"])
	if !found {
		http.NotFound(w, r)
		return
	}

	switch vars["artifact"] {
	case "summary":
		writeAttachment(w, entry.Title+"_summary.txt", entry.Summary)
	case "transcript":
		writeAttachment(w, entry.Title+"_transcript.txt", entry.Transcript)
	default:
		http.NotFound(w, r)
	}
}

func (p *Page) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := p.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		logger := log.New(funcframework.LogWriter(r.Context()), "", 0)
		logger.Printf("Error rendering page: %v", err)
	}
}
