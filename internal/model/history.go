package model

import "time"

// HistoryEntry is one completed summarization kept for the session
type HistoryEntry struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"` // as entered by the user
	Summary    string    `json:"summary"`
	Author     string    `json:"author"`
	Transcript string    `json:"transcript"`
	Options    Options   `json:"options"`
	CreatedAt  time.Time `json:"created_at"`
}

// Result is what a successful run hands back to the presentation layer
type Result struct {
	Entry    HistoryEntry `json:"entry"`
	Info     VideoInfo    `json:"info"`
	Captions []Caption    `json:"-"`
}
