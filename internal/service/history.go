package service

import (
	"sync"

	"github.com/pep299/video-summarizer/internal/model"
)

// History is the append-only log of completed runs for one session
type History struct {
	mu      sync.RWMutex
	entries []model.HistoryEntry
}

func NewHistory() *History {
	return &History{}
}

func (h *History) Append(entry model.HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, entry)
}

// Entries returns a copy of the entries, oldest first
func (h *History) Entries() []model.HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]model.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

func (h *History) Get(id string) (model.HistoryEntry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, e := range h.entries {
		if e.ID == id {
			return e, true
		}
	}
	return model.HistoryEntry{}, false
}
