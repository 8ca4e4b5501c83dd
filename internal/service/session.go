package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session ids
var ErrSessionNotFound = errors.New("session not found")

// Session is one browser's state: its history and when it was last used
type Session struct {
	ID        string
	History   *History
	CreatedAt time.Time
	lastSeen  time.Time
}

// SessionStats represents session store statistics
type SessionStats struct {
	TotalSessions   int       `json:"total_sessions"`
	TotalEntries    int       `json:"total_entries"`
	HitCount        int64     `json:"hit_count"`
	MissCount       int64     `json:"miss_count"`
	HitRate         float64   `json:"hit_rate"`
	OldestSession   time.Time `json:"oldest_session"`
	ExpiredSessions int       `json:"expired_sessions"`
}

// Sessions keeps session state in memory. Idle sessions expire after ttl.
type Sessions struct {
	sessions  map[string]*Session
	mutex     sync.RWMutex
	ttl       time.Duration
	hitCount  int64
	missCount int64
	now       func() time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns a live session and marks it as used
func (s *Sessions) Get(id string) (*Session, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.getLocked(id)
}

// GetOrCreate returns the live session for id, or a fresh one when id is
// empty, unknown or expired. The bool reports whether a session was created.
func (s *Sessions) GetOrCreate(id string) (*Session, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if id != "" {
		if session, err := s.getLocked(id); err == nil {
			return session, false
		}
	}

	now := s.now()
	session := &Session{
		ID:        uuid.NewString(),
		History:   NewHistory(),
		CreatedAt: now,
		lastSeen:  now,
	}
	s.sessions[session.ID] = session
	return session, true
}

func (s *Sessions) getLocked(id string) (*Session, error) {
	session, exists := s.sessions[id]
	if !exists {
		s.missCount++
		return nil, ErrSessionNotFound
	}

	// Check if expired
	if s.expired(session) {
		delete(s.sessions, id)
		s.missCount++
		return nil, ErrSessionNotFound
	}

	session.lastSeen = s.now()
	s.hitCount++
	return session, nil
}

func (s *Sessions) expired(session *Session) bool {
	return s.now().Sub(session.lastSeen) > s.ttl
}

// Delete ends a session
func (s *Sessions) Delete(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.sessions, id)
}

// Stats returns session store statistics
func (s *Sessions) Stats() SessionStats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stats := SessionStats{
		TotalSessions: len(s.sessions),
		HitCount:      s.hitCount,
		MissCount:     s.missCount,
	}
	if s.hitCount+s.missCount > 0 {
		stats.HitRate = float64(s.hitCount) / float64(s.hitCount+s.missCount)
	}

	for _, session := range s.sessions {
		if stats.OldestSession.IsZero() || session.CreatedAt.Before(stats.OldestSession) {
			stats.OldestSession = session.CreatedAt
		}
		stats.TotalEntries += session.History.Len()
		if s.expired(session) {
			stats.ExpiredSessions++
		}
	}
	return stats
}

// CleanupExpired removes idle sessions and returns how many were dropped
func (s *Sessions) CleanupExpired() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if s.expired(session) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
