package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pep299/video-summarizer/internal/model"
)

// fakeClock lets tests move time forward
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newTestSessions(ttl time.Duration) (*Sessions, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewSessions(ttl)
	s.now = clock.now
	return s, clock
}

func TestSessionsGetOrCreate(t *testing.T) {
	s, _ := newTestSessions(time.Hour)

	first, created := s.GetOrCreate("")
	require.True(t, created)
	require.NotEmpty(t, first.ID)
	assert.Equal(t, 0, first.History.Len())

	again, created := s.GetOrCreate(first.ID)
	assert.False(t, created)
	assert.Same(t, first, again)

	other, created := s.GetOrCreate("unknown-id")
	assert.True(t, created)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestSessionsHistoryIsPerSession(t *testing.T) {
	s, _ := newTestSessions(time.Hour)

	a, _ := s.GetOrCreate("")
	b, _ := s.GetOrCreate("")
	a.History.Append(model.HistoryEntry{ID: "x"})

	assert.Equal(t, 1, a.History.Len())
	assert.Equal(t, 0, b.History.Len())
}

func TestSessionsExpiry(t *testing.T) {
	s, clock := newTestSessions(30 * time.Minute)

	session, _ := s.GetOrCreate("")

	clock.t = clock.t.Add(20 * time.Minute)
	_, err := s.Get(session.ID)
	require.NoError(t, err)

	// Get refreshed the session, so another 20 minutes keeps it alive
	clock.t = clock.t.Add(20 * time.Minute)
	_, err = s.Get(session.ID)
	require.NoError(t, err)

	clock.t = clock.t.Add(31 * time.Minute)
	_, err = s.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	fresh, created := s.GetOrCreate(session.ID)
	assert.True(t, created)
	assert.NotEqual(t, session.ID, fresh.ID)
}

func TestSessionsCleanupExpired(t *testing.T) {
	s, clock := newTestSessions(10 * time.Minute)

	old, _ := s.GetOrCreate("")
	clock.t = clock.t.Add(8 * time.Minute)
	recent, _ := s.GetOrCreate("")
	recent.History.Append(model.HistoryEntry{ID: "e"})

	clock.t = clock.t.Add(5 * time.Minute)
	stats := s.Stats()
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 1, stats.ExpiredSessions)
	assert.Equal(t, 1, stats.TotalEntries)
	assert.Equal(t, old.CreatedAt, stats.OldestSession)

	removed := s.CleanupExpired()
	assert.Equal(t, 1, removed)

	_, err := s.Get(old.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Get(recent.ID)
	assert.NoError(t, err)
}

func TestSessionsDeleteAndStats(t *testing.T) {
	s, _ := newTestSessions(time.Hour)

	session, _ := s.GetOrCreate("")
	_, _ = s.Get(session.ID)
	_, _ = s.Get("nope")

	stats := s.Stats()
	assert.Equal(t, int64(1), stats.HitCount)
	assert.Equal(t, int64(1), stats.MissCount)
	assert.InDelta(t, 0.5, stats.HitRate, 0.0001)

	s.Delete(session.ID)
	_, err := s.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
