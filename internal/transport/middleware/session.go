package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/pep299/video-summarizer/internal/service"
)

const (
	// SessionCookie names the cookie carrying the browser session id
	SessionCookie = "vs_session"
	// SessionHeader lets API clients without a cookie jar keep a session
	SessionHeader = "X-Session-ID"
)

type sessionKey struct{}

// Session attaches the caller's session to the request context, creating one
// when the request carries no live session id.
func Session(store *service.Sessions, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeader)
			if cookie, err := r.Cookie(SessionCookie); err == nil && id == "" {
				id = cookie.Value
			}

			session, _ := store.GetOrCreate(id)

			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    session.ID,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			w.Header().Set(SessionHeader, session.ID)

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// WithSession returns a copy of ctx carrying session
func WithSession(ctx context.Context, session *service.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFrom returns the session attached by the Session middleware
func SessionFrom(ctx context.Context) (*service.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*service.Session)
	return session, ok && session != nil
}
