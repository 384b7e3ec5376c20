package session

import (
	"net/http"

	"github.com/dmitrymomot/spindle/pkg/logger"
)

// Middleware starts the session before next and persists deferred changes
// after it. A store outage is answered with 503.
//
// Persisting after next only reaches the store; cookies are always set
// before the handler writes its response.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Start(r.Context(), w, r)
		if err != nil {
			m.log.ErrorContext(r.Context(), "session start failed", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))

		if err := s.Persist(r.Context()); err != nil {
			m.log.ErrorContext(r.Context(), "session persist failed", logger.SessionID(s.ID()), logger.Error(err))
		}
	})
}

// RequireAuth rejects requests whose session has no user with 401.
// It must run after Middleware.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r.Context()); !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
