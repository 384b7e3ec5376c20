// Package session implements two-tier HTTP sessions on a key-value store.
//
// The main tier is bound to a login: its record lives under "sess:<id>",
// expires after an idle timeout and is tied to the client fingerprint
// (User-Agent and IP). A record that expired or was created by another
// client is discarded on Start and replaced by a blank one with a new id.
// Each user has at most one active main session: "sess:user:<uid>" points
// at it and logging in elsewhere destroys the previous one.
//
// The lazy tier is an anonymous record under "lazy:<lazy-id>" that lives
// for 30 days and survives login, logout and regeneration of the main
// session. It carries values such as CSRF tokens that must outlive a login.
//
// Basic usage:
//
//	store := session.NewMemoryStore()
//	mgr, err := session.New(store, cookies)
//	if err != nil {
//		return err
//	}
//	handler := mgr.Middleware(app)
//
//	// inside a handler
//	s := session.MustFromContext(r.Context())
//	if err := s.Login(r.Context(), userID); err != nil {
//		return err
//	}
//
// Every store failure is returned wrapped in ErrUnavailable. By default Set
// and Delete write through; with WithWriteThrough(false) changes are
// written by Persist, which Middleware calls after the handler returns.
package session
