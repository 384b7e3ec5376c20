package session

import (
	"context"
	"errors"
	"maps"
	"net/http"

	"github.com/dmitrymomot/spindle/pkg/logger"
)

// Session is the per-request view of both tiers. The main tier is cached in
// memory; the lazy tier is read from the store on every call.
//
// A Session belongs to one request and is not safe for concurrent use.
type Session struct {
	m           *Manager
	w           http.ResponseWriter
	id          string
	lazyID      string
	userID      string
	fingerprint string
	data        map[string]any
	dirty       bool
}

func (s *Session) ID() string     { return s.id }
func (s *Session) LazyID() string { return s.lazyID }
func (s *Session) UserID() string { return s.userID }

// IsAuthenticated reports whether a user is bound to the session.
func (s *Session) IsAuthenticated() bool { return s.userID != "" }

// Data returns a copy of the main tier values.
func (s *Session) Data() map[string]any {
	return cloneData(s.data)
}

// Get returns the main tier value of key, falling back to the lazy tier.
// Values read back from the store carry JSON types (float64, map[string]any).
func (s *Session) Get(ctx context.Context, key string) (any, bool, error) {
	if v, ok := s.data[key]; ok {
		return v, true, nil
	}
	return s.LazyGet(ctx, key)
}

// GetString is Get for string values. Other types report false.
func (s *Session) GetString(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return "", false, err
	}
	str, ok := v.(string)
	return str, ok, nil
}

// Has reports whether key exists in either tier.
func (s *Session) Has(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.Get(ctx, key)
	return ok, err
}

// Set stores value in the main tier.
func (s *Session) Set(ctx context.Context, key string, value any) error {
	s.data[key] = value
	return s.changed(ctx)
}

// Delete removes key from both tiers.
func (s *Session) Delete(ctx context.Context, key string) error {
	delete(s.data, key)
	if err := s.LazyDelete(ctx, key); err != nil {
		return err
	}
	return s.changed(ctx)
}

// Login binds userID to the session and persists it immediately. Any other
// session of the same user is destroyed.
//
// Two concurrent logins for one user race on the pointer record. The last
// writer wins and the other record lingers until its TTL.
func (s *Session) Login(ctx context.Context, userID string) error {
	s.userID = userID
	return s.write(ctx)
}

// Persist writes pending main tier changes. It is a no-op when nothing
// changed, which is always the case in write-through mode.
func (s *Session) Persist(ctx context.Context) error {
	if !s.dirty {
		return nil
	}
	return s.write(ctx)
}

// DestroyAll ends the main session: the record, the user pointer and any
// lazy entries named like main tier keys are removed. A fresh blank session
// with a new id replaces it. The lazy record itself survives.
func (s *Session) DestroyAll(ctx context.Context) error {
	keys := []string{SessionPrefix + s.id}
	for k := range maps.Keys(s.data) {
		keys = append(keys, LazyPrefix+k)
	}
	if s.userID != "" {
		keys = append(keys, UserPrefix+s.userID)
	}
	if err := s.m.store.Delete(ctx, keys...); err != nil {
		return errors.Join(ErrUnavailable, err)
	}

	s.m.log.DebugContext(ctx, "session destroyed", logger.SessionID(s.id), logger.UserID(s.userID))
	return s.regenerate(ctx)
}

// DestroyLazy drops the lazy record and issues a new lazy id.
func (s *Session) DestroyLazy(ctx context.Context) error {
	if err := s.m.store.Delete(ctx, LazyPrefix+s.lazyID); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	lazyID, err := s.m.token(16)
	if err != nil {
		return err
	}
	s.lazyID = lazyID
	s.m.setLazyCookie(s.w, lazyID)
	return nil
}

func (s *Session) LazyGet(ctx context.Context, key string) (any, bool, error) {
	data, err := s.m.loadLazy(ctx, s.lazyID)
	if err != nil {
		return nil, false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (s *Session) LazyHas(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.LazyGet(ctx, key)
	return ok, err
}

// LazySet writes value to the lazy tier and refreshes its lifetime.
func (s *Session) LazySet(ctx context.Context, key string, value any) error {
	data, err := s.m.loadLazy(ctx, s.lazyID)
	if err != nil {
		return err
	}
	data[key] = value
	return s.m.saveLazy(ctx, s.lazyID, data)
}

func (s *Session) LazyDelete(ctx context.Context, key string) error {
	data, err := s.m.loadLazy(ctx, s.lazyID)
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.m.saveLazy(ctx, s.lazyID, data)
}

// SetURLToken stores a fresh 32 byte token under name in the lazy tier and
// returns it, for links that must prove they were issued to this browser.
func (s *Session) SetURLToken(ctx context.Context, name string) (string, error) {
	token, err := s.m.token(32)
	if err != nil {
		return "", err
	}
	if err := s.LazySet(ctx, name, token); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Session) changed(ctx context.Context) error {
	s.dirty = true
	if !s.m.config.WriteThrough {
		return nil
	}
	return s.write(ctx)
}

// write persists the main record. A bound user first takes over the
// active-session pointer, destroying whatever session held it.
func (s *Session) write(ctx context.Context) error {
	if s.userID != "" {
		if err := s.claimUser(ctx); err != nil {
			return err
		}
	}
	err := s.m.save(ctx, s.id, record{
		UserID:       s.userID,
		Data:         s.data,
		LastActivity: s.m.now().Unix(),
		Fingerprint:  s.fingerprint,
	})
	if err != nil {
		return err
	}
	s.dirty = false
	return nil
}

func (s *Session) claimUser(ctx context.Context) error {
	other, err := s.m.ActiveSession(ctx, s.userID)
	if err != nil {
		return err
	}
	if other != "" && other != s.id {
		if err := s.m.Destroy(ctx, other); err != nil {
			return err
		}
		s.m.log.InfoContext(ctx, "previous session invalidated",
			logger.UserID(s.userID), logger.SessionID(other))
	}
	if err := s.m.store.Set(ctx, UserPrefix+s.userID, []byte(s.id), s.m.config.Timeout); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

// regenerate replaces the session with a blank record under a new id and
// sends the new cookie.
func (s *Session) regenerate(ctx context.Context) error {
	id, err := s.m.newID()
	if err != nil {
		return err
	}
	s.id = id
	s.userID = ""
	s.data = make(map[string]any)
	if err := s.write(ctx); err != nil {
		return err
	}
	s.m.setSessionCookie(s.w, id)
	return nil
}

func (s *Session) sync(rec *record) {
	s.userID = rec.UserID
	s.data = cloneData(rec.Data)
	s.dirty = false
}
