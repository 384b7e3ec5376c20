package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/dmitrymomot/spindle/pkg/cookie"
	"github.com/dmitrymomot/spindle/pkg/fingerprint"
	"github.com/dmitrymomot/spindle/pkg/logger"
)

var lazyIDPattern = regexp.MustCompile(`^[a-f0-9]{32,64}$`)

// Manager owns the session store and cookie policy. It is created once per
// process and opens a Session for every request.
type Manager struct {
	store       Store
	cookies     *cookie.Manager
	config      Config
	fingerprint FingerprintFunc
	now         func() time.Time
	random      io.Reader
	log         *slog.Logger
}

// New creates a Manager on top of store. Session cookies are signed by cookies.
func New(store Store, cookies *cookie.Manager, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	if cookies == nil {
		return nil, ErrNoCookieManager
	}

	m := &Manager{
		store:   store,
		cookies: cookies,
		config:  DefaultConfig(),
		now:     time.Now,
		random:  rand.Reader,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.fingerprint == nil {
		m.fingerprint = fingerprint.FromRequest
		if m.config.TrustProxy {
			m.fingerprint = fingerprint.FromProxiedRequest
		}
	}
	m.log = m.log.With(logger.Component("session"))
	return m, nil
}

// Config returns the effective configuration.
func (m *Manager) Config() Config {
	return m.config
}

// Start opens the session of r. A missing, expired or foreign record is
// replaced by a blank one bound to the current fingerprint and a new id.
// Store failures are returned wrapped in ErrUnavailable.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	s := &Session{
		m:           m,
		w:           w,
		fingerprint: m.fingerprint(r),
		data:        make(map[string]any),
	}

	lazyID, err := m.cookies.Get(r, LazyCookieName)
	if err != nil || !lazyIDPattern.MatchString(lazyID) {
		if lazyID, err = m.token(16); err != nil {
			return nil, err
		}
		m.setLazyCookie(w, lazyID)
	}
	s.lazyID = lazyID

	id, _ := m.cookies.GetSigned(r, m.config.CookieName)
	var rec *record
	if id != "" {
		if rec, err = m.load(ctx, id); err != nil && !errors.Is(err, ErrCorruptRecord) {
			return nil, err
		}
		if err == nil {
			err = m.check(rec, s.fingerprint)
		}
		if err != nil {
			m.log.DebugContext(ctx, "discarding session", logger.SessionID(id), logger.Error(err))
			rec = nil
		}
	}

	if rec == nil {
		if id != "" {
			if err := m.Destroy(ctx, id); err != nil {
				return nil, err
			}
		}
		if err := s.regenerate(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}

	s.id = id
	s.sync(rec)
	if m.now().Sub(time.Unix(rec.LastActivity, 0)) >= m.config.ActivityUpdateThreshold {
		if err := s.write(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Destroy removes the session record id and, if it belongs to a user, that
// user's active-session pointer.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	rec, err := m.load(ctx, id)
	if err != nil && !errors.Is(err, ErrCorruptRecord) {
		return err
	}
	keys := []string{SessionPrefix + id}
	if rec != nil && rec.UserID != "" {
		keys = append(keys, UserPrefix+rec.UserID)
	}
	if err := m.store.Delete(ctx, keys...); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

// ActiveSession returns the id of the session currently bound to userID,
// or "" when the user has none.
func (m *Manager) ActiveSession(ctx context.Context, userID string) (string, error) {
	raw, err := m.store.Get(ctx, UserPrefix+userID)
	if err != nil {
		return "", errors.Join(ErrUnavailable, err)
	}
	return string(raw), nil
}

// load returns the record under id, nil when absent.
func (m *Manager) load(ctx context.Context, id string) (*record, error) {
	raw, err := m.store.Get(ctx, SessionPrefix+id)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	if raw == nil {
		return nil, nil
	}
	return decodeRecord(raw)
}

func (m *Manager) check(rec *record, fp string) error {
	if rec == nil {
		return nil
	}
	if m.now().Sub(time.Unix(rec.LastActivity, 0)) > m.config.Timeout {
		return ErrSessionExpired
	}
	if rec.Fingerprint != fp {
		return ErrInvalidSession
	}
	return nil
}

func (m *Manager) save(ctx context.Context, id string, rec record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("session: encode record: %w", err)
	}
	if err := m.store.Set(ctx, SessionPrefix+id, raw, m.config.Timeout); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

func (m *Manager) loadLazy(ctx context.Context, lazyID string) (map[string]any, error) {
	raw, err := m.store.Get(ctx, LazyPrefix+lazyID)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	data, err := decodeLazy(raw)
	if err != nil {
		m.log.WarnContext(ctx, "resetting corrupt lazy record", logger.Error(err))
		return make(map[string]any), nil
	}
	return data, nil
}

func (m *Manager) saveLazy(ctx context.Context, lazyID string, data map[string]any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session: encode lazy record: %w", err)
	}
	if err := m.store.Set(ctx, LazyPrefix+lazyID, raw, m.config.LazyTimeout); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

func (m *Manager) setSessionCookie(w http.ResponseWriter, id string) {
	m.cookies.SetSigned(w, m.config.CookieName, id, m.config.cookieOptions(0)...)
}

func (m *Manager) setLazyCookie(w http.ResponseWriter, lazyID string) {
	m.cookies.Set(w, LazyCookieName, lazyID, m.config.cookieOptions(m.config.LazyTimeout)...)
}

// token returns n random bytes hex-encoded.
func (m *Manager) token(n int) (string, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(m.random, b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return hex.EncodeToString(b), nil
}

func (m *Manager) newID() (string, error) {
	b := make([]byte, 32)
	if _, err := io.ReadFull(m.random, b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
