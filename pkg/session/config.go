package session

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/spindle/pkg/cookie"
)

// LazyCookieName is the fixed name of the anonymous lazy session cookie.
const LazyCookieName = "spindle_lazy"

// Key prefixes in the backing store.
const (
	SessionPrefix = "sess:"
	UserPrefix    = "sess:user:"
	LazyPrefix    = "lazy:"
)

// Config holds session configuration
type Config struct {
	// CookieName is the name of the signed main session cookie.
	CookieName string `env:"SESSION_NAME" envDefault:"spindle_session"`

	// Timeout is the idle timeout of the main tier and the TTL of its records.
	Timeout time.Duration `env:"SESSION_TIMEOUT" envDefault:"30m"`

	// LazyTimeout is the lifetime of the lazy tier, refreshed on every write.
	LazyTimeout time.Duration `env:"SESSION_LAZY_TIMEOUT" envDefault:"720h"`

	Domain string `env:"SESSION_DOMAIN" envDefault:""`
	Secure bool   `env:"SESSION_SECURE" envDefault:"true"`

	// WriteThrough persists the main record on every Set and Delete.
	// When disabled, changes are written by Persist.
	WriteThrough bool `env:"SESSION_WRITE_THROUGH" envDefault:"true"`

	// ActivityUpdateThreshold is the minimum age of last_activity before
	// Start refreshes it.
	ActivityUpdateThreshold time.Duration `env:"SESSION_ACTIVITY_UPDATE_THRESHOLD" envDefault:"1m"`

	// TrustProxy binds sessions to the forwarded client address instead of
	// the connection peer. Enable only behind a proxy that rewrites the
	// forwarding headers.
	TrustProxy bool `env:"SESSION_TRUST_PROXY" envDefault:"false"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName:              "spindle_session",
		Timeout:                 30 * time.Minute,
		LazyTimeout:             30 * 24 * time.Hour,
		Secure:                  true,
		WriteThrough:            true,
		ActivityUpdateThreshold: time.Minute,
	}
}

// NewFromConfig creates a Manager from cfg. Explicit opts are applied last.
func NewFromConfig(cfg Config, store Store, cookies *cookie.Manager, opts ...Option) (*Manager, error) {
	return New(store, cookies, append([]Option{WithConfig(cfg)}, opts...)...)
}

func (c Config) cookieOptions(maxAge time.Duration) []cookie.Option {
	return []cookie.Option{
		cookie.WithPath("/"),
		cookie.WithDomain(c.Domain),
		cookie.WithSecure(c.Secure),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteStrictMode),
		cookie.WithMaxAge(int(maxAge.Seconds())),
	}
}
