package csrf

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"io"
)

const (
	// Key is the lazy session key holding the token.
	Key = "csrf_token"

	// FieldName is the form field carrying the token.
	FieldName = "csrf_token"

	// HeaderName is the request header carrying the token.
	HeaderName = "X-CSRF-Token"

	tokenBytes = 32
)

// LazyStore is the slice of the lazy session tier the guard needs.
type LazyStore interface {
	LazyGet(ctx context.Context, key string) (any, bool, error)
	LazySet(ctx context.Context, key string, value any) error
}

// Guard holds the CSRF token of one browser.
type Guard struct {
	store  LazyStore
	token  string
	random io.Reader
}

// New loads the token from store, generating and saving one if it is absent.
func New(ctx context.Context, store LazyStore) (*Guard, error) {
	return newGuard(ctx, store, rand.Reader)
}

func newGuard(ctx context.Context, store LazyStore, random io.Reader) (*Guard, error) {
	g := &Guard{store: store, random: random}

	v, ok, err := store.LazyGet(ctx, Key)
	if err != nil {
		return nil, err
	}
	if token, isString := v.(string); ok && isString && token != "" {
		g.token = token
		return g, nil
	}
	if err := g.Regenerate(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

// Token returns the current token.
func (g *Guard) Token() string {
	return g.token
}

// Validate reports whether candidate equals the token, in constant time.
func (g *Guard) Validate(candidate string) bool {
	if candidate == "" || g.token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(g.token)) == 1
}

// Regenerate replaces the token and stores it.
func (g *Guard) Regenerate(ctx context.Context) error {
	b := make([]byte, tokenBytes)
	if _, err := io.ReadFull(g.random, b); err != nil {
		return errors.Join(ErrTokenGeneration, err)
	}
	token := hex.EncodeToString(b)
	if err := g.store.LazySet(ctx, Key, token); err != nil {
		return err
	}
	g.token = token
	return nil
}
