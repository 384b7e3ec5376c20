package csrf_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/spindle/pkg/csrf"
)

type lazyStore struct {
	data   map[string]any
	getErr error
}

func newLazyStore() *lazyStore { return &lazyStore{data: map[string]any{}} }

func (s *lazyStore) LazyGet(_ context.Context, key string) (any, bool, error) {
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *lazyStore) LazySet(_ context.Context, key string, value any) error {
	s.data[key] = value
	return nil
}

func TestGuard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("generates and stores a token", func(t *testing.T) {
		t.Parallel()
		store := newLazyStore()
		g, err := csrf.New(ctx, store)
		require.NoError(t, err)

		assert.Regexp(t, `^[a-f0-9]{64}$`, g.Token())
		assert.Equal(t, g.Token(), store.data[csrf.Key])
	})

	t.Run("reuses the stored token", func(t *testing.T) {
		t.Parallel()
		store := newLazyStore()
		store.data[csrf.Key] = "existing"
		g, err := csrf.New(ctx, store)
		require.NoError(t, err)
		assert.Equal(t, "existing", g.Token())
	})

	t.Run("validate", func(t *testing.T) {
		t.Parallel()
		g, err := csrf.New(ctx, newLazyStore())
		require.NoError(t, err)

		assert.True(t, g.Validate(g.Token()))
		assert.False(t, g.Validate("x"))
		assert.False(t, g.Validate(""))
	})

	t.Run("regenerate invalidates the old token", func(t *testing.T) {
		t.Parallel()
		store := newLazyStore()
		g, err := csrf.New(ctx, store)
		require.NoError(t, err)
		old := g.Token()

		require.NoError(t, g.Regenerate(ctx))
		assert.NotEqual(t, old, g.Token())
		assert.False(t, g.Validate(old))
		assert.True(t, g.Validate(g.Token()))
		assert.Equal(t, g.Token(), store.data[csrf.Key])
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("down")
		_, err := csrf.New(ctx, &lazyStore{getErr: boom})
		assert.ErrorIs(t, err, boom)
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	setup := func() (http.Handler, *lazyStore) {
		store := newLazyStore()
		store.data[csrf.Key] = "secret-token"
		h := csrf.Middleware(func(*http.Request) (csrf.LazyStore, bool) { return store, true })(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(csrf.TokenFromContext(r.Context())))
			}))
		return h, store
	}

	tests := []struct {
		name string
		req  func() *http.Request
		code int
	}{
		{"safe method passes", func() *http.Request {
			return httptest.NewRequest(http.MethodGet, "/", nil)
		}, http.StatusOK},
		{"post without token", func() *http.Request {
			return httptest.NewRequest(http.MethodPost, "/", nil)
		}, http.StatusForbidden},
		{"post with header", func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			r.Header.Set(csrf.HeaderName, "secret-token")
			return r
		}, http.StatusOK},
		{"post with form field", func() *http.Request {
			form := url.Values{csrf.FieldName: {"secret-token"}}
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			return r
		}, http.StatusOK},
		{"delete with wrong token", func() *http.Request {
			r := httptest.NewRequest(http.MethodDelete, "/", nil)
			r.Header.Set(csrf.HeaderName, "other")
			return r
		}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _ := setup()
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, tt.req())
			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, "secret-token", rec.Body.String())
			}
		})
	}

	t.Run("no session", func(t *testing.T) {
		t.Parallel()
		h := csrf.Middleware(func(*http.Request) (csrf.LazyStore, bool) { return nil, false })(http.NotFoundHandler())
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestCheck(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.ErrorIs(t, csrf.Check(req.Context(), req), csrf.ErrNoGuard)

	g, err := csrf.New(context.Background(), newLazyStore())
	require.NoError(t, err)
	ctx := csrf.WithGuard(req.Context(), g)
	assert.ErrorIs(t, csrf.Check(ctx, req), csrf.ErrTokenMismatch)

	req.Header.Set(csrf.HeaderName, g.Token())
	assert.NoError(t, csrf.Check(ctx, req))
}
