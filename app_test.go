package spindle_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/spindle"
	"github.com/dmitrymomot/spindle/internal/controllers"
	"github.com/dmitrymomot/spindle/internal/repository"
	"github.com/dmitrymomot/spindle/pkg/cookie"
	"github.com/dmitrymomot/spindle/pkg/csrf"
	"github.com/dmitrymomot/spindle/pkg/dispatcher"
	"github.com/dmitrymomot/spindle/pkg/requestid"
	"github.com/dmitrymomot/spindle/pkg/route"
	"github.com/dmitrymomot/spindle/pkg/service"
	"github.com/dmitrymomot/spindle/pkg/session"
)

var tokenPattern = regexp.MustCompile(`name="csrf_token" value="([a-f0-9]+)"`)

func newSessions(t *testing.T) *session.Manager {
	t.Helper()
	cookies, err := cookie.New([]string{"test-secret-key-that-is-long-enough"})
	require.NoError(t, err)
	m, err := session.New(session.NewMemoryStore(), cookies)
	require.NoError(t, err)
	return m
}

func newApp(t *testing.T, opts ...spindle.Option) *spindle.App {
	t.Helper()

	resolver := route.NewResolver()
	controllers.Register(resolver)

	repo := repository.NewMemory()
	opts = append([]spindle.Option{
		spindle.WithService(controllers.KeySettingsSource, repository.Settings(repo)),
		spindle.WithService(controllers.KeyEventSource, repository.Events(repo)),
	}, opts...)

	app, err := spindle.New(spindle.Config{BaseDomain: "example.com"}, dispatcher.DefaultConfig(), resolver, newSessions(t), opts...)
	require.NoError(t, err)
	return app
}

// browser keeps the cookies set by previous responses.
type browser struct {
	app     http.Handler
	cookies map[string]*http.Cookie
}

func (b *browser) do(r *http.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		r.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.app.ServeHTTP(rec, r)
	for _, c := range rec.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rec
}

func TestApp_Home(t *testing.T) {
	t.Parallel()
	b := &browser{app: newApp(t), cookies: map[string]*http.Cookie{}}

	rec := b.do(httptest.NewRequest(http.MethodGet, "http://example.com/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, spindle.DefaultContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "en-GB", rec.Header().Get("Content-Language"))
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))
	assert.Contains(t, rec.Body.String(), "<h1>app</h1>")
	assert.Contains(t, rec.Body.String(), "Visits: 1")
	assert.Contains(t, b.cookies, "spindle_session")
	assert.Contains(t, b.cookies, session.LazyCookieName)

	rec = b.do(httptest.NewRequest(http.MethodGet, "http://example.com/?route=common/home", nil))
	assert.Contains(t, rec.Body.String(), "Visits: 2")
}

func TestApp_Subdomain(t *testing.T) {
	t.Parallel()
	app := newApp(t)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://docs.example.com/", nil))
	assert.Contains(t, rec.Body.String(), "<h1>Documentation</h1>")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Host = "bad~name.example.com"
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, r)
	assert.Contains(t, rec.Body.String(), "<h1>app</h1>")
}

func TestApp_NotFound(t *testing.T) {
	t.Parallel()
	app := newApp(t)

	for _, rt := range []string{"missing/page", "common/home._private", "common/home.__construct"} {
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://example.com/?route="+url.QueryEscape(rt), nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, rt)
	}
}

func TestApp_CSRF(t *testing.T) {
	t.Parallel()
	b := &browser{app: newApp(t), cookies: map[string]*http.Cookie{}}

	rec := b.do(httptest.NewRequest(http.MethodGet, "http://example.com/", nil))
	m := tokenPattern.FindStringSubmatch(rec.Body.String())
	require.Len(t, m, 2)

	post := func(token string) *httptest.ResponseRecorder {
		form := url.Values{csrf.FieldName: {token}}
		r := httptest.NewRequest(http.MethodPost, "http://example.com/?route=common/home.reset", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return b.do(r)
	}

	rec = post("forged")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = post(m[1])
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Visits: 1")

	next := tokenPattern.FindStringSubmatch(rec.Body.String())
	require.Len(t, next, 2)
	assert.NotEqual(t, m[1], next[1])

	rec = post(m[1])
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = post(next[1])
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApp_Health(t *testing.T) {
	t.Parallel()
	app := newApp(t,
		spindle.WithCheck("redis", func(context.Context) error { return nil }),
		spindle.WithCheck("postgres", func(context.Context) error { return errors.New("down") }),
	)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NOT_READY: postgres", rec.Body.String())
}

func TestApp_Unrecoverable(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	failing := func(*service.Container) (route.Controller, error) {
		return route.Methods{"index": func(context.Context, *service.Container, *route.Args) route.Result {
			return route.Fail(boom)
		}}, nil
	}
	resolver := route.NewResolver()
	resolver.MustRegister("", "common/home", failing)
	resolver.MustRegister("", "error/not_found", failing)

	app, err := spindle.New(spindle.Config{}, dispatcher.Config{
		DefaultRoute: "common/home",
		ErrorRoute:   "error/not_found",
	}, resolver, newSessions(t))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	resolver := route.NewResolver()
	_, err := spindle.New(spindle.Config{}, dispatcher.DefaultConfig(), nil, newSessions(t))
	assert.ErrorIs(t, err, spindle.ErrNoResolver)

	_, err = spindle.New(spindle.Config{}, dispatcher.DefaultConfig(), resolver, nil)
	assert.ErrorIs(t, err, spindle.ErrNoSessions)

	_, err = spindle.New(spindle.Config{}, dispatcher.DefaultConfig(), resolver, newSessions(t))
	assert.ErrorIs(t, err, route.ErrUnknownRoute)
}
