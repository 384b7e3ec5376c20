package controllers

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/spindle/pkg/csrf"
	"github.com/dmitrymomot/spindle/pkg/route"
	"github.com/dmitrymomot/spindle/pkg/service"
	"github.com/dmitrymomot/spindle/pkg/session"
)

const visitsKey = "visits"

// NewHome renders the landing page and counts visits in the main session.
func NewHome(*service.Container) (route.Controller, error) {
	return route.Methods{
		"index": home,
		"reset": resetVisits,
	}, nil
}

func home(ctx context.Context, sc *service.Container, _ *route.Args) route.Result {
	visits := 0
	token := ""

	if s, err := service.Get[*session.Session](sc, service.KeySession); err == nil {
		v, _, err := s.Get(ctx, visitsKey)
		if err != nil {
			return route.Fail(err)
		}
		visits = toInt(v) + 1
		if err := s.Set(ctx, visitsKey, visits); err != nil {
			return route.Fail(err)
		}
	}
	if g, err := service.Get[*csrf.Guard](sc, service.KeyCSRF); err == nil {
		token = g.Token()
	}

	body := fmt.Sprintf(`<h1>%s</h1><p>Visits: %d</p>`+
		`<form method="post" action="/?route=common/home.reset">`+
		`<input type="hidden" name="%s" value="%s"><button type="submit">Reset</button></form>`,
		html.EscapeString(applicationFrom(sc)), visits,
		csrf.FieldName, html.EscapeString(token),
	)
	return route.Render(page(http.StatusOK, languageFrom(sc).String(), "Home", body))
}

func resetVisits(ctx context.Context, sc *service.Container, _ *route.Args) route.Result {
	s, err := service.Get[*session.Session](sc, service.KeySession)
	if err != nil {
		return route.Fail(err)
	}
	if err := s.Delete(ctx, visitsKey); err != nil {
		return route.Fail(err)
	}
	// The submitted token is spent; the re-rendered form carries a new one.
	if g, err := service.Get[*csrf.Guard](sc, service.KeyCSRF); err == nil {
		if err := g.Regenerate(ctx); err != nil {
			return route.Fail(err)
		}
	}
	return route.Redispatch(route.Parse("common/home"))
}

// NewDocsHome renders the landing page of the documentation application.
func NewDocsHome(*service.Container) (route.Controller, error) {
	return route.Methods{
		"index": func(_ context.Context, sc *service.Container, _ *route.Args) route.Result {
			return route.Render(page(http.StatusOK, languageFrom(sc).String(), "Documentation",
				`<h1>Documentation</h1><p><a href="/?route=common/home">Home</a></p>`))
		},
	}, nil
}

// NewMaintenancePage answers 503 while the application is in maintenance.
func NewMaintenancePage(*service.Container) (route.Controller, error) {
	return route.Methods{
		"index": func(_ context.Context, sc *service.Container, _ *route.Args) route.Result {
			out := page(http.StatusServiceUnavailable, languageFrom(sc).String(), http.StatusText(http.StatusServiceUnavailable),
				`<h1>Down for maintenance</h1><p>Please try again later.</p>`)
			out.Header.Set("Retry-After", "300")
			return route.Render(out)
		},
	}, nil
}

// NewNotFound is the error action.
func NewNotFound(*service.Container) (route.Controller, error) {
	return route.Methods{
		"index": func(_ context.Context, sc *service.Container, _ *route.Args) route.Result {
			return route.Render(page(http.StatusNotFound, languageFrom(sc).String(), http.StatusText(http.StatusNotFound),
				`<h1>Page not found</h1><p><a href="/?route=common/home">Back to the home page</a></p>`))
		},
	}, nil
}

// toInt reads a counter that may have been decoded from JSON.
func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}
