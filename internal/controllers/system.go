package controllers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/spindle/internal/repository"
	"github.com/dmitrymomot/spindle/pkg/event"
	"github.com/dmitrymomot/spindle/pkg/logger"
	"github.com/dmitrymomot/spindle/pkg/route"
	"github.com/dmitrymomot/spindle/pkg/service"
)

// NewSettings loads the application settings into the container under
// service.KeyConfig. Without a settings source only defaults apply.
func NewSettings(*service.Container) (route.Controller, error) {
	return route.Methods{"index": loadSettings}, nil
}

func loadSettings(ctx context.Context, sc *service.Container, _ *route.Args) route.Result {
	settings := DefaultSettings()

	src, err := service.Get[repository.Settings](sc, KeySettingsSource)
	if err == nil {
		stored, err := src.Settings(ctx, applicationFrom(sc))
		if err != nil {
			return route.Fail(fmt.Errorf("load settings: %w", err))
		}
		settings = merge(settings, stored)
	}

	sc.Set(service.KeyConfig, settings)
	return route.Continue()
}

// NewApplication binds the request logger to the application.
func NewApplication(*service.Container) (route.Controller, error) {
	return route.Methods{"index": bootApplication}, nil
}

func bootApplication(_ context.Context, sc *service.Container, _ *route.Args) route.Result {
	application := applicationFrom(sc)
	if application == "" {
		return route.Continue()
	}
	sc.Set(service.KeyLogger, loggerFrom(sc).With(logger.Application(application)))
	return route.Continue()
}

// NewEvent registers the stored listeners of the application on the
// request event bus.
func NewEvent(*service.Container) (route.Controller, error) {
	return route.Methods{"index": registerEvents}, nil
}

func registerEvents(ctx context.Context, sc *service.Container, _ *route.Args) route.Result {
	src, err := service.Get[repository.Events](sc, KeyEventSource)
	if err != nil {
		return route.Continue()
	}
	bus, err := service.Get[*event.Bus](sc, service.KeyEvents)
	if err != nil {
		return route.Fail(fmt.Errorf("register events: %w", err))
	}

	events, err := src.Events(ctx, applicationFrom(sc))
	if err != nil {
		return route.Fail(fmt.Errorf("load events: %w", err))
	}
	for _, e := range events {
		bus.Register(e.Trigger, route.Parse(e.Route), e.Priority)
	}

	loggerFrom(sc).DebugContext(ctx, "stored listeners registered", slog.Int("count", len(events)))
	return route.Continue()
}

// NewMaintenance redispatches every request to common/maintenance while the
// maintenance setting is "1".
func NewMaintenance(*service.Container) (route.Controller, error) {
	return route.Methods{"index": checkMaintenance}, nil
}

func checkMaintenance(_ context.Context, sc *service.Container, _ *route.Args) route.Result {
	if SettingsFrom(sc).Get(SettingMaintenance, "0") != "1" {
		return route.Continue()
	}
	return route.Redispatch(route.Parse("common/maintenance"))
}
