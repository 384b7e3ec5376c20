// Package controllers holds the controllers shipped with the engine: the
// configured pre-actions, the lifecycle event listeners and the default
// pages.
package controllers

import (
	"log/slog"
	"maps"

	"github.com/dmitrymomot/spindle/pkg/route"
	"github.com/dmitrymomot/spindle/pkg/service"
)

// Container keys read by the controllers in addition to the service keys.
const (
	KeySettingsSource = "repository.settings"
	KeyEventSource    = "repository.events"
	KeyLanguage       = "language"
)

// Setting names and their defaults.
const (
	SettingLanguage    = "language"
	SettingMaintenance = "maintenance"

	DefaultLanguage = "en-gb"
)

// DocsApplication is the application id of the documentation site.
const DocsApplication = "docs"

// Settings is the effective configuration of the request's application.
type Settings map[string]string

// DefaultSettings returns the values used when the store has none.
func DefaultSettings() Settings {
	return Settings{
		SettingLanguage:    DefaultLanguage,
		SettingMaintenance: "0",
	}
}

// Get returns the value of key or fallback when it is unset.
func (s Settings) Get(key, fallback string) string {
	if v, ok := s[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Register adds every controller of the package to resolver. Shared
// controllers can be overridden per application by registering the same
// route for that application.
func Register(resolver *route.Resolver) {
	resolver.MustRegister("", "system/settings", NewSettings)
	resolver.MustRegister("", "system/application", NewApplication)
	resolver.MustRegister("", "system/event", NewEvent)
	resolver.MustRegister("", "system/maintenance", NewMaintenance)
	resolver.MustRegister("", "event/language", NewLanguage)
	resolver.MustRegister("", "common/home", NewHome)
	resolver.MustRegister("", "common/maintenance", NewMaintenancePage)
	resolver.MustRegister("", "error/not_found", NewNotFound)

	resolver.MustRegister(DocsApplication, "common/home", NewDocsHome)
}

// SettingsFrom returns the settings loaded by system/settings, or the
// defaults when that pre-action has not run.
func SettingsFrom(sc *service.Container) Settings {
	if s, err := service.Get[Settings](sc, service.KeyConfig); err == nil {
		return s
	}
	return DefaultSettings()
}

func loggerFrom(sc *service.Container) *slog.Logger {
	if l, err := service.Get[*slog.Logger](sc, service.KeyLogger); err == nil && l != nil {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

func applicationFrom(sc *service.Container) string {
	application, _ := service.Get[string](sc, service.KeyApplication)
	return application
}

func merge(base Settings, override map[string]string) Settings {
	out := maps.Clone(base)
	maps.Copy(out, override)
	return out
}

func page(status int, lang, title, body string) route.Output {
	return route.HTML(status, `<!doctype html><html lang="`+lang+`"><head><meta charset="utf-8"><title>`+
		title+`</title></head><body>`+body+`</body></html>`)
}
