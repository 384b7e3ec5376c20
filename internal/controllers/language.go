package controllers

import (
	"context"
	"net/http"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/spindle/pkg/logger"
	"github.com/dmitrymomot/spindle/pkg/route"
	"github.com/dmitrymomot/spindle/pkg/service"
	"github.com/dmitrymomot/spindle/pkg/session"
)

// NewLanguage is the listener bound to controller/*/before and after.
// "before" picks the request language, "after" advertises it on the output.
func NewLanguage(*service.Container) (route.Controller, error) {
	return route.Methods{
		"before": selectLanguage,
		"after":  contentLanguage,
	}, nil
}

func selectLanguage(ctx context.Context, sc *service.Container, _ *route.Args) route.Result {
	code := SettingsFrom(sc).Get(SettingLanguage, DefaultLanguage)

	if s, err := service.Get[*session.Session](sc, service.KeySession); err == nil {
		v, ok, err := s.LazyGet(ctx, SettingLanguage)
		if err != nil {
			loggerFrom(sc).WarnContext(ctx, "reading language preference", logger.Error(err))
		} else if preferred, isString := v.(string); ok && isString && preferred != "" {
			code = preferred
		}
	}

	sc.Set(KeyLanguage, parseLanguage(code))
	return route.Continue()
}

func contentLanguage(_ context.Context, sc *service.Container, args *route.Args) route.Result {
	if args.Output == nil {
		return route.Continue()
	}
	if args.Output.Header == nil {
		args.Output.Header = make(http.Header)
	}
	args.Output.Header.Set("Content-Language", languageFrom(sc).String())
	return route.Continue()
}

func languageFrom(sc *service.Container) language.Tag {
	if tag, err := service.Get[language.Tag](sc, KeyLanguage); err == nil {
		return tag
	}
	return parseLanguage(SettingsFrom(sc).Get(SettingLanguage, DefaultLanguage))
}

func parseLanguage(code string) language.Tag {
	tag, err := language.Parse(code)
	if err != nil {
		return language.BritishEnglish
	}
	return tag
}
