package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups non-nil errors under "errors". All nil yields an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier. Empty ids yield an empty Attr.
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

// SessionID records a session identifier. Only a short prefix is logged so
// records cannot be used to replay a session.
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return slog.String("session_id", id)
}

func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Application records the application id the request resolved to.
func Application(id string) slog.Attr {
	return slog.String("application", id)
}

// Route records a route id.
func Route(id string) slog.Attr {
	return slog.String("route", id)
}

// Stage records the pipeline stage.
func Stage(name string) slog.Attr {
	return slog.String("stage", name)
}

// Event records the event name.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
