package dispatcher

import "errors"

var (
	// ErrRouteBlocked marks a requested route that addresses a private method.
	ErrRouteBlocked = errors.New("dispatcher.route_blocked")

	// ErrUnrecoverable is returned when a failure occurs after the error
	// action has been consumed.
	ErrUnrecoverable = errors.New("dispatcher.unrecoverable")

	// ErrRedispatchLimit is returned when controllers redispatch more times
	// than allowed within one request.
	ErrRedispatchLimit = errors.New("dispatcher.redispatch_limit")

	// ErrFlush wraps failures of the response sink.
	ErrFlush = errors.New("dispatcher.flush_failed")

	// ErrMissingRoute is returned for a config without default or error route.
	ErrMissingRoute = errors.New("dispatcher.missing_route")
)
