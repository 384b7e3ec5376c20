package event

import "errors"

var (
	// ErrListenerFailed wraps failures returned by listeners during Trigger.
	ErrListenerFailed = errors.New("event.listener_failed")

	// ErrEmptyTrigger is returned when registering an empty trigger pattern.
	ErrEmptyTrigger = errors.New("event.empty_trigger")
)
