package spindle

import "errors"

var (
	ErrNoResolver     = errors.New("spindle.no_resolver")
	ErrNoSessions     = errors.New("spindle.no_session_manager")
	ErrPipelineConfig = errors.New("spindle.pipeline_config")

	ErrUnknownSessionStore = errors.New("spindle.unknown_session_store")
)
