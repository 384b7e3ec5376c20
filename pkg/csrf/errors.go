package csrf

import "errors"

var (
	ErrTokenMismatch   = errors.New("csrf.token_mismatch")
	ErrTokenGeneration = errors.New("csrf.token_generation_failed")
	ErrNoGuard         = errors.New("csrf.no_guard")
)
