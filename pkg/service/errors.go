package service

import "errors"

var (
	// ErrNotFound is returned when no service is registered under the key.
	ErrNotFound = errors.New("service.not_found")

	// ErrTypeMismatch is returned when the stored service has a different type.
	ErrTypeMismatch = errors.New("service.type_mismatch")
)
