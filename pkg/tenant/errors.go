package tenant

import "errors"

var (
	ErrInvalidApplication = errors.New("tenant.invalid_application")
	ErrUnknownApplication = errors.New("tenant.unknown_application")
)
