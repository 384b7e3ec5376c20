package cookie

import "errors"

var (
	// ErrNoSecret is returned by New without any signing secret.
	ErrNoSecret       = errors.New("cookie.no_secret")
	ErrSecretTooShort = errors.New("cookie.secret_too_short")

	ErrCookieNotFound = errors.New("cookie.not_found")

	// ErrInvalidFormat and ErrInvalidSignature reject tampered signed values.
	ErrInvalidFormat    = errors.New("cookie.invalid_format")
	ErrInvalidSignature = errors.New("cookie.invalid_signature")
)
