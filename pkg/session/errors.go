package session

import "errors"

var (
	// ErrInvalidSession indicates the stored fingerprint does not match the client.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrSessionExpired indicates the record outlived the idle timeout.
	ErrSessionExpired = errors.New("session.expired")

	// ErrUnavailable wraps every failure of the backing store.
	ErrUnavailable = errors.New("session.unavailable")

	// ErrTokenGeneration indicates the random source failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrCorruptRecord indicates a stored record could not be decoded.
	ErrCorruptRecord = errors.New("session.corrupt_record")

	ErrNoStore         = errors.New("session.no_store")
	ErrNoCookieManager = errors.New("session.no_cookie_manager")
)
