package route

import "errors"

var (
	// ErrForbiddenMethod is returned when a route addresses a reserved method.
	ErrForbiddenMethod = errors.New("route.forbidden_method")

	// ErrControllerNotFound is returned when no controller is registered for the route.
	ErrControllerNotFound = errors.New("route.controller_not_found")

	// ErrMethodNotFound is returned when the controller has no such method.
	ErrMethodNotFound = errors.New("route.method_not_found")

	// ErrNotFound is returned by a Factory when neither tier has an entry.
	ErrNotFound = errors.New("route.not_found")

	// ErrDuplicateRoute is returned when a type name is registered twice.
	ErrDuplicateRoute = errors.New("route.duplicate")

	// ErrInvalidRoute is returned when a route sanitises to an empty string.
	ErrInvalidRoute = errors.New("route.invalid")

	// ErrUnknownRoute is returned by Validate for routes with no registration.
	ErrUnknownRoute = errors.New("route.unknown")

	errNilFailure = errors.New("route.failure_without_error")
)
