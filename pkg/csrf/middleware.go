package csrf

import (
	"context"
	"net/http"
)

// StoreFunc returns the lazy store of the request, typically the session
// opened by an earlier middleware.
type StoreFunc func(r *http.Request) (LazyStore, bool)

// Middleware builds a Guard for every request, stores it in the request
// context and rejects unsafe requests without a matching token.
func Middleware(store StoreFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := store(r)
			if !ok {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			g, err := New(r.Context(), s)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
			if unsafeMethod(r.Method) && !g.Validate(candidate(r)) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithGuard(r.Context(), g)))
		})
	}
}

// Check validates the token of r against the guard in its context.
func Check(ctx context.Context, r *http.Request) error {
	g, ok := FromContext(ctx)
	if !ok {
		return ErrNoGuard
	}
	if !g.Validate(candidate(r)) {
		return ErrTokenMismatch
	}
	return nil
}

func candidate(r *http.Request) string {
	if v := r.Header.Get(HeaderName); v != "" {
		return v
	}
	return r.PostFormValue(FieldName)
}

func unsafeMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
