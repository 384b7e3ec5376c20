// Package tenant selects the application a request belongs to.
//
// A Resolver extracts a candidate application id from the request, usually
// the first label of the host ("admin" in admin.example.com). Middleware
// validates the candidate against ^[a-z0-9_-]+$ and an optional allow list,
// falls back to the default application when it does not qualify, and stores
// the result in the request context.
//
//	mw := tenant.Middleware(tenant.NewSubdomainResolver(".example.com"),
//		tenant.WithDefault("app"),
//		tenant.WithAllowed("app", "admin"),
//	)
//
// FromContext returns the application id; LoggerExtractor adds it to every
// log record written with the request context.
package tenant
