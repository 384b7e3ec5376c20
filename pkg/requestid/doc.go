// Package requestid tags every request with a correlation id.
//
// Middleware reuses a well-formed X-Request-ID header sent by the client or
// a proxy and otherwise generates a time-ordered UUIDv7. The id is echoed in
// the response header, stored in the request context and, through
// LoggerExtractor, attached to every log record written with that context.
package requestid
