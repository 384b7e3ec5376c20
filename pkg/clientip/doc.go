// Package clientip resolves the client address of an HTTP request.
//
// An Extractor walks a list of proxy headers in priority order and falls
// back to the connection's remote address. GetIP uses DefaultHeaders, which
// fit a deployment behind Cloudflare or a DigitalOcean load balancer.
// Deployments that accept direct traffic should use New with no headers, so
// that only RemoteAddr is trusted.
//
// Middleware stores the resolved address in the request context; FromContext
// reads it back.
package clientip
