// Package fingerprint derives a client fingerprint that binds a session to
// the browser and network address it was created from.
//
// The fingerprint is the hex SHA-256 of the User-Agent followed by the client
// IP. Missing values are replaced with fixed placeholders so that clients
// without a User-Agent still get a stable value.
//
// FromRequest takes the IP from the connection peer. Behind a reverse proxy
// that rewrites X-Forwarded-For and friends, FromProxiedRequest reads the
// forwarded address instead.
package fingerprint
