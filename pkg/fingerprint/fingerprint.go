package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/dmitrymomot/spindle/pkg/clientip"
)

const (
	UnknownAgent = "unknown-agent"
	UnknownIP    = "127.0.0.1"
)

// Generate returns hex(sha256(userAgent + ip)).
func Generate(userAgent, ip string) string {
	if userAgent == "" {
		userAgent = UnknownAgent
	}
	if ip == "" {
		ip = UnknownIP
	}
	sum := sha256.Sum256([]byte(userAgent + ip))
	return hex.EncodeToString(sum[:])
}

// FromRequest fingerprints r with the address of the connection peer.
// Forwarding headers are ignored, so a client cannot claim another address.
func FromRequest(r *http.Request) string {
	return Generate(r.UserAgent(), clientip.RemoteIP(r))
}

// FromProxiedRequest fingerprints r with the address reported by a trusted
// reverse proxy. The value set by clientip.Middleware is preferred;
// otherwise it is resolved with clientip.GetIP.
// Use it only when every request passes through a proxy that overwrites
// the forwarding headers.
func FromProxiedRequest(r *http.Request) string {
	ip := clientip.FromContext(r.Context())
	if ip == "" {
		ip = clientip.GetIP(r)
	}
	return Generate(r.UserAgent(), ip)
}

// Validate reports whether r still produces the stored fingerprint.
func Validate(r *http.Request, stored string) bool {
	return FromRequest(r) == stored
}
