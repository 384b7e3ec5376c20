package clientip

import (
	"net"
	"net/http"
	"strings"
)

// DefaultHeaders are checked in order by GetIP. X-Forwarded-For may carry
// a list; its first valid entry wins.
var DefaultHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// Extractor resolves client addresses from a fixed list of trusted headers.
type Extractor struct {
	headers []string
}

// New creates an Extractor trusting headers in the given order.
func New(headers ...string) *Extractor {
	return &Extractor{headers: headers}
}

var defaultExtractor = New(DefaultHeaders...)

// GetIP returns the client IP using DefaultHeaders. Returns an empty string
// when nothing parses.
func GetIP(r *http.Request) string {
	return defaultExtractor.IP(r)
}

// IP returns the normalized client address of r.
func (e *Extractor) IP(r *http.Request) string {
	for _, name := range e.headers {
		value := r.Header.Get(name)
		if value == "" {
			continue
		}
		for candidate := range strings.SplitSeq(value, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}
	return RemoteIP(r)
}

// RemoteIP returns the address of the connection peer, ignoring headers.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
