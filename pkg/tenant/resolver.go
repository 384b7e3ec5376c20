package tenant

import (
	"net"
	"net/http"
	"regexp"
	"strings"
)

var applicationPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Resolver extracts an application id candidate from a request.
// An empty result means the request names no application.
type Resolver interface {
	Resolve(r *http.Request) string
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(r *http.Request) string

func (f ResolverFunc) Resolve(r *http.Request) string { return f(r) }

// SubdomainResolver takes the first host label below Suffix.
type SubdomainResolver struct {
	// Suffix is the base domain including the leading dot, e.g. ".example.com".
	// When empty, hosts with at least three labels yield their first label.
	Suffix string
}

func NewSubdomainResolver(suffix string) *SubdomainResolver {
	return &SubdomainResolver{Suffix: strings.ToLower(suffix)}
}

func (s *SubdomainResolver) Resolve(r *http.Request) string {
	host := strings.ToLower(r.Host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if net.ParseIP(host) != nil {
		return ""
	}

	var labels []string
	if s.Suffix != "" {
		rest, ok := strings.CutSuffix(host, s.Suffix)
		if !ok || rest == "" {
			return ""
		}
		labels = strings.Split(rest, ".")
	} else {
		labels = strings.Split(host, ".")
		if len(labels) < 3 {
			return ""
		}
	}

	if labels[0] == "www" {
		if s.Suffix == "" || len(labels) < 2 {
			return ""
		}
		labels = labels[1:]
	}
	return labels[0]
}

// HeaderResolver reads the application id from a request header.
type HeaderResolver struct {
	Header string
}

func NewHeaderResolver(header string) *HeaderResolver {
	if header == "" {
		header = "X-Application"
	}
	return &HeaderResolver{Header: header}
}

func (h *HeaderResolver) Resolve(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(h.Header))
}

// Validate reports whether id is a well-formed application id.
func Validate(id string) error {
	if !applicationPattern.MatchString(id) {
		return ErrInvalidApplication
	}
	return nil
}
