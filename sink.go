package spindle

import (
	"context"
	"net/http"
	"slices"

	"github.com/dmitrymomot/spindle/pkg/route"
)

// DefaultContentType is sent when the output sets no Content-Type.
const DefaultContentType = "text/html; charset=utf-8"

// HTTPSink writes dispatcher output to a response writer.
type HTTPSink struct {
	w       http.ResponseWriter
	written bool
}

func NewHTTPSink(w http.ResponseWriter) *HTTPSink {
	return &HTTPSink{w: w}
}

// Flush copies the output headers, writes the status (200 when unset) and
// the body.
func (s *HTTPSink) Flush(_ context.Context, out route.Output) error {
	h := s.w.Header()
	for k, v := range out.Header {
		h[k] = slices.Clone(v)
	}
	if h.Get("Content-Type") == "" {
		h.Set("Content-Type", DefaultContentType)
	}

	status := out.Status
	if status == 0 {
		status = http.StatusOK
	}
	s.w.WriteHeader(status)
	s.written = true

	if len(out.Body) == 0 {
		return nil
	}
	_, err := s.w.Write(out.Body)
	return err
}

// Written reports whether the status line has been sent.
func (s *HTTPSink) Written() bool { return s.written }
