package fingerprint_test

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/spindle/pkg/clientip"
	"github.com/dmitrymomot/spindle/pkg/fingerprint"
)

func sha(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, sha("Mozilla/5.0"+"10.0.0.1"), fingerprint.Generate("Mozilla/5.0", "10.0.0.1"))
	assert.Equal(t, sha("unknown-agent127.0.0.1"), fingerprint.Generate("", ""))
	assert.Len(t, fingerprint.Generate("a", "b"), 64)
	assert.NotEqual(t, fingerprint.Generate("a", "10.0.0.1"), fingerprint.Generate("a", "10.0.0.2"))
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	t.Run("remote addr", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:5000"
		req.Header.Set("User-Agent", "ua")
		assert.Equal(t, fingerprint.Generate("ua", "192.0.2.1"), fingerprint.FromRequest(req))
		assert.True(t, fingerprint.Validate(req, fingerprint.Generate("ua", "192.0.2.1")))
	})

	t.Run("forwarding headers ignored", func(t *testing.T) {
		t.Parallel()
		victim := httptest.NewRequest(http.MethodGet, "/", nil)
		victim.RemoteAddr = "203.0.113.7:5000"
		victim.Header.Set("User-Agent", "ua")

		attacker := httptest.NewRequest(http.MethodGet, "/", nil)
		attacker.RemoteAddr = "198.51.100.9:6000"
		attacker.Header.Set("User-Agent", "ua")
		attacker.Header.Set("X-Forwarded-For", "203.0.113.7")
		attacker = attacker.WithContext(clientip.WithIP(attacker.Context(), "203.0.113.7"))

		assert.NotEqual(t, fingerprint.FromRequest(victim), fingerprint.FromRequest(attacker))
		assert.False(t, fingerprint.Validate(attacker, fingerprint.FromRequest(victim)))
	})

	t.Run("user agent change invalidates", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		stored := fingerprint.FromRequest(req)
		req.Header.Set("User-Agent", "other")
		assert.False(t, fingerprint.Validate(req, stored))
	})
}

func TestFromProxiedRequest(t *testing.T) {
	t.Parallel()

	t.Run("context address wins", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:5000"
		req = req.WithContext(clientip.WithIP(req.Context(), "198.51.100.9"))
		assert.Equal(t, fingerprint.Generate("", "198.51.100.9"), fingerprint.FromProxiedRequest(req))
	})

	t.Run("forwarded header", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.2:5000"
		req.Header.Set("User-Agent", "ua")
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		assert.Equal(t, fingerprint.Generate("ua", "203.0.113.7"), fingerprint.FromProxiedRequest(req))
		assert.NotEqual(t, fingerprint.FromRequest(req), fingerprint.FromProxiedRequest(req))
	})

	t.Run("falls back to remote addr", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:5000"
		assert.Equal(t, fingerprint.FromRequest(req), fingerprint.FromProxiedRequest(req))
	})
}
