package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/spindle/pkg/service"
)

func TestContainer(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		sc := service.New(nil)
		sc.Set("config", map[string]string{"a": "b"})

		v, err := sc.Get("config")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "b"}, v)
		assert.True(t, sc.Has("config"))
	})

	t.Run("missing key is an error", func(t *testing.T) {
		t.Parallel()
		sc := service.New(nil)

		v, err := sc.Get("db")
		require.ErrorIs(t, err, service.ErrNotFound)
		assert.Nil(t, v)
	})

	t.Run("seed is copied", func(t *testing.T) {
		t.Parallel()
		seed := map[string]any{"application": "admin"}
		sc := service.New(seed)
		seed["application"] = "changed"

		app, err := service.Get[string](sc, service.KeyApplication)
		require.NoError(t, err)
		assert.Equal(t, "admin", app)
	})

	t.Run("delete and keys", func(t *testing.T) {
		t.Parallel()
		sc := service.New(map[string]any{"b": 1, "a": 2})
		assert.Equal(t, []string{"a", "b"}, sc.Keys())

		sc.Delete("a")
		assert.False(t, sc.Has("a"))
		assert.Equal(t, []string{"b"}, sc.Keys())
	})
}

func TestGet(t *testing.T) {
	t.Parallel()

	sc := service.New(map[string]any{"count": 42})

	t.Run("typed value", func(t *testing.T) {
		n, err := service.Get[int](sc, "count")
		require.NoError(t, err)
		assert.Equal(t, 42, n)
	})

	t.Run("type mismatch", func(t *testing.T) {
		s, err := service.Get[string](sc, "count")
		require.ErrorIs(t, err, service.ErrTypeMismatch)
		assert.Empty(t, s)
	})

	t.Run("must get panics on missing key", func(t *testing.T) {
		assert.Panics(t, func() {
			service.MustGet[int](sc, "missing")
		})
		assert.Equal(t, 42, service.MustGet[int](sc, "count"))
	})
}
