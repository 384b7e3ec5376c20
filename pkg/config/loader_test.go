package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/spindle/pkg/config"
)

type defaultsConfig struct {
	Name    string `env:"CFG_TEST_NAME" envDefault:"spindle"`
	Workers int    `env:"CFG_TEST_WORKERS" envDefault:"4"`
}

type overrideConfig struct {
	Name string `env:"CFG_TEST_OVERRIDE" envDefault:"default"`
}

type cachedConfig struct {
	Name string `env:"CFG_TEST_CACHED"`
}

type requiredConfig struct {
	Value string `env:"CFG_TEST_REQUIRED,required"`
}

type envFileConfig struct {
	Value string `env:"CFG_TEST_FROM_FILE"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "spindle", cfg.Name)
		assert.Equal(t, 4, cfg.Workers)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("CFG_TEST_OVERRIDE", "custom")
		var cfg overrideConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "custom", cfg.Name)
	})

	t.Run("cached per type", func(t *testing.T) {
		config.Reset()
		t.Setenv("CFG_TEST_CACHED", "first")
		var first cachedConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("CFG_TEST_CACHED", "second")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Name)

		config.Reset()
		var third cachedConfig
		require.NoError(t, config.Load(&third))
		assert.Equal(t, "second", third.Name)
	})

	t.Run("missing required value", func(t *testing.T) {
		var cfg requiredConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})

	t.Run("nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[defaultsConfig](nil), config.ErrNilPointer)
	})
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CFG_TEST_FROM_FILE=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CFG_TEST_FROM_FILE") })

	require.NoError(t, config.LoadEnv(path))
	var cfg envFileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-file", cfg.Value)

	assert.ErrorIs(t, config.LoadEnv(filepath.Join(t.TempDir(), "missing.env")), config.ErrLoadingEnvFile)
}
