package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/spindle/pkg/config"
)

type pipelineFile struct {
	Application string                    `yaml:"application"`
	PreActions  []string                  `yaml:"pre_actions"`
	Events      map[string]map[int]string `yaml:"events"`
	Limit       int                       `yaml:"limit"`
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	write := func(t *testing.T, body string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "pipeline.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	t.Run("decodes over defaults", func(t *testing.T) {
		t.Parallel()
		path := write(t, `
application: admin
pre_actions: [system/settings, system/maintenance]
events:
  controller/*/before:
    0: event/language.before
    10: event/audit.before
`)
		cfg := pipelineFile{Application: "app", Limit: 32}
		require.NoError(t, config.LoadYAML(path, &cfg))

		assert.Equal(t, "admin", cfg.Application)
		assert.Equal(t, []string{"system/settings", "system/maintenance"}, cfg.PreActions)
		assert.Equal(t, "event/audit.before", cfg.Events["controller/*/before"][10])
		assert.Equal(t, 32, cfg.Limit)
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		t.Parallel()
		cfg := pipelineFile{Application: "app"}
		require.NoError(t, config.LoadYAML(write(t, "\n"), &cfg))
		assert.Equal(t, "app", cfg.Application)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		var cfg pipelineFile
		assert.ErrorIs(t, config.LoadYAML(write(t, "bogus: 1\n"), &cfg), config.ErrDecodingFile)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		var cfg pipelineFile
		assert.ErrorIs(t, config.LoadYAML(filepath.Join(t.TempDir(), "nope.yaml"), &cfg), config.ErrReadingFile)
	})
}
