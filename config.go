package spindle

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/dmitrymomot/spindle/pkg/config"
	"github.com/dmitrymomot/spindle/pkg/dispatcher"
)

// Session store backends selectable with SESSION_STORE.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	PipelinePath     string        `env:"PIPELINE_CONFIG_PATH" envDefault:"config/pipeline.yaml"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ReadinessTimeout time.Duration `env:"READINESS_TIMEOUT" envDefault:"2s"`
	// BaseDomain is the host below which the first label names the application.
	BaseDomain string `env:"APP_BASE_DOMAIN"`
	// Applications restricts the accepted application ids. Empty accepts any valid id.
	Applications []string `env:"APP_APPLICATIONS" envSeparator:","`
	SessionStore string   `env:"SESSION_STORE" envDefault:"memory"`
	// SessionCleanupInterval is how often the memory store drops expired records.
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1m"`
}

// Validate rejects a SESSION_STORE outside the known backends. Empty selects memory.
func (c Config) Validate() error {
	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreRedis, "":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSessionStore, c.SessionStore)
	}
}

func (c Config) subdomainSuffix() string {
	if c.BaseDomain == "" {
		return ""
	}
	return "." + strings.TrimPrefix(c.BaseDomain, ".")
}

// LoadPipeline returns the built-in pipeline overlaid with the YAML file at
// path. A missing file keeps the built-in pipeline. A trigger listed in the
// file replaces the built-in listeners of that trigger.
func LoadPipeline(path string) (dispatcher.Config, error) {
	cfg := dispatcher.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err := config.LoadYAML(path, &cfg); err != nil {
		return cfg, errors.Join(ErrPipelineConfig, err)
	}
	return cfg, nil
}
