package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type cacheEntry struct {
	once  sync.Once
	value any
	err   error
}

var (
	cacheMu sync.Mutex
	cache   = make(map[reflect.Type]*cacheEntry)

	defaultEnvLoaded sync.Once
)

// Load parses the environment into v using `env` struct tags. The default
// .env file is read once per process if it exists. Each type is parsed once;
// later calls for the same type copy the cached value.
//
//	type DatabaseConfig struct {
//		Host string `env:"DB_HOST" envDefault:"localhost"`
//		Port int    `env:"DB_PORT" envDefault:"5432"`
//	}
//
//	var db DatabaseConfig
//	if err := config.Load(&db); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	defaultEnvLoaded.Do(func() {
		// the file is optional
		_ = godotenv.Load()
	})

	entry := entryFor(reflect.TypeFor[T]())
	entry.once.Do(func() {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			entry.err = errors.Join(ErrParsingConfig, err)
			return
		}
		entry.value = parsed
	})
	if entry.err != nil {
		return entry.err
	}
	*v = entry.value.(T)
	return nil
}

// MustLoad is Load that panics on error.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// LoadEnv reads the given .env files into the process environment without
// overriding variables that are already set.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Reset drops every cached configuration. Intended for tests.
func Reset() {
	cacheMu.Lock()
	clear(cache)
	cacheMu.Unlock()
}

func entryFor(t reflect.Type) *cacheEntry {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	e, ok := cache[t]
	if !ok {
		e = &cacheEntry{}
		cache[t] = e
	}
	return e
}
