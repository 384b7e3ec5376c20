// Package config loads application configuration from the environment and
// from YAML files.
//
// Load parses environment variables into a struct through
// github.com/caarlos0/env/v11 tags, after reading an optional .env file with
// github.com/joho/godotenv. Each configuration type is parsed once per
// process and served from a cache afterwards; Reset clears the cache in tests.
//
//	var cfg session.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// LoadYAML decodes structured files such as the dispatch pipeline:
//
//	cfg := dispatcher.DefaultConfig()
//	if err := config.LoadYAML("config/pipeline.yaml", &cfg); err != nil {
//		return err
//	}
//
// Errors are sentinels joined with the underlying cause.
package config
