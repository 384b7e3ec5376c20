package config

import "errors"

var (
	// ErrParsingConfig is returned when the environment cannot be parsed into the struct.
	ErrParsingConfig = errors.New("config.parse_failed")

	// ErrLoadingEnvFile is returned when an explicitly requested .env file cannot be read.
	ErrLoadingEnvFile = errors.New("config.env_file_failed")

	// ErrReadingFile is returned when a YAML file cannot be read.
	ErrReadingFile = errors.New("config.read_failed")

	// ErrDecodingFile is returned when a YAML file is malformed.
	ErrDecodingFile = errors.New("config.decode_failed")

	ErrNilPointer = errors.New("config.nil_pointer")
)
