package pg

import "errors"

var (
	ErrFailedToOpenDBConnection = errors.New("pg.connection_failed")
	ErrEmptyConnectionString    = errors.New("pg.empty_connection_string")
	ErrHealthcheckFailed        = errors.New("pg.healthcheck_failed")
	ErrFailedToParseDBConfig    = errors.New("pg.invalid_config")
	ErrFailedToApplyMigrations  = errors.New("pg.migrations_failed")
	ErrMigrationsDirNotFound    = errors.New("pg.migrations_dir_not_found")
	ErrMigrationPathNotProvided = errors.New("pg.migrations_path_missing")
	ErrUnknownConnection        = errors.New("pg.unknown_connection")
	ErrManagerClosed            = errors.New("pg.manager_closed")
)
