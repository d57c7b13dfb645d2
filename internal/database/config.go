package database

import "time"

// Config selects and tunes the storage backend.
type Config struct {
	// Driver is "sqlite" or "postgres".
	Driver string

	// SQLitePath is the database file when Driver is "sqlite". Parent
	// directories are created on open.
	SQLitePath string

	Postgres PostgresConfig
}

// PostgresConfig holds the PostgreSQL DSN pieces and pool settings.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns a SQLite config at the given path, the setup
// used by tests and single-node deployments.
func DefaultConfig(sqlitePath string) Config {
	return Config{
		Driver:     "sqlite",
		SQLitePath: sqlitePath,
	}
}
