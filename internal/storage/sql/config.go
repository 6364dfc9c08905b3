package sql

import "time"

// Config holds relational database connection settings
type Config struct {
	// DSN is a go-sql-driver/mysql data source name, e.g.
	// seedroom:secret@tcp(localhost:3306)/seedroom?parseTime=true
	DSN string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns sensible defaults for the database connection
func DefaultConfig() Config {
	return Config{
		DSN:             "seedroom:seedroom@tcp(localhost:3306)/seedroom?charset=utf8mb4&parseTime=true&loc=UTC",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
	}
}
