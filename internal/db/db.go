// Package db opens database connections for the supported backends and
// provisions the organization schema in each backend's SQL dialect.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL syntax variant of a backend.
type Dialect string

const (
	// DialectSQLite is the embedded file-based backend.
	DialectSQLite Dialect = "sqlite"
	// DialectMySQL is the MySQL-compatible backend.
	DialectMySQL Dialect = "mysql"
	// DialectPostgres is the Postgres-compatible backend.
	DialectPostgres Dialect = "postgres"
)

// driverFor maps a dialect to its registered database/sql driver name.
var driverFor = map[Dialect]string{
	DialectSQLite:   "sqlite",
	DialectMySQL:    "mysql",
	DialectPostgres: "pgx",
}

// Open opens a connection for the given backend using the given DSN and verifies
// it with a ping. backend must be one of "sqlite", "mysql", or "postgres".
// Caller must call Close when done.
func Open(backend, dsn string) (*sql.DB, Dialect, error) {
	dialect := Dialect(backend)
	driver, ok := driverFor[dialect]
	if !ok {
		return nil, "", fmt.Errorf("unknown database backend %q", backend)
	}
	if dsn == "" {
		return nil, "", fmt.Errorf("empty DSN for backend %q", backend)
	}
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, "", err
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, "", err
	}
	return conn, dialect, nil
}
