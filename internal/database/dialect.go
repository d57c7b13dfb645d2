package database

import (
	"fmt"
	"strings"
)

// Dialect covers the syntax differences between the two supported
// backends. Everything else goes through database/sql unchanged.
type Dialect interface {
	// DriverName is the name registered with sql.Open.
	DriverName() string

	// Placeholder renders the parameter marker for a 1-indexed position.
	Placeholder(position int) string

	// SupportsLastInsertID reports whether Result.LastInsertId works.
	// When false, inserts needing the new ID use a RETURNING clause.
	SupportsLastInsertID() bool

	// ReturningClause renders the RETURNING suffix for one column, or
	// "" when the dialect doesn't need it.
	ReturningClause(column string) string

	// InitStatements run once per connection pool, before migrations.
	InitStatements() []string

	// IsDuplicateKeyError reports a unique constraint violation.
	IsDuplicateKeyError(err error) bool

	// CaseInsensitiveCollation is appended to text columns that compare
	// case-insensitively. Postgres uses CITEXT instead and returns "".
	CaseInsensitiveCollation() string
}

// NewDialect picks the dialect for a driver name. Anything that isn't
// postgres falls back to sqlite, the default store.
func NewDialect(driver string) Dialect {
	if driver == "postgres" {
		return &postgresDialect{}
	}
	return &sqliteDialect{}
}

type sqliteDialect struct{}

func (*sqliteDialect) DriverName() string           { return "sqlite" }
func (*sqliteDialect) Placeholder(int) string       { return "?" }
func (*sqliteDialect) SupportsLastInsertID() bool   { return true }
func (*sqliteDialect) ReturningClause(string) string { return "" }

func (*sqliteDialect) InitStatements() []string {
	return []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

func (*sqliteDialect) IsDuplicateKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (*sqliteDialect) CaseInsensitiveCollation() string { return "COLLATE NOCASE" }

type postgresDialect struct{}

func (*postgresDialect) DriverName() string         { return "postgres" }
func (*postgresDialect) SupportsLastInsertID() bool { return false }

func (*postgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

func (*postgresDialect) ReturningClause(column string) string {
	return " RETURNING " + column
}

func (*postgresDialect) InitStatements() []string {
	return []string{
		// Case-insensitive player names without a collation clause.
		"CREATE EXTENSION IF NOT EXISTS citext",
	}
}

func (*postgresDialect) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	// 23505 is unique_violation.
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "23505") ||
		strings.Contains(msg, "unique constraint")
}

func (*postgresDialect) CaseInsensitiveCollation() string { return "" }
