package database

import (
	"errors"
	"testing"
)

func TestQueryBuilderRebind(t *testing.T) {
	tests := []struct {
		name     string
		driver   string
		query    string
		expected string
	}{
		{
			name:     "sqlite passthrough",
			driver:   "sqlite",
			query:    "SELECT * FROM players WHERE id = ? AND name = ?",
			expected: "SELECT * FROM players WHERE id = ? AND name = ?",
		},
		{
			name:     "postgres renumbers",
			driver:   "postgres",
			query:    "SELECT * FROM players WHERE id = ? AND name = ?",
			expected: "SELECT * FROM players WHERE id = $1 AND name = $2",
		},
		{
			name:     "postgres no placeholders",
			driver:   "postgres",
			query:    "SELECT COUNT(*) FROM players",
			expected: "SELECT COUNT(*) FROM players",
		},
		{
			name:     "postgres many placeholders",
			driver:   "postgres",
			query:    "INSERT INTO inventory (player_id, item_id, quantity) VALUES (?, ?, ?)",
			expected: "INSERT INTO inventory (player_id, item_id, quantity) VALUES ($1, $2, $3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qb := NewQueryBuilder(NewDialect(tt.driver))
			if got := qb.Build(tt.query); got != tt.expected {
				t.Errorf("Build() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBuildWithReturning(t *testing.T) {
	query := "INSERT INTO players (name) VALUES (?)"

	sqlite := NewQueryBuilder(NewDialect("sqlite"))
	if got := sqlite.BuildWithReturning(query, "id"); got != query {
		t.Errorf("SQLite should not append RETURNING, got %q", got)
	}

	pg := NewQueryBuilder(NewDialect("postgres"))
	want := "INSERT INTO players (name) VALUES ($1) RETURNING id"
	if got := pg.BuildWithReturning(query, "id"); got != want {
		t.Errorf("BuildWithReturning() = %q, want %q", got, want)
	}
}

func TestDuplicateKeyDetection(t *testing.T) {
	sqlite := NewDialect("sqlite")
	pg := NewDialect("postgres")

	if !sqlite.IsDuplicateKeyError(errors.New("UNIQUE constraint failed: players.name")) {
		t.Error("SQLite unique violation not detected")
	}
	if sqlite.IsDuplicateKeyError(errors.New("no such table: players")) {
		t.Error("Unrelated SQLite error misclassified")
	}
	if sqlite.IsDuplicateKeyError(nil) {
		t.Error("nil misclassified as duplicate key")
	}

	if !pg.IsDuplicateKeyError(errors.New(`pq: duplicate key value violates unique constraint "players_name_key"`)) {
		t.Error("Postgres unique violation not detected")
	}
	if pg.IsDuplicateKeyError(errors.New("pq: relation does not exist")) {
		t.Error("Unrelated Postgres error misclassified")
	}
}

func TestNewDialectFallsBackToSQLite(t *testing.T) {
	if NewDialect("").DriverName() != "sqlite" {
		t.Error("Empty driver should default to sqlite")
	}
	if NewDialect("postgres").DriverName() != "postgres" {
		t.Error("Expected postgres dialect")
	}
}
