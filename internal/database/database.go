// Package database persists game state behind the engine's Store
// interface, speaking either SQLite or PostgreSQL through a small
// dialect layer.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database wraps the SQL connection and implements game.Store.
type Database struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open connects per the config and runs migrations.
func Open(cfg Config) (*Database, error) {
	dialect := NewDialect(cfg.Driver)

	var dsn string
	switch dialect.(type) {
	case *postgresDialect:
		pg := cfg.Postgres
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			pg.Host, pg.Port, pg.User, pg.Password, pg.Database, pg.SSLMode)
	default:
		dir := filepath.Dir(cfg.SQLitePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = cfg.SQLitePath
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, ok := dialect.(*postgresDialect); ok {
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init statement failed: %w", err)
		}
	}

	d := &Database{db: db, dialect: dialect, qb: NewQueryBuilder(dialect)}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return d, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// DB returns the underlying sql.DB for advanced operations.
func (d *Database) DB() *sql.DB {
	return d.db
}

// autoPK returns the dialect's auto-incrementing primary key column.
func (d *Database) autoPK() string {
	if _, ok := d.dialect.(*postgresDialect); ok {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// nameColumn returns the case-insensitive unique text column used for
// player names: CITEXT on postgres, NOCASE collation on sqlite.
func (d *Database) nameColumn() string {
	if _, ok := d.dialect.(*postgresDialect); ok {
		return "CITEXT UNIQUE NOT NULL"
	}
	return "TEXT UNIQUE NOT NULL " + d.dialect.CaseInsensitiveCollation()
}

// migrate creates the schema if it doesn't exist.
func (d *Database) migrate() error {
	migrations := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS players (
			id %s,
			name %s,
			level INTEGER NOT NULL DEFAULT 1,
			experience INTEGER NOT NULL DEFAULT 0,
			strength INTEGER NOT NULL DEFAULT 10,
			agility INTEGER NOT NULL DEFAULT 10,
			intelligence INTEGER NOT NULL DEFAULT 10,
			vitality INTEGER NOT NULL DEFAULT 10,
			health INTEGER NOT NULL DEFAULT 100,
			max_health INTEGER NOT NULL DEFAULT 100,
			energy INTEGER NOT NULL DEFAULT 100,
			max_energy INTEGER NOT NULL DEFAULT 100,
			batons INTEGER NOT NULL DEFAULT 100,
			crafting_level INTEGER NOT NULL DEFAULT 1,
			crafting_experience INTEGER NOT NULL DEFAULT 0,
			rating INTEGER NOT NULL DEFAULT 1000,
			pvp_wins INTEGER NOT NULL DEFAULT 0,
			pvp_losses INTEGER NOT NULL DEFAULT 0,
			active_pet_id TEXT NOT NULL DEFAULT '',
			buffs TEXT NOT NULL DEFAULT '[]',
			last_regen TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, d.autoPK(), d.nameColumn()),

		`CREATE TABLE IF NOT EXISTS inventory (
			player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			item_id TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			UNIQUE(player_id, item_id)
		)`,

		`CREATE TABLE IF NOT EXISTS equipment (
			player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			slot TEXT NOT NULL,
			item_id TEXT NOT NULL,
			UNIQUE(player_id, slot)
		)`,

		`CREATE TABLE IF NOT EXISTS pets (
			id TEXT PRIMARY KEY,
			player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			template_id TEXT NOT NULL,
			nickname TEXT NOT NULL DEFAULT '',
			level INTEGER NOT NULL DEFAULT 1,
			experience INTEGER NOT NULL DEFAULT 0,
			happiness INTEGER NOT NULL DEFAULT 100,
			hunger INTEGER NOT NULL DEFAULT 0,
			evolution INTEGER NOT NULL DEFAULT 1,
			last_fed TIMESTAMP,
			active INTEGER NOT NULL DEFAULT 0,
			trained_bonus TEXT NOT NULL DEFAULT '{}'
		)`,

		`CREATE TABLE IF NOT EXISTS dungeon_runs (
			id TEXT PRIMARY KEY,
			player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			dungeon_id TEXT NOT NULL,
			state INTEGER NOT NULL,
			room INTEGER NOT NULL DEFAULT 0,
			defeated INTEGER NOT NULL DEFAULT 0,
			player_hp INTEGER NOT NULL,
			started_at TIMESTAMP NOT NULL,
			ended_at TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS dungeon_progress (
			player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			dungeon_id TEXT NOT NULL,
			last_attempt TIMESTAMP,
			best_time_ms BIGINT NOT NULL DEFAULT 0,
			completions INTEGER NOT NULL DEFAULT 0,
			UNIQUE(player_id, dungeon_id)
		)`,

		`CREATE TABLE IF NOT EXISTS dungeon_records (
			dungeon_id TEXT PRIMARY KEY,
			player_id BIGINT NOT NULL,
			time_ms BIGINT NOT NULL,
			set_at TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS achievement_progress (
			player_id BIGINT PRIMARY KEY REFERENCES players(id) ON DELETE CASCADE,
			counters TEXT NOT NULL DEFAULT '{}',
			completed TEXT NOT NULL DEFAULT '{}',
			points INTEGER NOT NULL DEFAULT 0,
			titles TEXT NOT NULL DEFAULT '[]'
		)`,

		`CREATE TABLE IF NOT EXISTS quest_boards (
			player_id BIGINT PRIMARY KEY REFERENCES players(id) ON DELETE CASCADE,
			day TEXT NOT NULL,
			quests TEXT NOT NULL DEFAULT '[]'
		)`,

		`CREATE INDEX IF NOT EXISTS idx_pets_player_id ON pets(player_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_player_state ON dungeon_runs(player_id, state)`,
		`CREATE INDEX IF NOT EXISTS idx_inventory_player_id ON inventory(player_id)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
