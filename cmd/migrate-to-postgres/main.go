// migrate-to-postgres copies a Baton Quest SQLite database into
// PostgreSQL, for deployments outgrowing the single-file store.
//
// Usage:
//
//	go run ./cmd/migrate-to-postgres \
//	    -sqlite data/batonquest.db \
//	    -pg-host localhost \
//	    -pg-user batonquest \
//	    -pg-password secret \
//	    -pg-database batonquest
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/batonquest/server/internal/database"
)

// tables lists every table to copy, in foreign-key order.
var tables = []struct {
	name    string
	columns []string
}{
	{"players", []string{
		"id", "name", "level", "experience",
		"strength", "agility", "intelligence", "vitality",
		"health", "max_health", "energy", "max_energy", "batons",
		"crafting_level", "crafting_experience",
		"rating", "pvp_wins", "pvp_losses",
		"active_pet_id", "buffs", "last_regen", "created_at",
	}},
	{"inventory", []string{"player_id", "item_id", "quantity"}},
	{"equipment", []string{"player_id", "slot", "item_id"}},
	{"pets", []string{
		"id", "player_id", "template_id", "nickname", "level", "experience",
		"happiness", "hunger", "evolution", "last_fed", "active", "trained_bonus",
	}},
	{"dungeon_runs", []string{
		"id", "player_id", "dungeon_id", "state", "room", "defeated",
		"player_hp", "started_at", "ended_at",
	}},
	{"dungeon_progress", []string{
		"player_id", "dungeon_id", "last_attempt", "best_time_ms", "completions",
	}},
	{"dungeon_records", []string{"dungeon_id", "player_id", "time_ms", "set_at"}},
	{"achievement_progress", []string{"player_id", "counters", "completed", "points", "titles"}},
	{"quest_boards", []string{"player_id", "day", "quests"}},
}

func main() {
	sqlitePath := flag.String("sqlite", "data/batonquest.db", "Path to SQLite database")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "batonquest", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", "batonquest", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Count rows without writing anything")
	flag.Parse()

	log.Println("Baton Quest: SQLite to PostgreSQL migration")

	src, err := sql.Open("sqlite", *sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite database: %v", err)
	}
	defer src.Close()
	if err := src.Ping(); err != nil {
		log.Fatalf("Failed to connect to SQLite database: %v", err)
	}

	// Opening through the store runs the schema migrations on the target.
	target, err := database.Open(database.Config{
		Driver: "postgres",
		Postgres: database.PostgresConfig{
			Host:     *pgHost,
			Port:     *pgPort,
			User:     *pgUser,
			Password: *pgPassword,
			Database: *pgDatabase,
			SSLMode:  *pgSSLMode,
		},
	})
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL database: %v", err)
	}
	defer target.Close()

	if *dryRun {
		log.Println("DRY RUN - no changes will be made")
	}

	var total int64
	for _, t := range tables {
		count, err := copyTable(src, target.DB(), t.name, t.columns, *dryRun)
		if err != nil {
			log.Fatalf("Failed to migrate %s: %v", t.name, err)
		}
		log.Printf("%s: %d rows", t.name, count)
		total += count
	}

	if !*dryRun {
		// The players table uses a sequence on postgres; move it past
		// the copied IDs.
		_, err := target.DB().Exec(
			`SELECT setval(pg_get_serial_sequence('players', 'id'), COALESCE((SELECT MAX(id) FROM players), 1))`)
		if err != nil {
			log.Fatalf("Failed to advance players sequence: %v", err)
		}
	}

	log.Printf("Migration complete: %d rows total", total)
	if *dryRun {
		log.Println("(dry run - nothing written)")
	}
}

// copyTable streams every row of one table from src into dst.
func copyTable(src, dst *sql.DB, table string, columns []string, dryRun bool) (int64, error) {
	colList := strings.Join(columns, ", ")
	rows, err := src.Query("SELECT " + colList + " FROM " + table)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", table, err)
	}
	defer rows.Close()

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, colList, strings.Join(placeholders, ", "))

	var count int64
	for rows.Next() {
		values := make([]any, len(columns))
		scans := make([]any, len(columns))
		for i := range values {
			scans[i] = &values[i]
		}
		if err := rows.Scan(scans...); err != nil {
			return count, fmt.Errorf("failed to scan %s row: %w", table, err)
		}

		if !dryRun {
			if _, err := dst.Exec(insert, values...); err != nil {
				return count, fmt.Errorf("failed to insert %s row: %w", table, err)
			}
		}
		count++
	}
	return count, rows.Err()
}
