package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/batonquest/server/internal/dungeon"
)

// GetActiveRun returns the player's in-progress run, or nil when none.
func (d *Database) GetActiveRun(playerID int64) (*dungeon.Run, error) {
	query := d.qb.Build(
		`SELECT id, player_id, dungeon_id, state, room, defeated, player_hp, started_at, ended_at
		 FROM dungeon_runs WHERE player_id = ? AND state = ?`)
	row := d.db.QueryRow(query, playerID, int(dungeon.StateInProgress))

	r := &dungeon.Run{}
	var state int
	var endedAt sql.NullTime
	err := row.Scan(&r.ID, &r.PlayerID, &r.DungeonID, &state, &r.Room, &r.Defeated, &r.PlayerHP, &r.StartedAt, &endedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load active run for player %d: %w", playerID, err)
	}

	r.State = dungeon.State(state)
	if endedAt.Valid {
		r.EndedAt = endedAt.Time
	}
	return r, nil
}

// SaveRun upserts a run row.
func (d *Database) SaveRun(r *dungeon.Run) error {
	var endedAt any
	if !r.EndedAt.IsZero() {
		endedAt = r.EndedAt
	}

	query := d.qb.Build(
		`UPDATE dungeon_runs SET state = ?, room = ?, defeated = ?, player_hp = ?, ended_at = ?
		 WHERE id = ?`)
	result, err := d.db.Exec(query, int(r.State), r.Room, r.Defeated, r.PlayerHP, endedAt, r.ID)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", r.ID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		return nil
	}

	insert := d.qb.Build(
		`INSERT INTO dungeon_runs (id, player_id, dungeon_id, state, room, defeated, player_hp, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = d.db.Exec(insert,
		r.ID, r.PlayerID, r.DungeonID, int(r.State), r.Room, r.Defeated, r.PlayerHP, r.StartedAt, endedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", r.ID, err)
	}
	return nil
}

// GetDungeonProgress returns the player's standing with a dungeon. A
// missing row comes back zero-valued, never as an error.
func (d *Database) GetDungeonProgress(playerID int64, dungeonID string) (*dungeon.Progress, error) {
	query := d.qb.Build(
		`SELECT last_attempt, best_time_ms, completions
		 FROM dungeon_progress WHERE player_id = ? AND dungeon_id = ?`)
	row := d.db.QueryRow(query, playerID, dungeonID)

	p := &dungeon.Progress{PlayerID: playerID, DungeonID: dungeonID}
	var lastAttempt sql.NullTime
	var bestMs int64
	err := row.Scan(&lastAttempt, &bestMs, &p.Completions)
	if err == sql.ErrNoRows {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dungeon progress: %w", err)
	}

	if lastAttempt.Valid {
		p.LastAttempt = lastAttempt.Time
	}
	p.BestTime = time.Duration(bestMs) * time.Millisecond
	return p, nil
}

// SaveDungeonProgress upserts the player's standing.
func (d *Database) SaveDungeonProgress(p *dungeon.Progress) error {
	var lastAttempt any
	if !p.LastAttempt.IsZero() {
		lastAttempt = p.LastAttempt
	}
	bestMs := p.BestTime.Milliseconds()

	query := d.qb.Build(
		`UPDATE dungeon_progress SET last_attempt = ?, best_time_ms = ?, completions = ?
		 WHERE player_id = ? AND dungeon_id = ?`)
	result, err := d.db.Exec(query, lastAttempt, bestMs, p.Completions, p.PlayerID, p.DungeonID)
	if err != nil {
		return fmt.Errorf("failed to save dungeon progress: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		return nil
	}

	insert := d.qb.Build(
		`INSERT INTO dungeon_progress (player_id, dungeon_id, last_attempt, best_time_ms, completions)
		 VALUES (?, ?, ?, ?, ?)`)
	if _, err := d.db.Exec(insert, p.PlayerID, p.DungeonID, lastAttempt, bestMs, p.Completions); err != nil {
		return fmt.Errorf("failed to insert dungeon progress: %w", err)
	}
	return nil
}

// GetDungeonRecord returns the dungeon-wide fastest clear. A missing
// row comes back zero-valued.
func (d *Database) GetDungeonRecord(dungeonID string) (*dungeon.Record, error) {
	query := d.qb.Build(
		`SELECT player_id, time_ms, set_at FROM dungeon_records WHERE dungeon_id = ?`)
	row := d.db.QueryRow(query, dungeonID)

	r := &dungeon.Record{DungeonID: dungeonID}
	var timeMs int64
	var setAt sql.NullTime
	err := row.Scan(&r.PlayerID, &timeMs, &setAt)
	if err == sql.ErrNoRows {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dungeon record: %w", err)
	}

	r.Time = time.Duration(timeMs) * time.Millisecond
	if setAt.Valid {
		r.SetAt = setAt.Time
	}
	return r, nil
}

// SaveDungeonRecord upserts the fastest clear.
func (d *Database) SaveDungeonRecord(r *dungeon.Record) error {
	query := d.qb.Build(
		`UPDATE dungeon_records SET player_id = ?, time_ms = ?, set_at = ? WHERE dungeon_id = ?`)
	result, err := d.db.Exec(query, r.PlayerID, r.Time.Milliseconds(), r.SetAt, r.DungeonID)
	if err != nil {
		return fmt.Errorf("failed to save dungeon record: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		return nil
	}

	insert := d.qb.Build(
		`INSERT INTO dungeon_records (dungeon_id, player_id, time_ms, set_at) VALUES (?, ?, ?, ?)`)
	if _, err := d.db.Exec(insert, r.DungeonID, r.PlayerID, r.Time.Milliseconds(), r.SetAt); err != nil {
		return fmt.Errorf("failed to insert dungeon record: %w", err)
	}
	return nil
}
