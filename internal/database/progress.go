package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/batonquest/server/internal/achievement"
	"github.com/batonquest/server/internal/quest"
)

// GetAchievementProgress loads a player's milestone counters. A player
// with no row yet gets a fresh, empty progress.
func (d *Database) GetAchievementProgress(playerID int64) (*achievement.Progress, error) {
	query := d.qb.Build(
		`SELECT counters, completed, points, titles FROM achievement_progress WHERE player_id = ?`)
	row := d.db.QueryRow(query, playerID)

	var countersJSON, completedJSON, titlesJSON string
	p := achievement.NewProgress(playerID)
	err := row.Scan(&countersJSON, &completedJSON, &p.Points, &titlesJSON)
	if err == sql.ErrNoRows {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load achievement progress: %w", err)
	}

	if err := json.Unmarshal([]byte(countersJSON), &p.Counters); err != nil {
		return nil, fmt.Errorf("failed to decode achievement counters: %w", err)
	}
	if err := json.Unmarshal([]byte(completedJSON), &p.Completed); err != nil {
		return nil, fmt.Errorf("failed to decode completed achievements: %w", err)
	}
	if err := json.Unmarshal([]byte(titlesJSON), &p.Titles); err != nil {
		return nil, fmt.Errorf("failed to decode titles: %w", err)
	}
	if p.Counters == nil {
		p.Counters = make(map[achievement.Metric]int)
	}
	if p.Completed == nil {
		p.Completed = make(map[string]bool)
	}
	return p, nil
}

// SaveAchievementProgress upserts a player's milestone counters.
func (d *Database) SaveAchievementProgress(p *achievement.Progress) error {
	countersJSON, err := json.Marshal(p.Counters)
	if err != nil {
		return fmt.Errorf("failed to encode achievement counters: %w", err)
	}
	completedJSON, err := json.Marshal(p.Completed)
	if err != nil {
		return fmt.Errorf("failed to encode completed achievements: %w", err)
	}
	titles := p.Titles
	if titles == nil {
		titles = []string{}
	}
	titlesJSON, err := json.Marshal(titles)
	if err != nil {
		return fmt.Errorf("failed to encode titles: %w", err)
	}

	query := d.qb.Build(
		`UPDATE achievement_progress SET counters = ?, completed = ?, points = ?, titles = ?
		 WHERE player_id = ?`)
	result, err := d.db.Exec(query,
		string(countersJSON), string(completedJSON), p.Points, string(titlesJSON), p.PlayerID)
	if err != nil {
		return fmt.Errorf("failed to save achievement progress: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		return nil
	}

	insert := d.qb.Build(
		`INSERT INTO achievement_progress (player_id, counters, completed, points, titles)
		 VALUES (?, ?, ?, ?, ?)`)
	_, err = d.db.Exec(insert,
		p.PlayerID, string(countersJSON), string(completedJSON), p.Points, string(titlesJSON))
	if err != nil {
		return fmt.Errorf("failed to insert achievement progress: %w", err)
	}
	return nil
}

// GetQuestBoard loads a player's daily slate, or nil when none has been
// dealt yet.
func (d *Database) GetQuestBoard(playerID int64) (*quest.Board, error) {
	query := d.qb.Build(`SELECT day, quests FROM quest_boards WHERE player_id = ?`)
	row := d.db.QueryRow(query, playerID)

	b := &quest.Board{PlayerID: playerID}
	var questsJSON string
	err := row.Scan(&b.Day, &questsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load quest board: %w", err)
	}

	if err := json.Unmarshal([]byte(questsJSON), &b.Quests); err != nil {
		return nil, fmt.Errorf("failed to decode quest board: %w", err)
	}
	return b, nil
}

// SaveQuestBoard upserts a player's daily slate.
func (d *Database) SaveQuestBoard(b *quest.Board) error {
	questsJSON, err := json.Marshal(b.Quests)
	if err != nil {
		return fmt.Errorf("failed to encode quest board: %w", err)
	}

	query := d.qb.Build(`UPDATE quest_boards SET day = ?, quests = ? WHERE player_id = ?`)
	result, err := d.db.Exec(query, b.Day, string(questsJSON), b.PlayerID)
	if err != nil {
		return fmt.Errorf("failed to save quest board: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		return nil
	}

	insert := d.qb.Build(
		`INSERT INTO quest_boards (player_id, day, quests) VALUES (?, ?, ?)`)
	if _, err := d.db.Exec(insert, b.PlayerID, b.Day, string(questsJSON)); err != nil {
		return fmt.Errorf("failed to insert quest board: %w", err)
	}
	return nil
}
