package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/batonquest/server/internal/pet"
)

// ErrPetNotFound is returned when a pet lookup fails.
var ErrPetNotFound = errors.New("pet not found")

const petColumns = `id, player_id, template_id, nickname,
	level, experience, happiness, hunger, evolution,
	last_fed, active, trained_bonus`

// GetPet loads a pet by ID.
func (d *Database) GetPet(id string) (*pet.Owned, error) {
	query := d.qb.Build(`SELECT ` + petColumns + ` FROM pets WHERE id = ?`)
	row := d.db.QueryRow(query, id)

	o, err := scanPet(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrPetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pet %s: %w", id, err)
	}
	return o, nil
}

// GetPets loads every pet a player owns.
func (d *Database) GetPets(playerID int64) ([]*pet.Owned, error) {
	query := d.qb.Build(`SELECT ` + petColumns + ` FROM pets WHERE player_id = ? ORDER BY id`)
	rows, err := d.db.Query(query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pets for player %d: %w", playerID, err)
	}
	defer rows.Close()

	var out []*pet.Owned
	for rows.Next() {
		o, err := scanPet(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pet row: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// SavePet upserts a pet row.
func (d *Database) SavePet(o *pet.Owned) error {
	bonusJSON, err := json.Marshal(o.TrainedBonus)
	if err != nil {
		return fmt.Errorf("failed to encode trained bonus: %w", err)
	}

	query := d.qb.Build(
		`UPDATE pets SET nickname = ?, level = ?, experience = ?,
			happiness = ?, hunger = ?, evolution = ?, last_fed = ?,
			active = ?, trained_bonus = ?
		 WHERE id = ?`)
	result, err := d.db.Exec(query,
		o.Nickname, o.Level, o.Experience,
		o.Happiness, o.Hunger, o.Evolution, o.LastFed,
		boolToInt(o.Active), string(bonusJSON),
		o.ID)
	if err != nil {
		return fmt.Errorf("failed to save pet %s: %w", o.ID, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		return nil
	}

	insert := d.qb.Build(
		`INSERT INTO pets (id, player_id, template_id, nickname, level, experience,
			happiness, hunger, evolution, last_fed, active, trained_bonus)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = d.db.Exec(insert,
		o.ID, o.PlayerID, o.TemplateID, o.Nickname, o.Level, o.Experience,
		o.Happiness, o.Hunger, o.Evolution, o.LastFed,
		boolToInt(o.Active), string(bonusJSON))
	if err != nil {
		return fmt.Errorf("failed to insert pet %s: %w", o.ID, err)
	}
	return nil
}

func scanPet(scan func(...any) error) (*pet.Owned, error) {
	o := &pet.Owned{}
	var lastFed sql.NullTime
	var active int
	var bonusJSON string

	err := scan(
		&o.ID, &o.PlayerID, &o.TemplateID, &o.Nickname,
		&o.Level, &o.Experience, &o.Happiness, &o.Hunger, &o.Evolution,
		&lastFed, &active, &bonusJSON,
	)
	if err != nil {
		return nil, err
	}

	if lastFed.Valid {
		o.LastFed = lastFed.Time
	}
	o.Active = active != 0
	if err := json.Unmarshal([]byte(bonusJSON), &o.TrainedBonus); err != nil {
		return nil, fmt.Errorf("failed to decode trained bonus: %w", err)
	}
	if o.TrainedBonus == nil {
		o.TrainedBonus = make(map[string]int)
	}
	return o, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
