package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/batonquest/server/internal/items"
	"github.com/batonquest/server/internal/player"
	"github.com/batonquest/server/internal/pvp"
)

// ErrPlayerNotFound is returned when a player lookup fails.
var ErrPlayerNotFound = errors.New("player not found")

// ErrPlayerExists is returned when creating a duplicate player name.
var ErrPlayerExists = errors.New("player name already taken")

const playerColumns = `id, name, level, experience,
	strength, agility, intelligence, vitality,
	health, max_health, energy, max_energy, batons,
	crafting_level, crafting_experience,
	rating, pvp_wins, pvp_losses,
	active_pet_id, buffs, last_regen, created_at`

// CreatePlayer inserts a fresh level-1 character.
func (d *Database) CreatePlayer(name string, now time.Time) (*player.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("player name cannot be empty")
	}

	p := player.New(0, name, now)
	query := d.qb.BuildWithReturning(
		`INSERT INTO players (name, health, max_health, energy, max_energy, batons, buffs, last_regen)
		 VALUES (?, ?, ?, ?, ?, ?, '[]', ?)`, "id")

	if d.dialect.SupportsLastInsertID() {
		result, err := d.db.Exec(query, name, p.Health, p.MaxHealth, p.Energy, p.MaxEnergy, p.Batons, now)
		if err != nil {
			if d.dialect.IsDuplicateKeyError(err) {
				return nil, ErrPlayerExists
			}
			return nil, fmt.Errorf("failed to create player: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get player ID: %w", err)
		}
		p.ID = id
	} else {
		err := d.db.QueryRow(query, name, p.Health, p.MaxHealth, p.Energy, p.MaxEnergy, p.Batons, now).Scan(&p.ID)
		if err != nil {
			if d.dialect.IsDuplicateKeyError(err) {
				return nil, ErrPlayerExists
			}
			return nil, fmt.Errorf("failed to create player: %w", err)
		}
	}

	p.Arena.PlayerID = p.ID
	return p, nil
}

// GetPlayer loads a player by ID, including inventory and equipment.
func (d *Database) GetPlayer(id int64) (*player.Player, error) {
	query := d.qb.Build(`SELECT ` + playerColumns + ` FROM players WHERE id = ?`)
	return d.scanPlayer(d.db.QueryRow(query, id))
}

// GetPlayerByName loads a player by name.
func (d *Database) GetPlayerByName(name string) (*player.Player, error) {
	query := d.qb.Build(`SELECT ` + playerColumns + ` FROM players WHERE name = ?`)
	return d.scanPlayer(d.db.QueryRow(query, name))
}

func (d *Database) scanPlayer(row *sql.Row) (*player.Player, error) {
	p := &player.Player{
		Inventory: make(map[string]int),
		Equipment: make(map[items.EquipmentSlot]string),
		Arena:     &pvp.Standing{},
	}
	var buffsJSON string
	var lastRegen, createdAt sql.NullTime

	err := row.Scan(
		&p.ID, &p.Name, &p.Level, &p.Experience,
		&p.Attributes.Strength, &p.Attributes.Agility, &p.Attributes.Intelligence, &p.Attributes.Vitality,
		&p.Health, &p.MaxHealth, &p.Energy, &p.MaxEnergy, &p.Batons,
		&p.Crafting.Level, &p.Crafting.Experience,
		&p.Arena.Rating, &p.Arena.Wins, &p.Arena.Losses,
		&p.ActivePetID, &buffsJSON, &lastRegen, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load player: %w", err)
	}

	p.Arena.PlayerID = p.ID
	if lastRegen.Valid {
		p.LastRegen = lastRegen.Time
	}
	if createdAt.Valid {
		p.CreatedAt = createdAt.Time
	}
	if err := json.Unmarshal([]byte(buffsJSON), &p.Buffs); err != nil {
		return nil, fmt.Errorf("failed to decode buffs for player %d: %w", p.ID, err)
	}

	if err := d.loadInventory(p); err != nil {
		return nil, err
	}
	if err := d.loadEquipment(p); err != nil {
		return nil, err
	}
	return p, nil
}

// SavePlayer writes the full snapshot: the player row plus inventory
// and equipment, atomically.
func (d *Database) SavePlayer(p *player.Player) error {
	buffsJSON, err := json.Marshal(p.Buffs)
	if err != nil {
		return fmt.Errorf("failed to encode buffs: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(d.qb.Build(
		`UPDATE players SET
			level = ?, experience = ?,
			strength = ?, agility = ?, intelligence = ?, vitality = ?,
			health = ?, max_health = ?, energy = ?, max_energy = ?, batons = ?,
			crafting_level = ?, crafting_experience = ?,
			rating = ?, pvp_wins = ?, pvp_losses = ?,
			active_pet_id = ?, buffs = ?, last_regen = ?
		 WHERE id = ?`),
		p.Level, p.Experience,
		p.Attributes.Strength, p.Attributes.Agility, p.Attributes.Intelligence, p.Attributes.Vitality,
		p.Health, p.MaxHealth, p.Energy, p.MaxEnergy, p.Batons,
		p.Crafting.Level, p.Crafting.Experience,
		p.Arena.Rating, p.Arena.Wins, p.Arena.Losses,
		p.ActivePetID, string(buffsJSON), p.LastRegen,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save player %d: %w", p.ID, err)
	}

	if _, err := tx.Exec(d.qb.Build(`DELETE FROM inventory WHERE player_id = ?`), p.ID); err != nil {
		return fmt.Errorf("failed to clear inventory: %w", err)
	}
	for itemID, qty := range p.Inventory {
		if qty <= 0 {
			continue
		}
		_, err := tx.Exec(d.qb.Build(
			`INSERT INTO inventory (player_id, item_id, quantity) VALUES (?, ?, ?)`),
			p.ID, itemID, qty)
		if err != nil {
			return fmt.Errorf("failed to save inventory item %s: %w", itemID, err)
		}
	}

	if _, err := tx.Exec(d.qb.Build(`DELETE FROM equipment WHERE player_id = ?`), p.ID); err != nil {
		return fmt.Errorf("failed to clear equipment: %w", err)
	}
	for slot, itemID := range p.Equipment {
		_, err := tx.Exec(d.qb.Build(
			`INSERT INTO equipment (player_id, slot, item_id) VALUES (?, ?, ?)`),
			p.ID, slot.String(), itemID)
		if err != nil {
			return fmt.Errorf("failed to save equipment slot %s: %w", slot, err)
		}
	}

	return tx.Commit()
}

func (d *Database) loadInventory(p *player.Player) error {
	rows, err := d.db.Query(d.qb.Build(
		`SELECT item_id, quantity FROM inventory WHERE player_id = ?`), p.ID)
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemID string
		var qty int
		if err := rows.Scan(&itemID, &qty); err != nil {
			return fmt.Errorf("failed to scan inventory row: %w", err)
		}
		p.Inventory[itemID] = qty
	}
	return rows.Err()
}

func (d *Database) loadEquipment(p *player.Player) error {
	rows, err := d.db.Query(d.qb.Build(
		`SELECT slot, item_id FROM equipment WHERE player_id = ?`), p.ID)
	if err != nil {
		return fmt.Errorf("failed to load equipment: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var slotName, itemID string
		if err := rows.Scan(&slotName, &itemID); err != nil {
			return fmt.Errorf("failed to scan equipment row: %w", err)
		}
		if slot, ok := items.ParseSlot(slotName); ok {
			p.Equipment[slot] = itemID
		}
	}
	return rows.Err()
}
