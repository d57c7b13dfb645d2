// Package config loads server-wide settings from a YAML file, filling
// in defaults for anything the file leaves out.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable the server reads at startup.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Content  ContentConfig  `yaml:"content"`
	Game     GameConfig     `yaml:"game"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds the listener and WebSocket settings.
type ServerConfig struct {
	// ListenAddr is the host:port the HTTP listener binds to.
	ListenAddr string `yaml:"listen_addr"`

	// AllowedOrigins is a list of origins allowed to open a WebSocket.
	// Empty list enforces same-origin policy. "*" allows all origins.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum WebSocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`

	// WriteTimeoutSecs bounds how long a frame write may block.
	WriteTimeoutSecs int `yaml:"write_timeout_seconds"`
}

// WriteTimeout returns the frame write deadline as a duration.
func (c *ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSecs) * time.Second
}

// DatabaseConfig selects and configures the storage backend.
type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`

	// SQLitePath is the database file path when Driver is "sqlite".
	SQLitePath string `yaml:"sqlite_path"`

	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`

	MaxOpenConns        int `yaml:"max_open_conns"`
	MaxIdleConns        int `yaml:"max_idle_conns"`
	ConnMaxLifetimeMins int `yaml:"conn_max_lifetime_minutes"`
}

// ConnMaxLifetime returns the pool lifetime as a duration.
func (c *PostgresConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(c.ConnMaxLifetimeMins) * time.Minute
}

// ContentConfig points at the YAML files game content loads from.
type ContentConfig struct {
	Items        string `yaml:"items"`
	Monsters     string `yaml:"monsters"`
	Dungeons     string `yaml:"dungeons"`
	Pets         string `yaml:"pets"`
	Recipes      string `yaml:"recipes"`
	Achievements string `yaml:"achievements"`
	Quests       string `yaml:"quests"`
}

// GameConfig holds engine tuning knobs.
type GameConfig struct {
	// FightEnergyCost is the energy spent per open-world fight.
	FightEnergyCost int `yaml:"fight_energy_cost"`

	// HealthRegenPerMin and EnergyRegenPerMin are passive recovery rates.
	HealthRegenPerMin float64 `yaml:"health_regen_per_min"`
	EnergyRegenPerMin float64 `yaml:"energy_regen_per_min"`
}

// LoggingConfig configures the slog handlers.
type LoggingConfig struct {
	Level          string `yaml:"level"`
	ConsoleEnabled bool   `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// Default returns a Config with workable defaults for local play.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:       ":8080",
			AllowedOrigins:   []string{}, // same-origin only
			MaxMessageSize:   4096,
			WriteTimeoutSecs: 10,
		},
		Database: DatabaseConfig{
			Driver:     "sqlite",
			SQLitePath: "data/batonquest.db",
			Postgres: PostgresConfig{
				Host:                "localhost",
				Port:                5432,
				SSLMode:             "disable",
				MaxOpenConns:        25,
				MaxIdleConns:        5,
				ConnMaxLifetimeMins: 5,
			},
		},
		Content: ContentConfig{
			Items:        "data/items.yaml",
			Monsters:     "data/monsters.yaml",
			Dungeons:     "data/dungeons.yaml",
			Pets:         "data/pets.yaml",
			Recipes:      "data/recipes.yaml",
			Achievements: "data/achievements.yaml",
			Quests:       "data/quests.yaml",
		},
		Game: GameConfig{
			FightEnergyCost:   10,
			HealthRegenPerMin: 2.0,
			EnergyRegenPerMin: 1.0,
		},
		Logging: LoggingConfig{
			Level:          "INFO",
			ConsoleEnabled: true,
			ConsoleFormat:  "text",
			FileEnabled:    false,
			FilePath:       "logs/server.log",
			FileFormat:     "text",
			FileMaxSizeMB:  10,
			FileMaxBackups: 5,
			FileMaxAgeDays: 30,
		},
	}
}

// Load reads the config file at path over the defaults. A missing file
// is not an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr cannot be empty")
	}
	return nil
}

// IsOriginAllowed reports whether origin may open a WebSocket. With no
// origins configured the request host must match (same-origin policy);
// "*" in the list allows everything.
func (c *ServerConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func isSameOrigin(origin, requestHost string) bool {
	// No Origin header means a non-browser client.
	if origin == "" {
		return true
	}
	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")
	return originHost == requestHost
}
