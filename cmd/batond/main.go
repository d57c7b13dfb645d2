package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/batonquest/server/internal/achievement"
	"github.com/batonquest/server/internal/config"
	"github.com/batonquest/server/internal/crafting"
	"github.com/batonquest/server/internal/database"
	"github.com/batonquest/server/internal/dungeon"
	"github.com/batonquest/server/internal/game"
	"github.com/batonquest/server/internal/gameclock"
	"github.com/batonquest/server/internal/items"
	"github.com/batonquest/server/internal/logger"
	"github.com/batonquest/server/internal/monster"
	"github.com/batonquest/server/internal/pet"
	"github.com/batonquest/server/internal/quest"
	"github.com/batonquest/server/internal/server"
)

func main() {
	configFile := flag.String("config", "data/server.yaml", "Path to server config YAML file")
	seed := flag.Int64("seed", 0, "Game RNG seed (default: random based on current time)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging)
	log.Info("starting baton quest server")

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	log.Info("game seed selected", "seed", rngSeed)

	content, err := loadContent(cfg.Content)
	if err != nil {
		log.Error("failed to load content", "error", err)
		os.Exit(1)
	}
	log.Info("content loaded",
		"items", content.Items.Count(),
		"monsters", content.Monsters.Count(),
		"dungeons", content.Dungeons.Count(),
		"pets", content.Pets.Count(),
		"recipes", content.Recipes.Count(),
		"achievements", content.Achievements.Count(),
		"quests", content.Quests.Count(),
	)

	db, err := database.Open(database.Config{
		Driver:     cfg.Database.Driver,
		SQLitePath: cfg.Database.SQLitePath,
		Postgres: database.PostgresConfig{
			Host:            cfg.Database.Postgres.Host,
			Port:            cfg.Database.Postgres.Port,
			User:            cfg.Database.Postgres.User,
			Password:        cfg.Database.Postgres.Password,
			Database:        cfg.Database.Postgres.Database,
			SSLMode:         cfg.Database.Postgres.SSLMode,
			MaxOpenConns:    cfg.Database.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Database.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.Postgres.ConnMaxLifetime(),
		},
	})
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database ready", "driver", cfg.Database.Driver)

	clock := gameclock.Real{}
	srv := server.NewServer(cfg.Server, db, clock, log)

	tuning := game.Tuning{
		FightEnergyCost:   cfg.Game.FightEnergyCost,
		HealthRegenPerMin: cfg.Game.HealthRegenPerMin,
		EnergyRegenPerMin: cfg.Game.EnergyRegenPerMin,
	}
	engine := game.NewEngine(db, content, clock, rand.New(rand.NewSource(rngSeed)), srv, tuning, log)
	srv.SetEngine(engine)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("goodbye")
}

// loadContent fills every registry from its configured YAML file.
func loadContent(cfg config.ContentConfig) (*game.Content, error) {
	content := &game.Content{
		Items:        items.NewRegistry(),
		Monsters:     monster.NewRegistry(),
		Dungeons:     dungeon.NewRegistry(),
		Pets:         pet.NewRegistry(),
		Recipes:      crafting.NewRegistry(),
		Achievements: achievement.NewRegistry(),
		Quests:       quest.NewRegistry(),
	}

	loads := []struct {
		name string
		path string
		fn   func(string) error
	}{
		{"items", cfg.Items, content.Items.LoadFromYAML},
		{"monsters", cfg.Monsters, content.Monsters.LoadFromYAML},
		{"dungeons", cfg.Dungeons, content.Dungeons.LoadFromYAML},
		{"pets", cfg.Pets, content.Pets.LoadFromYAML},
		{"recipes", cfg.Recipes, content.Recipes.LoadFromYAML},
		{"achievements", cfg.Achievements, content.Achievements.LoadFromYAML},
		{"quests", cfg.Quests, content.Quests.LoadFromYAML},
	}
	for _, l := range loads {
		if err := l.fn(l.path); err != nil {
			return nil, fmt.Errorf("failed to load %s from %s: %w", l.name, l.path, err)
		}
	}
	return content, nil
}
