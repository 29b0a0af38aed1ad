// Package main loads a roster file or profile directory into the postgres
// profiles table.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wfrp-duel/internal/config"
	"github.com/cory-johannsen/wfrp-duel/internal/game/character"
	"github.com/cory-johannsen/wfrp-duel/internal/game/ruleset"
	"github.com/cory-johannsen/wfrp-duel/internal/observability"
	"github.com/cory-johannsen/wfrp-duel/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	source := flag.String("roster", "configs/roster.yaml", "roster file or profile directory to import")
	prune := flag.Bool("prune", false, "delete stored profiles that are not in the imported roster")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logging, "import-roster")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	roster, err := loadRoster(*source)
	if err != nil {
		logger.Fatal("loading roster", zap.String("source", *source), zap.Error(err))
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()

	repo := postgres.NewProfileRepository(pool.DB())
	keep := make(map[string]bool)
	for _, list := range [][]*character.Profile{roster.Players, roster.Enemies} {
		for _, p := range list {
			if err := repo.Upsert(ctx, p); err != nil {
				logger.Fatal("importing profile", zap.String("name", p.Name), zap.Error(err))
			}
			keep[strings.ToLower(p.Name)] = true
		}
	}

	pruned := 0
	if *prune {
		stored, err := repo.List(ctx)
		if err != nil {
			logger.Fatal("listing stored profiles", zap.Error(err))
		}
		for _, p := range stored {
			if keep[strings.ToLower(p.Name)] {
				continue
			}
			if err := repo.Delete(ctx, p.Name); err != nil {
				logger.Fatal("pruning profile", zap.String("name", p.Name), zap.Error(err))
			}
			pruned++
		}
	}

	logger.Info("roster imported",
		zap.Int("players", len(roster.Players)),
		zap.Int("enemies", len(roster.Enemies)),
		zap.Int("pruned", pruned),
		zap.Duration("elapsed", time.Since(start)),
	)
	fmt.Fprintf(os.Stdout, "imported %d players and %d enemies (pruned %d) [%s]\n",
		len(roster.Players), len(roster.Enemies), pruned, time.Since(start))
}

func loadRoster(path string) (*ruleset.Roster, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return ruleset.LoadProfiles(path)
	}
	return ruleset.LoadRoster(path)
}
