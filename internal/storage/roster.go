// Package storage opens the configured roster source: a roster file, a
// directory of profile files, or the postgres profiles table.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wfrp-duel/internal/config"
	"github.com/cory-johannsen/wfrp-duel/internal/game/ruleset"
	"github.com/cory-johannsen/wfrp-duel/internal/storage/postgres"
)

// RosterSource supplies the current roster.
type RosterSource interface {
	Roster(ctx context.Context) (*ruleset.Roster, error)
}

// OpenRoster returns the roster source selected by cfg.Roster.Source and a
// function releasing anything it holds open. File and directory rosters are
// read once here; the postgres source is re-read on every call.
//
// Precondition: cfg must have passed Validate.
// Postcondition: The roster has been read successfully at least once, or an
// error is returned and nothing is left open.
func OpenRoster(ctx context.Context, cfg config.Config, logger *zap.Logger) (RosterSource, func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	noop := func() {}

	switch cfg.Roster.Source {
	case config.RosterSourceFile:
		r, err := ruleset.LoadRoster(cfg.Roster.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("loading roster file %s: %w", cfg.Roster.Path, err)
		}
		logRoster(logger, cfg.Roster, r)
		return r, noop, nil

	case config.RosterSourceDir:
		r, err := ruleset.LoadProfiles(cfg.Roster.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("loading profiles from %s: %w", cfg.Roster.Path, err)
		}
		logRoster(logger, cfg.Roster, r)
		return r, noop, nil

	case config.RosterSourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.NewProfileRepository(pool.DB())
		r, err := repo.Roster(ctx)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("reading roster table: %w", err)
		}
		logger.Info("roster database connected",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Name),
		)
		logRoster(logger, cfg.Roster, r)
		return repo, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown roster source %q", cfg.Roster.Source)
}

func logRoster(logger *zap.Logger, rc config.RosterConfig, r *ruleset.Roster) {
	logger.Info("roster loaded",
		zap.String("source", rc.Source),
		zap.String("path", rc.Path),
		zap.Int("players", len(r.Players)),
		zap.Int("enemies", len(r.Enemies)),
	)
}
