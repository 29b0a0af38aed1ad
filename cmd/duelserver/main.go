// Package main runs the duel console server: a Telnet listener where each
// connection picks a player and an enemy and fights round by round.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wfrp-duel/internal/config"
	"github.com/cory-johannsen/wfrp-duel/internal/frontend/handlers"
	"github.com/cory-johannsen/wfrp-duel/internal/frontend/telnet"
	"github.com/cory-johannsen/wfrp-duel/internal/game/combat"
	"github.com/cory-johannsen/wfrp-duel/internal/game/dice"
	"github.com/cory-johannsen/wfrp-duel/internal/observability"
	"github.com/cory-johannsen/wfrp-duel/internal/server"
	"github.com/cory-johannsen/wfrp-duel/internal/storage"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "duelserver")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	roster, release, err := storage.OpenRoster(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("opening roster", zap.Error(err))
	}

	rules := combat.Rules{FatalWoundPenalty: cfg.Rules.FatalWoundPenalty}
	newRoller := func() combat.Roller {
		if cfg.Rules.Seed != 0 {
			return dice.NewLoggedRoller(dice.NewSeededSource(cfg.Rules.Seed), logger)
		}
		return dice.NewLoggedRoller(dice.NewCryptoSource(), logger)
	}

	engine := combat.NewEngine()
	duel := handlers.NewDuelHandler(roster, engine, newRoller, rules, logger)
	acceptor := telnet.NewAcceptor(cfg.Telnet, duel, logger)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("telnet", &server.FuncService{
		StartFn: acceptor.ListenAndServe,
		StopFn:  acceptor.Stop,
	})
	lifecycle.OnShutdown("roster", release)

	logger.Info("duel server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("telnet_addr", cfg.Telnet.Addr()),
		zap.String("roster_source", cfg.Roster.Source),
		zap.Int("fatal_wound_penalty", rules.FatalWoundPenalty),
		zap.Bool("seeded", cfg.Rules.Seed != 0),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
