// Package main fights one duel to completion from the command line and
// prints the combat log.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wfrp-duel/internal/config"
	"github.com/cory-johannsen/wfrp-duel/internal/frontend/handlers"
	"github.com/cory-johannsen/wfrp-duel/internal/game/character"
	"github.com/cory-johannsen/wfrp-duel/internal/game/combat"
	"github.com/cory-johannsen/wfrp-duel/internal/game/dice"
	"github.com/cory-johannsen/wfrp-duel/internal/observability"
	"github.com/cory-johannsen/wfrp-duel/internal/storage"
)

// Exit codes.
const (
	exitOK         = 0
	exitError      = 1
	exitRoundLimit = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run fights one duel and returns the process exit code. Every deferred
// cleanup has run by the time it returns.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("duel", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to configuration file (defaults apply when empty)")
	rosterPath := fs.String("roster", "", "roster file or profile directory, overriding the configured source")
	playerQuery := fs.String("player", "1", "player profile name or 1-based index")
	enemyQuery := fs.String("enemy", "1", "enemy profile name or 1-based index")
	seed := fs.Uint64("seed", 0, "dice seed for a reproducible duel (0 = random, or the configured seed)")
	maxRounds := fs.Int("max-rounds", 500, "give up after this many rounds (0 = no limit)")
	color := fs.Bool("color", false, "keep ANSI colors in the output")
	verbose := fs.Bool("verbose", false, "log every die roll to stderr")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "loading config: %v\n", err)
		return exitError
	}
	if *rosterPath != "" {
		cfg.Roster = config.RosterConfig{Source: config.RosterSourceFile, Path: *rosterPath}
		if fi, err := os.Stat(*rosterPath); err == nil && fi.IsDir() {
			cfg.Roster.Source = config.RosterSourceDir
		}
	}
	if *seed != 0 {
		cfg.Rules.Seed = *seed
	}
	cfg.Logging.Level = "warn"
	if *verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := observability.NewLogger(cfg.Logging, "duel")
	if err != nil {
		fmt.Fprintf(stderr, "initializing logger: %v\n", err)
		return exitError
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	src, release, err := storage.OpenRoster(ctx, cfg, logger)
	if err != nil {
		logger.Error("opening roster", zap.Error(err))
		return exitError
	}
	defer release()

	roster, err := src.Roster(ctx)
	if err != nil {
		logger.Error("reading roster", zap.Error(err))
		return exitError
	}
	player, err := roster.Find(character.RolePlayer, *playerQuery)
	if err != nil {
		logger.Error("selecting player", zap.Error(err))
		return exitError
	}
	enemy, err := roster.Find(character.RoleEnemy, *enemyQuery)
	if err != nil {
		logger.Error("selecting enemy", zap.Error(err))
		return exitError
	}

	var source dice.Source = dice.NewCryptoSource()
	if cfg.Rules.Seed != 0 {
		source = dice.NewSeededSource(cfg.Rules.Seed)
	}
	rules := combat.Rules{FatalWoundPenalty: cfg.Rules.FatalWoundPenalty}
	enc, err := combat.NewEncounter(*player, *enemy, dice.NewLoggedRoller(source, logger), rules, logger)
	if err != nil {
		logger.Error("starting encounter", zap.Error(err))
		return exitError
	}

	if _, err := handlers.RunToCompletion(enc, stdout, *color, *maxRounds); err != nil {
		if errors.Is(err, handlers.ErrRoundLimit) {
			fmt.Fprintln(stderr, err)
			return exitRoundLimit
		}
		logger.Error("running duel", zap.Error(err))
		return exitError
	}
	return exitOK
}

// loadConfig reads path when given; otherwise it validates the defaults
// with DUEL_ environment overrides applied.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	v := viper.New()
	v.SetEnvPrefix("DUEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	config.SetDefaults(v)
	return config.LoadFromViper(v)
}
