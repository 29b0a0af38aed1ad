// Package handlers implements the duel console: roster selection, round
// resolution, and rendering over a Telnet session.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wfrp-duel/internal/frontend/telnet"
	"github.com/cory-johannsen/wfrp-duel/internal/game/character"
	"github.com/cory-johannsen/wfrp-duel/internal/game/combat"
	"github.com/cory-johannsen/wfrp-duel/internal/game/command"
	"github.com/cory-johannsen/wfrp-duel/internal/game/ruleset"
)

const welcomeBanner = "\r\n" +
	"\033[1;31m" +
	"  ==========================================\r\n" +
	"             WARHAMMER DUEL ARENA           \r\n" +
	"  ==========================================\r\n" +
	"\033[0m" +
	"\r\n" +
	"  Pick a player and an enemy, then attack.\r\n" +
	"  Type 'help' for commands.\r\n" +
	"\r\n"

var prompt = telnet.Colorize(telnet.BrightWhite, "> ")

// RosterSource supplies the selectable profiles for a new session.
// A *ruleset.Roster serves itself; the postgres repository reads the table
// on every call.
type RosterSource interface {
	Roster(ctx context.Context) (*ruleset.Roster, error)
}

// RollerFactory returns the dice roller for a new encounter.
type RollerFactory func() combat.Roller

// DuelHandler runs the duel console for each Telnet session. Each session
// owns at most one encounter, registered in the shared Engine under the
// session's remote address.
type DuelHandler struct {
	roster    RosterSource
	engine    *combat.Engine
	newRoller RollerFactory
	rules     combat.Rules
	commands  *command.Registry
	logger    *zap.Logger
}

// NewDuelHandler creates a DuelHandler.
//
// Precondition: roster, engine, and newRoller must be non-nil. A nil logger
// is replaced by a no-op logger.
// Postcondition: Returns a handler ready to serve sessions.
func NewDuelHandler(roster RosterSource, engine *combat.Engine, newRoller RollerFactory, rules combat.Rules, logger *zap.Logger) *DuelHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DuelHandler{
		roster:    roster,
		engine:    engine,
		newRoller: newRoller,
		rules:     rules,
		commands:  command.DefaultRegistry(),
		logger:    logger,
	}
}

// duelSession is the per-connection selection state.
type duelSession struct {
	key    string
	conn   *telnet.Conn
	roster *ruleset.Roster
	player *character.Profile
	enemy  *character.Profile
	logger *zap.Logger
}

// HandleSession implements telnet.SessionHandler. It loads the roster, shows
// the banner, and runs the command loop until the client quits or the
// connection drops.
//
// Postcondition: Returns nil on clean quit; the session's encounter is
// removed from the Engine on every return path.
func (h *DuelHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	start := time.Now()
	key := conn.RemoteAddr().String()
	defer h.engine.End(key)

	roster, err := h.roster.Roster(ctx)
	if err != nil {
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, "The roster is unavailable. Please try again later."))
		return fmt.Errorf("loading roster: %w", err)
	}

	s := &duelSession{
		key:    key,
		conn:   conn,
		roster: roster,
		logger: h.logger.With(zap.String("remote_addr", key)),
	}
	if len(roster.Players) == 1 {
		s.player = roster.Players[0]
	}
	if len(roster.Enemies) == 1 {
		s.enemy = roster.Enemies[0]
	}

	if err := conn.Write([]byte(welcomeBanner)); err != nil {
		return fmt.Errorf("sending welcome: %w", err)
	}
	h.showSelection(s)

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Server shutting down. Goodbye!"))
			return ctx.Err()
		default:
		}

		if err := conn.WritePrompt(prompt); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}
		line, err := conn.ReadLine()
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		quit, err := h.dispatch(s, line)
		if err != nil {
			return err
		}
		if quit {
			s.logger.Info("client quit", zap.Duration("session_duration", time.Since(start)))
			return nil
		}
	}
}

// dispatch runs one input line.
//
// Postcondition: Returns quit=true on the quit command; a non-nil error only
// when the connection can no longer be written.
func (h *DuelHandler) dispatch(s *duelSession, line string) (quit bool, err error) {
	cmd, res, err := h.commands.Match(line)
	switch {
	case errors.Is(err, command.ErrUnknownCommand):
		return false, s.conn.WriteLine(telnet.Colorf(telnet.Red,
			"Unknown command: %s. Type 'help' for available commands.", res.Command))
	case errors.Is(err, command.ErrUsage):
		return false, s.conn.WriteLine(telnet.Colorf(telnet.Red, "Usage: %s", cmd.Usage))
	case cmd == nil:
		return false, nil
	}

	switch cmd.Handler {
	case command.HandlerPlayers:
		return false, s.conn.WriteLines(RenderProfiles("Players:", s.roster.Players))
	case command.HandlerEnemies:
		return false, s.conn.WriteLines(RenderProfiles("Enemies:", s.roster.Enemies))
	case command.HandlerPlayer:
		return false, h.selectProfile(s, character.RolePlayer, res.RawArgs)
	case command.HandlerEnemy:
		return false, h.selectProfile(s, character.RoleEnemy, res.RawArgs)
	case command.HandlerAttack:
		return false, h.attack(s)
	case command.HandlerStatus:
		return false, h.status(s)
	case command.HandlerLog:
		return false, h.replay(s)
	case command.HandlerReset:
		return false, h.reset(s)
	case command.HandlerHelp:
		return false, h.showHelp(s)
	case command.HandlerQuit:
		_ = s.conn.WriteLine(telnet.Colorize(telnet.Cyan, "Goodbye!"))
		return true, nil
	}
	return false, nil
}

func (h *DuelHandler) selectProfile(s *duelSession, role character.Role, query string) error {
	p, err := s.roster.Find(role, query)
	if err != nil {
		if errors.Is(err, ruleset.ErrProfileNotFound) {
			return s.conn.WriteLine(telnet.Colorf(telnet.Red, "No %s matches %q.", strings.ToLower(role.String()), query))
		}
		return s.conn.WriteLine(telnet.Colorize(telnet.Red, err.Error()))
	}

	if role == character.RolePlayer {
		s.player = p
	} else {
		s.enemy = p
	}
	s.logger.Debug("profile selected", zap.String("role", role.String()), zap.String("name", p.Name))

	// A new selection abandons any duel in progress.
	if _, ok := h.engine.Get(s.key); ok {
		h.engine.End(s.key)
		_ = s.conn.WriteLine(telnet.Colorize(telnet.Yellow, "Selection changed; the next attack starts a new duel."))
	}
	return s.conn.WriteLine(telnet.Colorf(telnet.Green, "%s: %s (WS %d, W %d, S %d)",
		role, p.Name, p.WeaponSkill, p.Wounds, p.Strength))
}

func (h *DuelHandler) showSelection(s *duelSession) {
	name := func(p *character.Profile) string {
		if p == nil {
			return "(none)"
		}
		return p.Name
	}
	_ = s.conn.WriteLine(telnet.Colorf(telnet.Cyan, "Player: %s   Enemy: %s", name(s.player), name(s.enemy)))
}

// startEncounter registers a fresh encounter for the current selection.
func (h *DuelHandler) startEncounter(s *duelSession) (*combat.Encounter, error) {
	enc, err := combat.NewEncounter(*s.player, *s.enemy, h.newRoller(), h.rules, s.logger)
	if err != nil {
		return nil, err
	}
	h.engine.End(s.key)
	if err := h.engine.Start(s.key, enc); err != nil {
		return nil, err
	}
	return enc, nil
}

func (h *DuelHandler) attack(s *duelSession) error {
	if s.player == nil || s.enemy == nil {
		return s.conn.WriteLine(telnet.Colorize(telnet.Red,
			"Choose a player and an enemy first ('players', 'enemies', 'player <name|#>', 'enemy <name|#>')."))
	}

	enc, ok := h.engine.Get(s.key)
	if !ok {
		var err error
		if enc, err = h.startEncounter(s); err != nil {
			s.logger.Error("starting encounter", zap.Error(err))
			return s.conn.WriteLine(telnet.Colorf(telnet.Red, "Cannot start the duel: %v", err))
		}
		_ = s.conn.WriteLine(telnet.Colorf(telnet.BrightWhite, "%s faces %s!", s.player.Name, s.enemy.Name))
	}

	res, err := enc.ResolveRound()
	if errors.Is(err, combat.ErrCombatOver) {
		return s.conn.WriteLines([]string{
			RenderOutcome(enc.Outcome()),
			telnet.Colorize(telnet.Yellow, "Combat is over. Type 'reset' to fight again."),
		})
	}
	if err != nil {
		return err
	}
	return s.conn.WriteLines(RenderRound(res))
}

func (h *DuelHandler) status(s *duelSession) error {
	enc, ok := h.engine.Get(s.key)
	if !ok {
		h.showSelection(s)
		return s.conn.WriteLine(telnet.Colorize(telnet.Dim, "No duel in progress."))
	}
	return s.conn.WriteLines(RenderStatus(enc))
}

func (h *DuelHandler) replay(s *duelSession) error {
	enc, ok := h.engine.Get(s.key)
	if !ok || enc.Round() == 0 {
		return s.conn.WriteLine(telnet.Colorize(telnet.Dim, "No rounds fought yet."))
	}
	var lines []string
	for _, r := range enc.History() {
		lines = append(lines, RenderRound(r)...)
	}
	return s.conn.WriteLines(lines)
}

func (h *DuelHandler) reset(s *duelSession) error {
	h.engine.End(s.key)
	if s.player == nil || s.enemy == nil {
		return s.conn.WriteLine(telnet.Colorize(telnet.Yellow, "Duel cleared. Choose a player and an enemy to begin."))
	}
	if _, err := h.startEncounter(s); err != nil {
		return s.conn.WriteLine(telnet.Colorf(telnet.Red, "Cannot start the duel: %v", err))
	}
	return s.conn.WriteLine(telnet.Colorf(telnet.BrightWhite, "A new duel begins: %s vs %s.", s.player.Name, s.enemy.Name))
}

func (h *DuelHandler) showHelp(s *duelSession) error {
	lines := []string{telnet.Colorize(telnet.BrightWhite, "Available commands:")}
	cats := h.commands.CommandsByCategory()
	for _, cat := range []string{command.CategoryRoster, command.CategoryCombat, command.CategorySystem} {
		for _, c := range cats[cat] {
			lines = append(lines, fmt.Sprintf("  %s%-18s%s %s", telnet.Green, c.Usage, telnet.Reset, c.Help))
		}
	}
	return s.conn.WriteLines(lines)
}
