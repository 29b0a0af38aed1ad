package combat

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wfrp-duel/internal/game/character"
)

var (
	// ErrCombatOver is returned by Encounter.ResolveRound once a winner is decided.
	ErrCombatOver = errors.New("combat already over")
	// ErrEncounterActive is returned by Engine.Start when the key already owns an encounter.
	ErrEncounterActive = errors.New("encounter already active")
)

// Encounter holds the live state of one duel between a player and an enemy.
// An Encounter is driven by a single caller; it is not safe for concurrent use.
type Encounter struct {
	id      uuid.UUID
	player  *Combatant
	enemy   *Combatant
	roller  Roller
	rules   Rules
	logger  *zap.Logger
	round   int
	outcome Outcome
	history []RoundResult
}

// NewEncounter validates both stat blocks and starts a duel between them.
//
// Precondition: roller must be non-nil. A nil logger is replaced by a no-op logger.
// Postcondition: Returns an ongoing Encounter, or an error if either profile is
// invalid; no Encounter is built from partial stats.
func NewEncounter(player, enemy character.Profile, roller Roller, rules Rules, logger *zap.Logger) (*Encounter, error) {
	if err := player.Validate(); err != nil {
		return nil, fmt.Errorf("player profile: %w", err)
	}
	if err := enemy.Validate(); err != nil {
		return nil, fmt.Errorf("enemy profile: %w", err)
	}
	if roller == nil {
		return nil, errors.New("roller must not be nil")
	}
	if rules.FatalWoundPenalty < 0 {
		return nil, fmt.Errorf("fatal wound penalty must be >= 0, got %d", rules.FatalWoundPenalty)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	id := uuid.New()
	enc := &Encounter{
		id:     id,
		player: NewCombatant(player),
		enemy:  NewCombatant(enemy),
		roller: roller,
		rules:  rules,
		logger: logger.With(zap.String("encounter", id.String())),
	}
	enc.logger.Info("encounter started",
		zap.String("player", player.Name),
		zap.String("enemy", enemy.Name),
	)
	return enc, nil
}

// ID returns the unique encounter identifier.
func (e *Encounter) ID() uuid.UUID { return e.id }

// Player returns the player's combatant for read-only display.
func (e *Encounter) Player() *Combatant { return e.player }

// Enemy returns the enemy's combatant for read-only display.
func (e *Encounter) Enemy() *Combatant { return e.enemy }

// Round returns the number of rounds resolved so far.
func (e *Encounter) Round() int { return e.round }

// Outcome returns the current outcome.
func (e *Encounter) Outcome() Outcome { return e.outcome }

// IsCombatOver reports whether a winner has been decided.
func (e *Encounter) IsCombatOver() bool { return e.outcome.Decided() }

// Winner returns the winning combatant's name.
//
// Postcondition: ok is false while the encounter is ongoing.
func (e *Encounter) Winner() (name string, ok bool) {
	switch e.outcome {
	case PlayerWins:
		return e.player.name, true
	case EnemyWins:
		return e.enemy.name, true
	default:
		return "", false
	}
}

// History returns a copy of every resolved round, oldest first.
func (e *Encounter) History() []RoundResult {
	out := make([]RoundResult, len(e.history))
	copy(out, e.history)
	return out
}

// ResolveRound resolves the next round of the duel.
//
// Postcondition: Returns ErrCombatOver without drawing dice or changing wounds
// once the outcome is decided; otherwise returns the numbered RoundResult.
func (e *Encounter) ResolveRound() (RoundResult, error) {
	if e.IsCombatOver() {
		return RoundResult{}, ErrCombatOver
	}

	e.round++
	res := ResolveRound(e.player, e.enemy, e.roller, e.rules)
	res.Number = e.round
	e.outcome = res.Outcome
	e.history = append(e.history, res)

	e.logAttack(res.PlayerAttack)
	if res.EnemyAttack != nil {
		e.logAttack(*res.EnemyAttack)
	}
	if e.outcome.Decided() {
		winner, _ := e.Winner()
		e.logger.Info("encounter decided",
			zap.Int("round", e.round),
			zap.String("outcome", e.outcome.String()),
			zap.String("winner", winner),
		)
	}
	return res, nil
}

func (e *Encounter) logAttack(r AttackResult) {
	fields := []zap.Field{
		zap.Int("round", e.round),
		zap.String("attacker", r.Attacker),
		zap.String("defender", r.Defender),
		zap.Int("roll", r.Roll),
		zap.Int("target_ws", r.TargetSkill),
		zap.String("location", r.Location.String()),
		zap.Bool("hit", r.Hit),
		zap.Int("defender_wounds", r.DefenderWounds),
	}
	if r.Critical != nil {
		fields = append(fields,
			zap.Int("critical_roll", r.Critical.Roll),
			zap.String("severity", r.Critical.Severity.String()),
		)
	}
	e.logger.Debug("attack resolved", fields...)
}

// Engine tracks active Encounters keyed by an owner identifier, such as a
// session's remote address.
// All methods are safe for concurrent use.
type Engine struct {
	mu         sync.RWMutex
	encounters map[string]*Encounter
}

// NewEngine creates an empty Engine.
//
// Postcondition: Returns a non-nil Engine ready for use.
func NewEngine() *Engine {
	return &Engine{encounters: make(map[string]*Encounter)}
}

// Start registers enc under key.
//
// Precondition: key must be non-empty; enc must be non-nil.
// Postcondition: Returns ErrEncounterActive if key already owns an undecided encounter.
// A decided encounter under the same key is replaced.
func (e *Engine) Start(key string, enc *Encounter) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cur, exists := e.encounters[key]; exists && !cur.IsCombatOver() {
		return fmt.Errorf("%w for %q", ErrEncounterActive, key)
	}
	e.encounters[key] = enc
	return nil
}

// Get returns the encounter registered under key.
//
// Postcondition: Returns (encounter, true) if found, or (nil, false) otherwise.
func (e *Engine) Get(key string) (*Encounter, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	enc, ok := e.encounters[key]
	return enc, ok
}

// End removes the encounter registered under key.
func (e *Engine) End(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.encounters, key)
}

// Active returns the number of registered encounters.
func (e *Engine) Active() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.encounters)
}
