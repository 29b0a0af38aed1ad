package combat

// Outcome is the state of a duel after a round.
type Outcome int

const (
	Ongoing Outcome = iota
	PlayerWins
	EnemyWins
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case PlayerWins:
		return "player wins"
	case EnemyWins:
		return "enemy wins"
	default:
		return "unknown"
	}
}

// Decided reports whether the outcome ends the duel.
func (o Outcome) Decided() bool { return o != Ongoing }

// RoundResult records what happened in one exchange of attacks.
type RoundResult struct {
	// Number is the 1-based round counter; zero when resolved outside an Encounter.
	Number int
	// PlayerAttack is always present; the player strikes first.
	PlayerAttack AttackResult
	// EnemyAttack is nil when the player's attack ended the duel.
	EnemyAttack *AttackResult
	Outcome     Outcome
}

// ResolveRound resolves one round: the player attacks the enemy, and if the
// enemy is still alive it attacks back. Resolution is strictly ordered, so a
// player who drops the enemy ends the duel before the enemy rolls. Criticals
// resolve inside each attack, before the round-ending check.
//
// Precondition: player and enemy must be alive; roller must be non-nil.
// Postcondition: Returns PlayerWins with a nil EnemyAttack when the enemy falls
// first; EnemyWins when the player falls to the counter-attack; Ongoing otherwise.
func ResolveRound(player, enemy *Combatant, roller Roller, rules Rules) RoundResult {
	res := RoundResult{
		PlayerAttack: ResolveAttack(player, enemy, roller, rules),
	}
	if !enemy.IsAlive() {
		res.Outcome = PlayerWins
		return res
	}

	counter := ResolveAttack(enemy, player, roller, rules)
	res.EnemyAttack = &counter
	if !player.IsAlive() {
		res.Outcome = EnemyWins
	}
	return res
}
