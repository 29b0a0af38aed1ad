package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/wfrp-duel/internal/game/combat"
)

// TestResolveRound_PlayerWinsBeforeCounterAttack: the player's hit drops the
// enemy to exactly zero; only the player's d100 and the critical d10 are drawn.
func TestResolveRound_PlayerWinsBeforeCounterAttack(t *testing.T) {
	roller, src := newScripted(t, 20, 5)
	player := combatant("Player", 50, 10, 6)
	enemy := combatant("Enemy", 90, 6, 10)

	res := combat.ResolveRound(player, enemy, roller, combat.DefaultRules())

	assert.Equal(t, 2, src.calls, "enemy must not roll")
	assert.Equal(t, combat.PlayerWins, res.Outcome)
	assert.Nil(t, res.EnemyAttack)
	require.NotNil(t, res.PlayerAttack.Critical)
	assert.Equal(t, combat.SeverityMajor, res.PlayerAttack.Critical.Severity)
	assert.Equal(t, -1, enemy.Wounds())
	assert.Equal(t, 10, player.Wounds())
}

func TestResolveRound_EnemyWins(t *testing.T) {
	// player misses (90 > 50), enemy hits (3 <= 40) for 8 vs 5 wounds, critical d10=8.
	roller, src := newScripted(t, 90, 3, 8)
	player := combatant("Player", 50, 5, 6)
	enemy := combatant("Enemy", 40, 12, 8)

	res := combat.ResolveRound(player, enemy, roller, combat.DefaultRules())

	assert.Equal(t, 3, src.calls)
	assert.Equal(t, combat.EnemyWins, res.Outcome)
	assert.False(t, res.PlayerAttack.Hit)
	require.NotNil(t, res.EnemyAttack)
	assert.True(t, res.EnemyAttack.Hit)
	require.NotNil(t, res.EnemyAttack.Critical)
	assert.Equal(t, combat.SeveritySevere, res.EnemyAttack.Critical.Severity)
	assert.Equal(t, -5, player.Wounds())
	assert.Equal(t, 12, enemy.Wounds())
}

func TestResolveRound_Ongoing(t *testing.T) {
	roller, src := newScripted(t, 30, 30)
	player := combatant("Player", 50, 12, 4)
	enemy := combatant("Enemy", 40, 12, 3)

	res := combat.ResolveRound(player, enemy, roller, combat.DefaultRules())

	assert.Equal(t, 2, src.calls)
	assert.Equal(t, combat.Ongoing, res.Outcome)
	require.NotNil(t, res.EnemyAttack)
	assert.Equal(t, 8, enemy.Wounds())
	assert.Equal(t, 9, player.Wounds())
	assert.Zero(t, res.Number)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "ongoing", combat.Ongoing.String())
	assert.Equal(t, "player wins", combat.PlayerWins.String())
	assert.Equal(t, "enemy wins", combat.EnemyWins.String())
	assert.False(t, combat.Ongoing.Decided())
	assert.True(t, combat.PlayerWins.Decided())
	assert.True(t, combat.EnemyWins.Decided())
}
