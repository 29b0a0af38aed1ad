package combat_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/wfrp-duel/internal/game/character"
	"github.com/cory-johannsen/wfrp-duel/internal/game/combat"
	"github.com/cory-johannsen/wfrp-duel/internal/game/dice"
)

func newEncounter(t *testing.T, roller combat.Roller, player, enemy character.Profile) *combat.Encounter {
	t.Helper()
	enc, err := combat.NewEncounter(player, enemy, roller, combat.DefaultRules(), zaptest.NewLogger(t))
	require.NoError(t, err)
	return enc
}

func TestNewEncounter_RejectsInvalidProfiles(t *testing.T) {
	roller := dice.NewLoggedRoller(dice.NewCryptoSource(), nil)

	_, err := combat.NewEncounter(profile("Player", 0, 10, 3), profile("Enemy", 30, 10, 3), roller, combat.DefaultRules(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, character.ErrInvalidStat)
	assert.Contains(t, err.Error(), "player profile")

	_, err = combat.NewEncounter(profile("Player", 30, 10, 3), profile("", 30, 10, 3), roller, combat.DefaultRules(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enemy profile")

	_, err = combat.NewEncounter(profile("Player", 30, 10, 3), profile("Enemy", 30, 10, 3), nil, combat.DefaultRules(), nil)
	assert.Error(t, err)

	_, err = combat.NewEncounter(profile("Player", 30, 10, 3), profile("Enemy", 30, 10, 3), roller, combat.Rules{FatalWoundPenalty: -1}, nil)
	assert.Error(t, err)
}

func TestEncounter_ResolveRound_NumbersRoundsAndRecordsHistory(t *testing.T) {
	// Round 1: both miss. Round 2: player hits for 10 vs 10 wounds, crit d10=1.
	roller, src := newScripted(t, 99, 99, 5, 1)
	enc := newEncounter(t, roller, profile("Player", 50, 10, 10), profile("Enemy", 40, 10, 3))

	assert.False(t, enc.IsCombatOver())
	_, ok := enc.Winner()
	assert.False(t, ok)
	assert.NotEqual(t, [16]byte{}, [16]byte(enc.ID()))

	r1, err := enc.ResolveRound()
	require.NoError(t, err)
	assert.Equal(t, 1, r1.Number)
	assert.Equal(t, combat.Ongoing, r1.Outcome)

	r2, err := enc.ResolveRound()
	require.NoError(t, err)
	assert.Equal(t, 2, r2.Number)
	assert.Equal(t, combat.PlayerWins, r2.Outcome)
	assert.Nil(t, r2.EnemyAttack)

	assert.Equal(t, 4, src.calls)
	assert.True(t, enc.IsCombatOver())
	assert.Equal(t, combat.PlayerWins, enc.Outcome())
	name, ok := enc.Winner()
	assert.True(t, ok)
	assert.Equal(t, "Player", name)
	assert.Equal(t, 2, enc.Round())
	assert.Len(t, enc.History(), 2)
}

func TestEncounter_ResolveRound_AfterOutcomeIsInert(t *testing.T) {
	roller, src := newScripted(t, 90, 1, 10)
	enc := newEncounter(t, roller, profile("Player", 50, 5, 3), profile("Enemy", 40, 10, 8))

	res, err := enc.ResolveRound()
	require.NoError(t, err)
	require.Equal(t, combat.EnemyWins, res.Outcome)
	playerWounds, enemyWounds := enc.Player().Wounds(), enc.Enemy().Wounds()
	assert.Equal(t, -10, playerWounds)

	for i := 0; i < 5; i++ {
		_, err := enc.ResolveRound()
		assert.True(t, errors.Is(err, combat.ErrCombatOver))
	}
	assert.Equal(t, 3, src.calls, "no dice drawn after the outcome is decided")
	assert.Equal(t, playerWounds, enc.Player().Wounds())
	assert.Equal(t, enemyWounds, enc.Enemy().Wounds())
	assert.Equal(t, 1, enc.Round())
	name, ok := enc.Winner()
	assert.True(t, ok)
	assert.Equal(t, "Enemy", name)
}

func TestEncounter_RunsToCompletion(t *testing.T) {
	roller := dice.NewLoggedRoller(dice.NewSeededSource(42), zaptest.NewLogger(t))
	enc := newEncounter(t, roller, profile("Player", 45, 12, 4), profile("Enemy", 35, 10, 3))

	for i := 0; i < 10000 && !enc.IsCombatOver(); i++ {
		_, err := enc.ResolveRound()
		require.NoError(t, err)
	}
	require.True(t, enc.IsCombatOver())
	switch enc.Outcome() {
	case combat.PlayerWins:
		assert.False(t, enc.Enemy().IsAlive())
		assert.True(t, enc.Player().IsAlive())
	case combat.EnemyWins:
		assert.False(t, enc.Player().IsAlive())
		assert.True(t, enc.Enemy().IsAlive())
	default:
		t.Fatalf("unexpected outcome %v", enc.Outcome())
	}
}

func TestEngine_StartGetEnd(t *testing.T) {
	eng := combat.NewEngine()
	roller := dice.NewLoggedRoller(dice.NewCryptoSource(), nil)
	enc := newEncounter(t, roller, profile("Player", 45, 12, 4), profile("Enemy", 35, 10, 3))

	require.NoError(t, eng.Start("s1", enc))
	got, ok := eng.Get("s1")
	require.True(t, ok)
	assert.Same(t, enc, got)
	assert.Equal(t, 1, eng.Active())

	other := newEncounter(t, roller, profile("Player", 45, 12, 4), profile("Enemy", 35, 10, 3))
	err := eng.Start("s1", other)
	assert.ErrorIs(t, err, combat.ErrEncounterActive)

	eng.End("s1")
	_, ok = eng.Get("s1")
	assert.False(t, ok)
	assert.Zero(t, eng.Active())
}

func TestEngine_Start_ReplacesDecidedEncounter(t *testing.T) {
	eng := combat.NewEngine()
	roller, _ := newScripted(t, 1, 1)
	done := newEncounter(t, roller, profile("Player", 50, 10, 20), profile("Enemy", 30, 5, 3))
	_, err := done.ResolveRound()
	require.NoError(t, err)
	require.True(t, done.IsCombatOver())
	require.NoError(t, eng.Start("s1", done))

	fresh := newEncounter(t, dice.NewLoggedRoller(dice.NewCryptoSource(), nil), profile("Player", 50, 10, 20), profile("Enemy", 30, 5, 3))
	require.NoError(t, eng.Start("s1", fresh))
	got, _ := eng.Get("s1")
	assert.Same(t, fresh, got)
}

func TestEngine_ConcurrentSessions(t *testing.T) {
	eng := combat.NewEngine()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			roller := dice.NewLoggedRoller(dice.NewSeededSource(uint64(i)), nil)
			enc, err := combat.NewEncounter(profile("Player", 45, 12, 4), profile("Enemy", 35, 10, 3), roller, combat.DefaultRules(), nil)
			if err != nil {
				t.Error(err)
				return
			}
			if err := eng.Start(key, enc); err != nil {
				t.Error(err)
				return
			}
			for !enc.IsCombatOver() {
				if _, err := enc.ResolveRound(); err != nil {
					t.Error(err)
					return
				}
			}
			eng.End(key)
		}(i)
	}
	wg.Wait()
	assert.Zero(t, eng.Active())
}
