package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wfrp-duel/internal/game/combat"
)

func TestHitLocation_Table(t *testing.T) {
	cases := []struct {
		roll int
		want combat.Location
	}{
		{1, combat.LocationHead},      // "01" -> 10
		{10, combat.LocationHead},     // "10" -> 1
		{51, combat.LocationHead},     // "51" -> 15
		{61, combat.LocationRightArm}, // "61" -> 16
		{53, combat.LocationRightArm}, // "53" -> 35
		{63, combat.LocationLeftArm},  // "63" -> 36
		{55, combat.LocationLeftArm},  // 55
		{65, combat.LocationBody},     // "65" -> 56
		{8, combat.LocationBody},      // "08" -> 80
		{18, combat.LocationLegs},     // "18" -> 81
		{99, combat.LocationLegs},     // 99
		{100, combat.LocationHead},    // "100" -> "001" = 1
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, combat.HitLocation(tc.roll), "roll %d", tc.roll)
	}
}

// TestHitLocation_DigitReversalNotDirectRange pins the reversal: a direct
// range map would send 20 to Right Arm, the reversed "02" lands on Head.
func TestHitLocation_DigitReversalNotDirectRange(t *testing.T) {
	assert.Equal(t, combat.LocationHead, combat.HitLocation(20))
	assert.Equal(t, combat.LocationRightArm, combat.HitLocation(91))
}

func TestHitLocation_TotalAndPure(t *testing.T) {
	valid := map[combat.Location]bool{
		combat.LocationHead: true, combat.LocationRightArm: true, combat.LocationLeftArm: true,
		combat.LocationBody: true, combat.LocationLegs: true,
	}
	rapid.Check(t, func(rt *rapid.T) {
		roll := rapid.IntRange(1, 100).Draw(rt, "roll")
		loc := combat.HitLocation(roll)
		assert.True(rt, valid[loc], "roll %d mapped to %v", roll, loc)
		assert.Equal(rt, loc, combat.HitLocation(roll), "HitLocation must be pure")
		assert.NotEqual(rt, "unknown", loc.String())
	})
}

func TestHitLocation_PanicsOutsideRange(t *testing.T) {
	assert.Panics(t, func() { combat.HitLocation(0) })
	assert.Panics(t, func() { combat.HitLocation(101) })
}

func TestLocation_String(t *testing.T) {
	assert.Equal(t, "Head", combat.LocationHead.String())
	assert.Equal(t, "Right Arm", combat.LocationRightArm.String())
	assert.Equal(t, "Left Arm", combat.LocationLeftArm.String())
	assert.Equal(t, "Body", combat.LocationBody.String())
	assert.Equal(t, "Legs", combat.LocationLegs.String())
	assert.Equal(t, "unknown", combat.Location(0).String())
}

func TestCombatant_IsAlive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.Int().Draw(rt, "wounds")
		c := combatant("Any", 30, w, 3)
		assert.Equal(rt, w > 0, c.IsAlive(), "wounds=%d", w)
	})
	assert.False(t, combatant("Zero", 30, 0, 3).IsAlive())
	assert.True(t, combatant("One", 30, 1, 3).IsAlive())
}

func TestNewCombatant_CopiesProfile(t *testing.T) {
	c := combatant("Gunther", 45, 12, 4)
	assert.Equal(t, "Gunther", c.Name())
	assert.Equal(t, 45, c.WeaponSkill())
	assert.Equal(t, 12, c.Wounds())
	assert.Equal(t, 4, c.Strength())
}

func TestDefaultRules(t *testing.T) {
	assert.Equal(t, 10, combat.DefaultRules().FatalWoundPenalty)
}
