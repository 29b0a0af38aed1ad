// Package combat implements the duel combat engine: hit location, attack,
// critical-injury, and round resolution between a player and an enemy.
package combat

import (
	"fmt"
	"strconv"

	"github.com/cory-johannsen/wfrp-duel/internal/game/character"
)

// DefaultFatalWoundPenalty is the margin below zero a Fatal critical drives
// the defender's wounds to.
const DefaultFatalWoundPenalty = 10

// Rules holds the tunable constants of the critical-injury table.
type Rules struct {
	// FatalWoundPenalty: a Fatal injury reduces wounds by current wounds plus this value.
	FatalWoundPenalty int
}

// DefaultRules returns the stock ruleset.
func DefaultRules() Rules {
	return Rules{FatalWoundPenalty: DefaultFatalWoundPenalty}
}

// Roller is the subset of dice.Roller used by the resolvers.
// Using a local interface keeps the engine independent of how dice are logged.
type Roller interface {
	D10() int
	D100() int
}

// Combatant is the live record of one side of a duel.
//
// Invariant: wounds is only changed by resolvers in this package.
type Combatant struct {
	name        string
	weaponSkill int
	strength    int
	wounds      int
}

// NewCombatant builds a live Combatant from a stat block.
//
// Postcondition: Wounds() == p.Wounds.
func NewCombatant(p character.Profile) *Combatant {
	return &Combatant{
		name:        p.Name,
		weaponSkill: p.WeaponSkill,
		strength:    p.Strength,
		wounds:      p.Wounds,
	}
}

// Name returns the combatant's display name.
func (c *Combatant) Name() string { return c.name }

// WeaponSkill returns the percentile hit threshold.
func (c *Combatant) WeaponSkill() int { return c.weaponSkill }

// Strength returns the flat damage dealt per hit.
func (c *Combatant) Strength() int { return c.strength }

// Wounds returns the current wound pool; it may be zero or negative.
func (c *Combatant) Wounds() int { return c.wounds }

// IsAlive reports whether the combatant can still fight.
//
// Postcondition: Returns true iff Wounds() > 0.
func (c *Combatant) IsAlive() bool { return c.wounds > 0 }

// Location is the body part struck by an attack.
type Location int

const (
	LocationHead Location = iota + 1
	LocationRightArm
	LocationLeftArm
	LocationBody
	LocationLegs
)

// String returns the human-readable location label.
func (l Location) String() string {
	switch l {
	case LocationHead:
		return "Head"
	case LocationRightArm:
		return "Right Arm"
	case LocationLeftArm:
		return "Left Arm"
	case LocationBody:
		return "Body"
	case LocationLegs:
		return "Legs"
	default:
		return "unknown"
	}
}

// HitLocation derives the struck location from a d100 roll. The roll is
// zero-padded to two digits, its digits are reversed, and the reversed value
// is looked up in the location table. A roll of 100 reverses to "001" (Head).
//
// Precondition: 1 <= roll <= 100.
// Postcondition: Returns one of the five Location constants.
func HitLocation(roll int) Location {
	if roll < 1 || roll > 100 {
		panic(fmt.Sprintf("combat: HitLocation called with roll %d outside [1,100]", roll))
	}
	digits := []byte(fmt.Sprintf("%02d", roll))
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	reversed, _ := strconv.Atoi(string(digits))

	switch {
	case reversed >= 1 && reversed <= 15:
		return LocationHead
	case reversed >= 16 && reversed <= 35:
		return LocationRightArm
	case reversed >= 36 && reversed <= 55:
		return LocationLeftArm
	case reversed >= 56 && reversed <= 80:
		return LocationBody
	default:
		return LocationLegs
	}
}
