// Package character defines the duel stat-block model and its validated
// construction from raw configuration values.
package character

import "strings"

// Role distinguishes the player's side from the enemy's side of a duel.
type Role int

const (
	RolePlayer Role = iota
	RoleEnemy
)

// String returns the roster label for the role.
func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "Player"
	case RoleEnemy:
		return "Enemy"
	default:
		return "unknown"
	}
}

// RoleForSection classifies a roster section name. Sections whose names
// contain "Player" are players, those containing "Enemy" are enemies.
//
// Postcondition: ok is false when the name carries neither marker.
func RoleForSection(section string) (role Role, ok bool) {
	lower := strings.ToLower(section)
	switch {
	case strings.Contains(lower, "player"):
		return RolePlayer, true
	case strings.Contains(lower, "enemy"):
		return RoleEnemy, true
	default:
		return 0, false
	}
}

// Profile is the immutable stat block a combatant is built from.
//
// Invariant: WeaponSkill, Wounds, and Strength are positive after Build.
type Profile struct {
	// Name identifies the profile within its roster (the section name).
	Name        string
	Role        Role
	WeaponSkill int
	Wounds      int
	Strength    int
}
