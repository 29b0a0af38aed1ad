// Package ruleset loads duel rosters: the Player and Enemy stat blocks a
// duel is fought between.
package ruleset

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/wfrp-duel/internal/game/character"
)

var (
	// ErrProfileNotFound is returned when a roster lookup matches no profile.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrUnknownRole is returned for an entry whose role key is neither player nor enemy.
	ErrUnknownRole = errors.New("unknown role")
)

// Roster holds the selectable players and enemies, in load order.
type Roster struct {
	Players []*character.Profile
	Enemies []*character.Profile
}

// NewRoster partitions profiles by role.
//
// Precondition: every profile must be non-nil.
// Postcondition: Returns an error if two profiles share a name (case-insensitive).
func NewRoster(profiles []*character.Profile) (*Roster, error) {
	seen := make(map[string]bool, len(profiles))
	r := &Roster{}
	for _, p := range profiles {
		key := strings.ToLower(p.Name)
		if seen[key] {
			return nil, fmt.Errorf("duplicate profile %q", p.Name)
		}
		seen[key] = true
		switch p.Role {
		case character.RolePlayer:
			r.Players = append(r.Players, p)
		case character.RoleEnemy:
			r.Enemies = append(r.Enemies, p)
		}
	}
	return r, nil
}

// Roster returns r itself, so a loaded Roster can stand in wherever a
// roster source is expected.
func (r *Roster) Roster(context.Context) (*Roster, error) {
	return r, nil
}

// Profiles returns the profiles of the given role.
func (r *Roster) Profiles(role character.Role) []*character.Profile {
	if role == character.RolePlayer {
		return r.Players
	}
	return r.Enemies
}

// Find selects a profile of role by 1-based index ("2") or by
// case-insensitive name, falling back to a unique name prefix.
//
// Postcondition: Returns the profile or an error wrapping ErrProfileNotFound.
func (r *Roster) Find(role character.Role, query string) (*character.Profile, error) {
	list := r.Profiles(role)
	query = strings.TrimSpace(query)

	if n, err := strconv.Atoi(query); err == nil {
		if n >= 1 && n <= len(list) {
			return list[n-1], nil
		}
		return nil, fmt.Errorf("%w: %s #%d", ErrProfileNotFound, role, n)
	}

	var prefixed []*character.Profile
	lower := strings.ToLower(query)
	for _, p := range list {
		name := strings.ToLower(p.Name)
		if name == lower {
			return p, nil
		}
		if lower != "" && strings.HasPrefix(name, lower) {
			prefixed = append(prefixed, p)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], nil
	}
	return nil, fmt.Errorf("%w: %s %q", ErrProfileNotFound, role, query)
}

// buildEntries converts raw roster entries into profiles. Each entry carries a
// name, an optional role, and the stat keys. An entry without a role key whose
// name names neither side is skipped, as non-combatant sections are; an
// explicit role that names neither side is an error.
//
// Postcondition: Returns every stat error found, joined, and no profiles when any exist.
func buildEntries(entries []map[string]any, origin string) ([]*character.Profile, error) {
	var (
		profiles []*character.Profile
		errs     []error
	)
	for i, entry := range entries {
		values := make(map[string]string, len(entry))
		for k, v := range entry {
			// A key with no value counts as absent.
			if v == nil {
				continue
			}
			values[strings.ToLower(k)] = fmt.Sprint(v)
		}
		name := strings.TrimSpace(values["name"])
		if name == "" {
			errs = append(errs, fmt.Errorf("%s: entry %d has no name", origin, i+1))
			continue
		}
		delete(values, "name")

		role, ok := character.RoleForSection(name)
		if explicit, has := values["role"]; has {
			delete(values, "role")
			if role, ok = character.RoleForSection(explicit); !ok {
				errs = append(errs, fmt.Errorf("%s: entry %q: %w %q", origin, name, ErrUnknownRole, explicit))
				continue
			}
		}
		if !ok {
			continue
		}

		p, err := character.Build(name, role, values)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", origin, err))
			continue
		}
		profiles = append(profiles, p)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return profiles, nil
}
