package character

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Stat keys accepted in roster sections.
const (
	KeyWeaponSkill = "weapon_skill"
	KeyWounds      = "wounds"
	KeyStrength    = "strength"
)

var (
	// ErrMissingStat is returned when a roster section omits a required stat.
	ErrMissingStat = errors.New("missing stat")
	// ErrInvalidStat is returned when a stat is not a positive integer.
	ErrInvalidStat = errors.New("invalid stat")
)

// ConfigError describes every stat problem found in one roster section.
type ConfigError struct {
	Section  string
	Problems []error
}

func (e *ConfigError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Error())
	}
	return fmt.Sprintf("section %q: %s", e.Section, strings.Join(msgs, "; "))
}

// Unwrap exposes the individual problems to errors.Is.
func (e *ConfigError) Unwrap() []error { return e.Problems }

// Build constructs a Profile from the raw key/value pairs of one roster section.
// Keys are matched case-insensitively; all three stats must be present and
// parse as positive integers.
//
// Precondition: name must be non-empty.
// Postcondition: Returns a fully populated Profile, or a *ConfigError listing
// every missing or malformed stat. No partial Profile is ever returned.
func Build(name string, role Role, values map[string]string) (*Profile, error) {
	if name == "" {
		return nil, errors.New("profile name must not be empty")
	}

	norm := make(map[string]string, len(values))
	for k, v := range values {
		norm[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}

	var problems []error
	stat := func(key string) int {
		raw, ok := norm[key]
		if !ok || raw == "" {
			problems = append(problems, fmt.Errorf("%w: %s", ErrMissingStat, key))
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			problems = append(problems, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidStat, key, raw))
			return 0
		}
		if n <= 0 {
			problems = append(problems, fmt.Errorf("%w: %s must be > 0, got %d", ErrInvalidStat, key, n))
			return 0
		}
		return n
	}

	p := &Profile{
		Name:        name,
		Role:        role,
		WeaponSkill: stat(KeyWeaponSkill),
		Wounds:      stat(KeyWounds),
		Strength:    stat(KeyStrength),
	}
	if len(problems) > 0 {
		return nil, &ConfigError{Section: name, Problems: problems}
	}
	return p, nil
}

// Validate re-checks the positive-stat invariant on a Profile that was not
// produced by Build, e.g. one scanned from storage.
//
// Postcondition: Returns nil iff all stats are positive and Name is non-empty.
func (p *Profile) Validate() error {
	var problems []error
	if p.Name == "" {
		problems = append(problems, errors.New("name must not be empty"))
	}
	check := func(key string, v int) {
		if v <= 0 {
			problems = append(problems, fmt.Errorf("%w: %s must be > 0, got %d", ErrInvalidStat, key, v))
		}
	}
	check(KeyWeaponSkill, p.WeaponSkill)
	check(KeyWounds, p.Wounds)
	check(KeyStrength, p.Strength)
	if len(problems) > 0 {
		return &ConfigError{Section: p.Name, Problems: problems}
	}
	return nil
}
