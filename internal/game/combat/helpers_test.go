package combat_test

import (
	"testing"

	"github.com/cory-johannsen/wfrp-duel/internal/game/character"
	"github.com/cory-johannsen/wfrp-duel/internal/game/combat"
	"github.com/cory-johannsen/wfrp-duel/internal/game/dice"
)

// scriptedSrc is a deterministic Source that yields preset die faces in order.
// Each entry is the face the die should show, so Intn returns face-1.
// It fails the test if more draws are requested than scripted.
type scriptedSrc struct {
	t     *testing.T
	faces []int
	calls int
}

func (s *scriptedSrc) Intn(n int) int {
	s.t.Helper()
	if s.calls >= len(s.faces) {
		s.t.Fatalf("unexpected draw #%d (Intn(%d)); only %d scripted", s.calls+1, n, len(s.faces))
	}
	face := s.faces[s.calls]
	s.calls++
	if face < 1 || face > n {
		s.t.Fatalf("scripted face %d out of range for d%d", face, n)
	}
	return face - 1
}

// newScripted returns a Roller over the given faces plus the source for call counting.
func newScripted(t *testing.T, faces ...int) (*dice.Roller, *scriptedSrc) {
	t.Helper()
	src := &scriptedSrc{t: t, faces: faces}
	return dice.NewLoggedRoller(src, nil), src
}

func profile(name string, ws, wounds, str int) character.Profile {
	return character.Profile{Name: name, WeaponSkill: ws, Wounds: wounds, Strength: str}
}

func combatant(name string, ws, wounds, str int) *combat.Combatant {
	return combat.NewCombatant(profile(name, ws, wounds, str))
}
