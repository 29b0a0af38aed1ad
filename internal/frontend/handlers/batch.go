package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/cory-johannsen/wfrp-duel/internal/frontend/telnet"
	"github.com/cory-johannsen/wfrp-duel/internal/game/combat"
)

// ErrRoundLimit is returned by RunToCompletion when the duel is still
// undecided after the allowed number of rounds.
var ErrRoundLimit = errors.New("round limit reached")

// RunToCompletion resolves rounds until enc is decided, writing each rendered
// round to w. ANSI colors are stripped unless color is set. A maxRounds of
// zero or less means no limit.
//
// Postcondition: Returns the decided outcome, or ErrRoundLimit with the
// encounter still ongoing.
func RunToCompletion(enc *combat.Encounter, w io.Writer, color bool, maxRounds int) (combat.Outcome, error) {
	write := func(lines []string) error {
		for _, l := range lines {
			if !color {
				l = telnet.StripANSI(l)
			}
			if _, err := fmt.Fprintln(w, l); err != nil {
				return err
			}
		}
		return nil
	}

	if err := write([]string{telnet.Colorf(telnet.BrightWhite, "%s faces %s!", enc.Player().Name(), enc.Enemy().Name())}); err != nil {
		return combat.Ongoing, err
	}
	for !enc.IsCombatOver() {
		if maxRounds > 0 && enc.Round() >= maxRounds {
			return combat.Ongoing, fmt.Errorf("%w: still undecided after %d rounds", ErrRoundLimit, enc.Round())
		}
		res, err := enc.ResolveRound()
		if err != nil {
			return combat.Ongoing, err
		}
		if err := write(RenderRound(res)); err != nil {
			return combat.Ongoing, err
		}
	}

	winner, _ := enc.Winner()
	err := write([]string{telnet.Colorf(telnet.Cyan, "%s stands victorious after %d rounds.", winner, enc.Round())})
	return enc.Outcome(), err
}
