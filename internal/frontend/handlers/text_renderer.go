package handlers

import (
	"fmt"

	"github.com/cory-johannsen/wfrp-duel/internal/frontend/telnet"
	"github.com/cory-johannsen/wfrp-duel/internal/game/character"
	"github.com/cory-johannsen/wfrp-duel/internal/game/combat"
)

// RenderRound formats a resolved round as colored log lines: a header, then
// each attack in resolution order, then the result banner once decided.
//
// Postcondition: Returns at least two lines.
func RenderRound(r combat.RoundResult) []string {
	lines := []string{telnet.Colorf(telnet.BrightYellow, "=== Round %d ===", r.Number)}
	lines = append(lines, RenderAttack(r.PlayerAttack)...)
	if r.EnemyAttack != nil {
		lines = append(lines, RenderAttack(*r.EnemyAttack)...)
	}
	if r.Outcome.Decided() {
		lines = append(lines, RenderOutcome(r.Outcome))
	}
	return lines
}

// RenderAttack formats one attack: the aimed location and roll, then the hit
// or miss, then any critical injury.
func RenderAttack(a combat.AttackResult) []string {
	lines := []string{telnet.Colorf(telnet.White,
		"%s aimed for the %s and rolled %d (target WS: %d).",
		a.Attacker, a.Location, a.Roll, a.TargetSkill)}

	if !a.Hit {
		return append(lines, telnet.Colorf(telnet.Dim, "%s missed!", a.Attacker))
	}

	afterHit := a.DefenderWounds
	if a.Critical != nil {
		afterHit += a.Critical.ExtraWounds
	}
	lines = append(lines, telnet.Colorf(telnet.Green,
		"%s hit %s's %s for %d damage! %s now has %d wounds.",
		a.Attacker, a.Defender, a.Location, a.Damage, a.Defender, afterHit))

	if a.Critical != nil {
		lines = append(lines, renderCritical(a.Defender, *a.Critical)...)
	}
	return lines
}

func renderCritical(defender string, c combat.CriticalResult) []string {
	lines := []string{
		telnet.Colorf(telnet.BrightRed, "Critical hit on %s's %s! Rolled %d for severity.", defender, c.Location, c.Roll),
		telnet.Colorize(telnet.Red, severityText(c.Severity)),
	}
	if c.ExtraWounds > 0 && !c.TakenOut {
		lines = append(lines, telnet.Colorf(telnet.Red, "%s now has %d wounds.", defender, c.WoundsAfter))
	}
	return lines
}

func severityText(s combat.Severity) string {
	switch s {
	case combat.SeverityMinor:
		return "Minor Injury. No additional effect."
	case combat.SeverityMajor:
		return "Major Injury. An additional wound inflicted."
	case combat.SeveritySevere:
		return "Severe Injury. Two additional wounds inflicted."
	case combat.SeverityFatal:
		return "Fatal Injury. The target is taken out!"
	default:
		return s.String()
	}
}

// RenderOutcome formats the result banner for a decided outcome.
func RenderOutcome(o combat.Outcome) string {
	switch o {
	case combat.PlayerWins:
		return telnet.Colorize(telnet.BrightGreen, "Player wins!")
	case combat.EnemyWins:
		return telnet.Colorize(telnet.BrightRed, "Enemy wins!")
	default:
		return telnet.Colorize(telnet.Dim, "The duel continues.")
	}
}

// RenderStatus formats both combatants' current wounds.
func RenderStatus(enc *combat.Encounter) []string {
	lines := []string{
		telnet.Colorf(telnet.BrightWhite, "Round %d (%s)", enc.Round(), enc.Outcome()),
		renderCombatant("Player", enc.Player()),
		renderCombatant("Enemy", enc.Enemy()),
	}
	if winner, ok := enc.Winner(); ok {
		lines = append(lines, telnet.Colorf(telnet.Cyan, "%s stands victorious.", winner))
	}
	return lines
}

func renderCombatant(label string, c *combat.Combatant) string {
	color := telnet.Green
	if !c.IsAlive() {
		color = telnet.Red
	}
	return fmt.Sprintf("  %-7s %s%-16s%s WS %-3d S %-2d Wounds %d",
		label+":", color, c.Name(), telnet.Reset, c.WeaponSkill(), c.Strength(), c.Wounds())
}

// RenderProfiles formats a numbered roster listing under title.
func RenderProfiles(title string, profiles []*character.Profile) []string {
	lines := []string{telnet.Colorize(telnet.BrightWhite, title)}
	if len(profiles) == 0 {
		return append(lines, telnet.Colorize(telnet.Dim, "  (none)"))
	}
	for i, p := range profiles {
		lines = append(lines, fmt.Sprintf("  %s%2d.%s %-16s WS %-3d W %-3d S %d",
			telnet.BrightCyan, i+1, telnet.Reset, p.Name, p.WeaponSkill, p.Wounds, p.Strength))
	}
	return lines
}
