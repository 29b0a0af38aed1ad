package combat

// Severity is the tier of a critical injury.
type Severity int

const (
	SeverityMinor Severity = iota
	SeverityMajor
	SeveritySevere
	SeverityFatal
)

// String returns a human-readable severity label.
func (s Severity) String() string {
	switch s {
	case SeverityMinor:
		return "Minor"
	case SeverityMajor:
		return "Major"
	case SeveritySevere:
		return "Severe"
	case SeverityFatal:
		return "Fatal"
	default:
		return "unknown"
	}
}

// SeverityFor maps a d10 roll onto the critical table:
// 1-3 Minor, 4-6 Major, 7-9 Severe, 10 Fatal.
//
// Precondition: 1 <= roll <= 10.
func SeverityFor(roll int) Severity {
	switch {
	case roll <= 3:
		return SeverityMinor
	case roll <= 6:
		return SeverityMajor
	case roll <= 9:
		return SeveritySevere
	default:
		return SeverityFatal
	}
}

// CriticalResult records one critical-injury resolution.
type CriticalResult struct {
	// Roll is the d10 severity roll.
	Roll     int
	Severity Severity
	Location Location
	// ExtraWounds is the wound change beyond the triggering hit. It is negative
	// for a Fatal injury when the hit already left the defender below
	// -FatalWoundPenalty, since Fatal always settles wounds at exactly that value.
	ExtraWounds int
	// TakenOut is set for Fatal injuries.
	TakenOut bool
	// WoundsAfter is the defender's wound pool once the injury is applied.
	WoundsAfter int
}

// ResolveCritical rolls a d10 on the critical table and applies the extra
// wounds to defender. A Fatal injury reduces wounds by the current value
// plus rules.FatalWoundPenalty, leaving exactly -FatalWoundPenalty; after an
// overkill hit that raises wounds back up to -FatalWoundPenalty.
//
// Precondition: defender.Wounds() <= 0; roller must be non-nil.
// Postcondition: Exactly one d10 is drawn; only defender's wounds change.
func ResolveCritical(defender *Combatant, loc Location, roller Roller, rules Rules) CriticalResult {
	roll := roller.D10()
	sev := SeverityFor(roll)

	var extra int
	switch sev {
	case SeverityMajor:
		extra = 1
	case SeveritySevere:
		extra = 2
	case SeverityFatal:
		extra = defender.wounds + rules.FatalWoundPenalty
	}
	defender.wounds -= extra

	return CriticalResult{
		Roll:        roll,
		Severity:    sev,
		Location:    loc,
		ExtraWounds: extra,
		TakenOut:    sev == SeverityFatal,
		WoundsAfter: defender.wounds,
	}
}
