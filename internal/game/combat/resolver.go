package combat

// AttackResult holds the outcome of a single attack.
type AttackResult struct {
	// Attacker is the attacking combatant's name.
	Attacker string
	// Defender is the defending combatant's name.
	Defender string
	// Roll is the raw d100 result.
	Roll int
	// Location is the hit location derived from Roll, computed for misses too.
	Location Location
	// TargetSkill is the attacker's weapon skill the roll was checked against.
	TargetSkill int
	// Hit is true iff Roll <= TargetSkill.
	Hit bool
	// Damage is the wounds removed by the hit itself (zero on a miss).
	Damage int
	// DefenderWounds is the defender's wound pool after the attack, criticals included.
	DefenderWounds int
	// Critical is non-nil when the hit dropped the defender to zero wounds or below.
	Critical *CriticalResult
}

// TotalWounds returns all wounds removed by this attack, including critical extras.
//
// Postcondition: Returns >= 0.
func (r AttackResult) TotalWounds() int {
	total := r.Damage
	if r.Critical != nil {
		total += r.Critical.ExtraWounds
	}
	return total
}

// ResolveAttack performs one percentile attack of attacker against defender.
// The d100 roll hits iff it is at or below the attacker's weapon skill; a hit
// deals flat damage equal to the attacker's strength. When the hit leaves the
// defender at zero wounds or below, a critical injury is resolved at the hit
// location before returning.
//
// Precondition: attacker and defender must be non-nil; roller must be non-nil.
// Postcondition: attacker is never mutated; one d100 is drawn, plus one d10
// iff a critical is resolved.
func ResolveAttack(attacker, defender *Combatant, roller Roller, rules Rules) AttackResult {
	roll := roller.D100()
	r := AttackResult{
		Attacker:    attacker.name,
		Defender:    defender.name,
		Roll:        roll,
		Location:    HitLocation(roll),
		TargetSkill: attacker.weaponSkill,
	}

	if roll <= attacker.weaponSkill {
		r.Hit = true
		r.Damage = attacker.strength
		defender.wounds -= r.Damage
		if defender.wounds <= 0 {
			crit := ResolveCritical(defender, r.Location, roller, rules)
			r.Critical = &crit
		}
	}

	r.DefenderWounds = defender.wounds
	return r
}
