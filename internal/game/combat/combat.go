// Package combat implements the turn-based combat rules: units, their
// resources and buffs, and skill resolution.
//
// Everything here is synchronous. The battle loop that owns turn order,
// cooldown timers, and target selection lives outside this package and
// drives it through UseSkill, TakeDamage, AddBuff, and UpdateBuffs.
package combat

// AliveUnits returns the members of units that are still alive, in order.
func AliveUnits(units []*Unit) []*Unit {
	out := make([]*Unit, 0, len(units))
	for _, u := range units {
		if u.IsAlive() {
			out = append(out, u)
		}
	}
	return out
}

// AffordableSkills returns the known skills u can currently pay for.
func AffordableSkills(u *Unit) []Skill {
	var out []Skill
	for _, s := range u.skills {
		if s.Info().ManaCost <= u.mana {
			out = append(out, s)
		}
	}
	return out
}
