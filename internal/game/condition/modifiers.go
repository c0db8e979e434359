package condition

import (
	"math"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
)

// Modifiers are flat stat changes a condition holds on a unit while active.
// Negative values are penalties.
type Modifiers struct {
	Damage       int     `yaml:"damage"`
	Defense      int     `yaml:"defense"`
	Speed        int     `yaml:"speed"`
	CriticalRate float64 `yaml:"critical_rate"`
}

// IsZero reports whether the modifiers change nothing.
func (m Modifiers) IsZero() bool {
	return m == Modifiers{}
}

// critBasisPoints rounds the critical rate change to whole basis points.
func (m Modifiers) critBasisPoints() int {
	return int(math.Round(m.CriticalRate * combat.CritBasisPoints))
}

// apply adds m to u's stats. The critical rate moves in whole basis points so
// that revert restores it exactly.
func (m Modifiers) apply(u *combat.Unit) {
	u.Damage += m.Damage
	u.Defense += m.Defense
	u.Speed += m.Speed
	u.ShiftCriticalRate(m.critBasisPoints())
}

func (m Modifiers) revert(u *combat.Unit) {
	u.Damage -= m.Damage
	u.Defense -= m.Defense
	u.Speed -= m.Speed
	u.ShiftCriticalRate(-m.critBasisPoints())
}
