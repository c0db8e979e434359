package combat

import (
	"slices"

	"github.com/google/uuid"
)

// MaxMana is the fixed mana pool every unit is constructed with.
const MaxMana = 100

// Stats holds the starting values used to construct a Unit.
type Stats struct {
	MaxHP        int
	Damage       int
	Defense      int
	Speed        int
	CriticalRate float64
	Level        int
	Exp          int
}

// Unit is one combat-capable entity: a player archetype or an NPC.
//
// A Unit is not safe for concurrent use; the battle loop must serialise all
// actions. Skills are shared references; buffs are owned by the unit.
type Unit struct {
	ID           string
	Name         string
	Damage       int
	CriticalRate float64
	Defense      int
	Speed        int
	Exp          int
	Level        int
	Row          int
	Col          int

	// OnDeath runs once when the unit transitions from alive to dead,
	// after IsAlive already reports false. nil means no extra effect.
	OnDeath func(u *Unit)

	hp      int
	maxHP   int
	mana    int
	maxMana int
	alive   bool
	buffs   []Buff
	skills  []Skill

	// critBase is CriticalRate before the first outstanding shift;
	// critShift is the sum of outstanding shifts in basis points.
	critBase  float64
	critShift int
}

// NewUnit constructs a living unit at full HP and full mana.
//
// Precondition: s.MaxHP should be >= 1; lower values are raised to 1.
// Postcondition: HP() == MaxHP(); Mana() == MaxMana() == 100; IsAlive().
func NewUnit(name string, s Stats) *Unit {
	maxHP := s.MaxHP
	if maxHP < 1 {
		maxHP = 1
	}
	return &Unit{
		ID:           uuid.NewString(),
		Name:         name,
		Damage:       s.Damage,
		CriticalRate: s.CriticalRate,
		Defense:      s.Defense,
		Speed:        s.Speed,
		Exp:          s.Exp,
		Level:        s.Level,
		hp:           maxHP,
		maxHP:        maxHP,
		mana:         MaxMana,
		maxMana:      MaxMana,
		alive:        true,
	}
}

// HP returns the current hit points.
func (u *Unit) HP() int { return u.hp }

// MaxHP returns the hit point ceiling.
func (u *Unit) MaxHP() int { return u.maxHP }

// Mana returns the current mana.
func (u *Unit) Mana() int { return u.mana }

// MaxMana returns the mana ceiling.
func (u *Unit) MaxMana() int { return u.maxMana }

// IsAlive reports whether the unit has not died.
func (u *Unit) IsAlive() bool { return u.alive }

// TakeDamage applies a hit of the given raw amount. Defense reduces it, but a
// hit always removes at least 1 HP.
//
// Postcondition: HP decreased by min(HP, max(1, amount-Defense)); 0 <= HP.
// If HP reaches 0 on a living unit, Die is called.
// Returns the HP actually removed.
func (u *Unit) TakeDamage(amount int) int {
	actual := max(1, amount-u.Defense)
	return u.loseHP(actual)
}

// AdjustHP applies a raw HP delta that bypasses defense, as used by scripted
// damage-over-time and regeneration. Positive deltas heal up to MaxHP.
//
// Postcondition: 0 <= HP <= MaxHP. Returns the signed change actually applied.
func (u *Unit) AdjustHP(delta int) int {
	if delta >= 0 {
		return u.Heal(delta)
	}
	return -u.loseHP(-delta)
}

func (u *Unit) loseHP(n int) int {
	before := u.hp
	u.hp -= n
	if u.hp < 0 {
		u.hp = 0
	}
	if u.hp == 0 && u.alive {
		u.Die()
	}
	return before - u.hp
}

// Die marks the unit dead and runs the OnDeath hook. The unit object persists
// as a corpse for the caller to handle.
func (u *Unit) Die() {
	u.alive = false
	if u.OnDeath != nil {
		u.OnDeath(u)
	}
}

// Heal restores up to n HP on a living unit, never exceeding MaxHP.
// Returns the HP actually restored.
func (u *Unit) Heal(n int) int {
	if n <= 0 || !u.alive {
		return 0
	}
	before := u.hp
	u.hp = min(u.maxHP, u.hp+n)
	return u.hp - before
}

// RestoreMana adds up to n mana, never exceeding MaxMana.
// Returns the mana actually restored.
func (u *Unit) RestoreMana(n int) int {
	if n <= 0 {
		return 0
	}
	before := u.mana
	u.mana = min(u.maxMana, u.mana+n)
	return u.mana - before
}

// GainExp adds n experience points. Negative n is ignored.
func (u *Unit) GainExp(n int) {
	if n > 0 {
		u.Exp += n
	}
}

// MoveTo sets the unit's grid position.
func (u *Unit) MoveTo(row, col int) {
	u.Row, u.Col = row, col
}

// CritBasisPoints is the number of basis points in a critical rate of 1.
const CritBasisPoints = 10000

// ShiftCriticalRate moves CriticalRate by bp basis points. Outstanding shifts
// are summed as integers over the rate the unit had before the first of them,
// so once they net to zero CriticalRate is restored bit for bit. A direct
// write to CriticalRate while a shift is outstanding is discarded by the next
// shift.
func (u *Unit) ShiftCriticalRate(bp int) {
	if bp == 0 {
		return
	}
	if u.critShift == 0 {
		u.critBase = u.CriticalRate
	}
	u.critShift += bp
	u.CriticalRate = u.critBase + float64(u.critShift)/CritBasisPoints
}

// AddBuff appends b and applies it immediately; buffs take effect the instant
// they are granted. A nil buff is ignored.
func (u *Unit) AddBuff(b Buff) {
	if b == nil {
		return
	}
	u.buffs = append(u.buffs, b)
	b.ApplyBuff(u)
}

// UpdateBuffs advances every active buff by one turn, then removes and
// unapplies each buff whose expiry check reports true. Work happens on a
// snapshot, so removals never skip or repeat a neighbour.
//
// Postcondition: exactly the expired buffs are removed and unapplied; the
// survivors keep their relative order. Buffs granted while ticking are kept
// after the survivors and are not ticked until the next call.
func (u *Unit) UpdateBuffs() {
	snapshot := slices.Clone(u.buffs)
	for _, b := range snapshot {
		b.UpdateAfterTurn()
	}
	granted := slices.Clone(u.buffs[len(snapshot):])

	kept := make([]Buff, 0, len(snapshot))
	var expired []Buff
	for _, b := range snapshot {
		if b.CheckExpired() {
			expired = append(expired, b)
			continue
		}
		kept = append(kept, b)
	}
	u.buffs = append(kept, granted...)
	for _, b := range expired {
		b.RemoveBuff(u)
	}
}

// Buffs returns a copy of the active buff list.
func (u *Unit) Buffs() []Buff {
	return slices.Clone(u.buffs)
}

// LearnSkill adds s to the known skill list. A nil skill is ignored.
func (u *Unit) LearnSkill(s Skill) {
	if s == nil {
		return
	}
	u.skills = append(u.skills, s)
}

// Skills returns a copy of the known skill list.
func (u *Unit) Skills() []Skill {
	return slices.Clone(u.skills)
}

// UseSkill spends the skill's mana cost and resolves it against target.
// With insufficient mana nothing changes and 0 is returned, which is
// indistinguishable from a resolved skill that dealt no damage; callers that
// need to tell the two apart use TryUseSkill.
func (u *Unit) UseSkill(skill Skill, target *Unit) int {
	result, _ := u.TryUseSkill(skill, target)
	return result
}

// TryUseSkill is UseSkill with an explicit success flag.
//
// Postcondition: ok is false iff Mana() < skill.ManaCost(), in which case no
// state was mutated. When ok, Mana() decreased by exactly skill.ManaCost().
func (u *Unit) TryUseSkill(skill Skill, target *Unit) (result int, ok bool) {
	cost := skill.Info().ManaCost
	if u.mana < cost {
		return 0, false
	}
	u.mana -= cost
	return skill.Resolve(u, target), true
}
