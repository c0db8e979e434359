package combat

// SkillInfo is the metadata shared by every skill variant.
//
// Cooldown, Duration, and LevelRequired are declarative; the battle loop is
// responsible for enforcing them.
type SkillInfo struct {
	ID            string
	Name          string
	Description   string
	ManaCost      int
	Damage        int
	Cooldown      int
	Duration      int
	LevelRequired int
}

// Skill is a catalog action a Unit can invoke against a target.
// The variant set is closed: *AttackSkill, *AttackStatusSkill, *StatusSkill.
type Skill interface {
	// Info returns the skill's shared metadata.
	Info() SkillInfo
	// Resolve applies the skill's effect to target and returns the damage
	// figure for display. Mana has already been paid by the caller.
	Resolve(caster, target *Unit) int

	isSkill()
}

// CritRoller decides critical hits from a uniform draw.
// *dice.Roller satisfies it.
type CritRoller interface {
	// Chance reports whether a uniform draw in [0, 1) is below p.
	Chance(label string, p float64) bool
}

// AttackSkill deals damage with a chance to crit and carries no buff.
type AttackSkill struct {
	SkillInfo
	AttackPower       int
	CriticalHitChance float64
	roller            CritRoller
}

// NewAttackSkill returns an AttackSkill drawing crits from roller.
//
// Precondition: roller must be non-nil.
func NewAttackSkill(info SkillInfo, attackPower int, critChance float64, roller CritRoller) *AttackSkill {
	return &AttackSkill{SkillInfo: info, AttackPower: attackPower, CriticalHitChance: critChance, roller: roller}
}

func (s *AttackSkill) Info() SkillInfo { return s.SkillInfo }

// Resolve deals (AttackPower + Damage), doubled on a crit, floored at 1.
func (s *AttackSkill) Resolve(_, target *Unit) int {
	return strike(s.roller, s.ID, s.AttackPower+s.Damage, s.CriticalHitChance, target)
}

func (s *AttackSkill) isSkill() {}

// AttackStatusSkill deals damage like AttackSkill and then always applies a
// fresh buff to the target, whether or not the hit crit.
type AttackStatusSkill struct {
	SkillInfo
	AttackPower  int
	CriticalRate float64
	NewBuff      BuffFactory
	roller       CritRoller
}

// NewAttackStatusSkill returns an AttackStatusSkill.
//
// Precondition: roller must be non-nil; newBuff may be nil (no buff applied).
func NewAttackStatusSkill(info SkillInfo, attackPower int, critRate float64, newBuff BuffFactory, roller CritRoller) *AttackStatusSkill {
	return &AttackStatusSkill{SkillInfo: info, AttackPower: attackPower, CriticalRate: critRate, NewBuff: newBuff, roller: roller}
}

func (s *AttackStatusSkill) Info() SkillInfo { return s.SkillInfo }

func (s *AttackStatusSkill) Resolve(_, target *Unit) int {
	dealt := strike(s.roller, s.ID, s.AttackPower+s.Damage, s.CriticalRate, target)
	grant(s.NewBuff, target)
	return dealt
}

func (s *AttackStatusSkill) isSkill() {}

// StatusSkill only applies a buff and always reports 0 damage.
type StatusSkill struct {
	SkillInfo
	NewBuff BuffFactory
}

// NewStatusSkill returns a StatusSkill.
func NewStatusSkill(info SkillInfo, newBuff BuffFactory) *StatusSkill {
	return &StatusSkill{SkillInfo: info, NewBuff: newBuff}
}

func (s *StatusSkill) Info() SkillInfo { return s.SkillInfo }

func (s *StatusSkill) Resolve(_, target *Unit) int {
	grant(s.NewBuff, target)
	return 0
}

func (s *StatusSkill) isSkill() {}

// strike runs the damage half of skill resolution: crit roll, floor of 1,
// then TakeDamage. It returns the pre-defense figure.
func strike(roller CritRoller, label string, base int, critChance float64, target *Unit) int {
	final := base
	if roller.Chance(label, critChance) {
		final *= 2
	}
	final = max(1, final)
	target.TakeDamage(final)
	return final
}

func grant(newBuff BuffFactory, target *Unit) {
	if newBuff == nil {
		return
	}
	target.AddBuff(newBuff())
}
