package skill

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/condition"
)

// Catalog holds the shared combat.Skill values built from Defs.
// It is read-only after NewCatalog returns and safe for concurrent readers.
type Catalog struct {
	skills map[string]combat.Skill
}

// NewCatalog builds one combat.Skill per def. Status kinds resolve their
// condition through conditions; scripts and roller are handed to the skills
// and may be shared.
//
// Precondition: conditions and roller must be non-nil; scripts may be nil.
// Postcondition: returns an error if an ID repeats or a condition is unknown.
func NewCatalog(defs []*Def, conditions *condition.Registry, scripts condition.ScriptRunner, roller combat.CritRoller) (*Catalog, error) {
	c := &Catalog{skills: make(map[string]combat.Skill, len(defs))}
	for _, d := range defs {
		if _, dup := c.skills[d.ID]; dup {
			return nil, fmt.Errorf("skill %q defined twice", d.ID)
		}
		s, err := build(d, conditions, scripts, roller)
		if err != nil {
			return nil, fmt.Errorf("skill %q: %w", d.ID, err)
		}
		c.skills[d.ID] = s
	}
	return c, nil
}

func build(d *Def, conditions *condition.Registry, scripts condition.ScriptRunner, roller combat.CritRoller) (combat.Skill, error) {
	info := combat.SkillInfo{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		ManaCost:      d.ManaCost,
		Damage:        d.Damage,
		Cooldown:      d.Cooldown,
		Duration:      d.Duration,
		LevelRequired: d.LevelRequired,
	}
	switch d.Kind {
	case KindAttack:
		return combat.NewAttackSkill(info, d.AttackPower, d.CriticalChance, roller), nil
	case KindStatus:
		factory, err := conditions.Factory(d.Condition, scripts)
		if err != nil {
			return nil, err
		}
		return combat.NewStatusSkill(info, factory), nil
	case KindAttackStatus:
		factory, err := conditions.Factory(d.Condition, scripts)
		if err != nil {
			return nil, err
		}
		return combat.NewAttackStatusSkill(info, d.AttackPower, d.CriticalChance, factory, roller), nil
	default:
		return nil, fmt.Errorf("unknown kind %q", d.Kind)
	}
}

// Skill returns the skill for id and whether it exists.
func (c *Catalog) Skill(id string) (combat.Skill, bool) {
	s, ok := c.skills[id]
	return s, ok
}

// All returns every skill sorted by ID.
func (c *Catalog) All() []combat.Skill {
	out := make([]combat.Skill, 0, len(c.skills))
	for _, s := range c.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Info().ID < out[j].Info().ID })
	return out
}

// Learnable returns the skills whose LevelRequired is at most level, sorted by ID.
func (c *Catalog) Learnable(level int) []combat.Skill {
	var out []combat.Skill
	for _, s := range c.All() {
		if s.Info().LevelRequired <= level {
			out = append(out, s)
		}
	}
	return out
}
