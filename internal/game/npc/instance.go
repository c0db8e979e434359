package npc

import (
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
)

// SkillSource resolves skill IDs to shared catalog skills. *skill.Catalog
// satisfies it.
type SkillSource interface {
	Skill(id string) (combat.Skill, bool)
}

// Instance is a live NPC combatant.
type Instance struct {
	*combat.Unit
	// TemplateID is the source template's ID.
	TemplateID string
	// Description is copied from the template.
	Description string
	// ExpReward is granted to whoever lands the killing blow.
	ExpReward int
	// Loot is the loot table copied from the template; nil means no loot.
	Loot *LootTable
	// Taunts is the list of taunt strings copied from the template.
	Taunts []string
	// TauntChance is the probability (0–1) of taunting on each check.
	TauntChance float64

	roller  Roller
	drops   LootResult
	dropped bool
}

// NewInstance creates a live NPC from tmpl. Skills named by the template are
// resolved through skills; loot is rolled through roller when the unit dies.
//
// Precondition: tmpl must have passed Validate(); skills and roller must be non-nil.
// Postcondition: HP equals tmpl.MaxHP; returns an error if a skill ID is unknown.
func NewInstance(tmpl *Template, skills SkillSource, roller Roller) (*Instance, error) {
	inst := &Instance{
		Unit:        combat.NewUnit(tmpl.Name, tmpl.Stats()),
		TemplateID:  tmpl.ID,
		Description: tmpl.Description,
		ExpReward:   tmpl.ExpReward,
		Loot:        tmpl.Loot,
		Taunts:      tmpl.Taunts,
		TauntChance: tmpl.TauntChance,
		roller:      roller,
	}
	for _, id := range tmpl.Skills {
		s, ok := skills.Skill(id)
		if !ok {
			return nil, fmt.Errorf("npc template %q: unknown skill %q", tmpl.ID, id)
		}
		inst.LearnSkill(s)
	}
	inst.OnDeath = inst.dropLoot
	return inst, nil
}

func (i *Instance) dropLoot(*combat.Unit) {
	if i.Loot != nil {
		i.drops = GenerateLoot(*i.Loot, i.roller)
	}
	i.dropped = true
}

// Drops returns the loot rolled when the instance died.
//
// Postcondition: ok is false while the instance is alive.
func (i *Instance) Drops() (LootResult, bool) {
	return i.drops, i.dropped
}

// ChooseSkill picks uniformly among the skills the instance can currently
// afford.
//
// Postcondition: Returns nil if no known skill is affordable.
func (i *Instance) ChooseSkill() combat.Skill {
	affordable := combat.AffordableSkills(i.Unit)
	if len(affordable) == 0 {
		return nil
	}
	return affordable[i.roller.Between(i.Name+" skill", 0, len(affordable)-1)]
}

// TryTaunt attempts to produce a taunt string.
//
// Postcondition: Returns (taunt, true) if a taunt fires; ("", false) otherwise.
func (i *Instance) TryTaunt() (string, bool) {
	if len(i.Taunts) == 0 || i.TauntChance <= 0 || !i.IsAlive() {
		return "", false
	}
	if !i.roller.Chance(i.Name+" taunt", i.TauntChance) {
		return "", false
	}
	return i.Taunts[i.roller.Between(i.Name+" taunt line", 0, len(i.Taunts)-1)], true
}

// HealthDescription returns a visible health state string suitable for
// combat narration.
//
// Postcondition: Returns a non-empty string.
func (i *Instance) HealthDescription() string {
	if !i.IsAlive() {
		return "dead"
	}
	pct := float64(i.HP()) / float64(i.MaxHP())
	switch {
	case pct >= 1.0:
		return "unharmed"
	case pct >= 0.85:
		return "barely scratched"
	case pct >= 0.60:
		return "lightly wounded"
	case pct >= 0.40:
		return "moderately wounded"
	case pct >= 0.20:
		return "heavily wounded"
	default:
		return "critically wounded"
	}
}
