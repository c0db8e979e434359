package character

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
)

// SkillSource resolves skill IDs to shared catalog skills. *skill.Catalog
// satisfies it.
type SkillSource interface {
	Skill(id string) (combat.Skill, bool)
}

// Player is a combat unit built from an archetype.
type Player struct {
	*combat.Unit
	Archetype Archetype
}

// NewPlayer constructs a player of archetype at level from the archetype's
// base-stat formula. Mana starts full at combat.MaxMana.
//
// Precondition: name must be non-empty; level >= 1.
// Postcondition: Returns a live Player, or a non-nil error.
func NewPlayer(name string, archetype Archetype, level int) (*Player, error) {
	if name == "" {
		return nil, errors.New("player name must not be empty")
	}
	stats, err := BaseStats(archetype, level)
	if err != nil {
		return nil, fmt.Errorf("NewPlayer %q: %w", name, err)
	}
	return &Player{Unit: combat.NewUnit(name, stats), Archetype: archetype}, nil
}

// LearnStartingSkills teaches the player each skill in ids, in order.
//
// Postcondition: on error, no skill has been learned.
func (p *Player) LearnStartingSkills(catalog SkillSource, ids []string) error {
	skills := make([]combat.Skill, 0, len(ids))
	for _, id := range ids {
		s, ok := catalog.Skill(id)
		if !ok {
			return fmt.Errorf("player %q: unknown starting skill %q", p.Name, id)
		}
		skills = append(skills, s)
	}
	for _, s := range skills {
		p.LearnSkill(s)
	}
	return nil
}
