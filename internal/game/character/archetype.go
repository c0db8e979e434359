// Package character builds player units from archetype base-stat formulas.
package character

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
)

// Archetype identifies a playable archetype. Values match the ruleset
// archetype content IDs.
type Archetype string

const (
	Knight Archetype = "knight"
	Archer Archetype = "archer"
	Axeman Archetype = "axeman"
)

// ErrUnknownArchetype is returned for an archetype with no stat formula.
var ErrUnknownArchetype = errors.New("unknown archetype")

// formulas maps each archetype to its base-stat formula.
var formulas = map[Archetype]func(level int) combat.Stats{
	Knight: knightStats,
	Archer: archerStats,
	Axeman: axemanStats,
}

// Archetypes returns every archetype with a stat formula.
func Archetypes() []Archetype {
	return []Archetype{Knight, Archer, Axeman}
}

// BaseStats returns the starting stats of archetype at level.
//
// Precondition: level >= 1.
// Postcondition: returns an error wrapping ErrUnknownArchetype if archetype has no formula.
func BaseStats(archetype Archetype, level int) (combat.Stats, error) {
	if level < 1 {
		return combat.Stats{}, fmt.Errorf("level must be >= 1, got %d", level)
	}
	f, ok := formulas[archetype]
	if !ok {
		return combat.Stats{}, fmt.Errorf("archetype %q: %w", archetype, ErrUnknownArchetype)
	}
	s := f(level)
	s.Level = level
	return s, nil
}

// knightStats: high HP and defense, slow.
func knightStats(level int) combat.Stats {
	l := level - 1
	return combat.Stats{
		MaxHP:        120 + 20*l,
		Damage:       12 + 3*l,
		Defense:      10 + 2*l,
		Speed:        4 + l/2,
		CriticalRate: 0.05 + 0.005*float64(l),
	}
}

// archerStats: fast with the best critical rate, fragile.
func archerStats(level int) combat.Stats {
	l := level - 1
	return combat.Stats{
		MaxHP:        90 + 14*l,
		Damage:       14 + 3*l,
		Defense:      5 + l,
		Speed:        8 + l,
		CriticalRate: 0.15 + 0.01*float64(l),
	}
}

// axemanStats: the heaviest hitter.
func axemanStats(level int) combat.Stats {
	l := level - 1
	return combat.Stats{
		MaxHP:        105 + 17*l,
		Damage:       16 + 4*l,
		Defense:      7 + l,
		Speed:        5 + l/2,
		CriticalRate: 0.08 + 0.008*float64(l),
	}
}
