package character_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeon/internal/game/character"
	"github.com/cory-johannsen/dungeon/internal/game/combat"
)

type mapCatalog map[string]combat.Skill

func (m mapCatalog) Skill(id string) (combat.Skill, bool) {
	s, ok := m[id]
	return s, ok
}

func TestBaseStats_LevelOne(t *testing.T) {
	tests := []struct {
		archetype character.Archetype
		want      combat.Stats
	}{
		{character.Knight, combat.Stats{MaxHP: 120, Damage: 12, Defense: 10, Speed: 4, CriticalRate: 0.05, Level: 1}},
		{character.Archer, combat.Stats{MaxHP: 90, Damage: 14, Defense: 5, Speed: 8, CriticalRate: 0.15, Level: 1}},
		{character.Axeman, combat.Stats{MaxHP: 105, Damage: 16, Defense: 7, Speed: 5, CriticalRate: 0.08, Level: 1}},
	}
	for _, tt := range tests {
		t.Run(string(tt.archetype), func(t *testing.T) {
			got, err := character.BaseStats(tt.archetype, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBaseStats_Errors(t *testing.T) {
	_, err := character.BaseStats("bard", 1)
	assert.True(t, errors.Is(err, character.ErrUnknownArchetype))

	_, err = character.BaseStats(character.Knight, 0)
	assert.Error(t, err)
}

func TestNewPlayer_StartsFull(t *testing.T) {
	p, err := character.NewPlayer("Aldric", character.Knight, 3)
	require.NoError(t, err)
	assert.Equal(t, character.Knight, p.Archetype)
	assert.Equal(t, 160, p.MaxHP())
	assert.Equal(t, p.MaxHP(), p.HP())
	assert.Equal(t, combat.MaxMana, p.Mana())
	assert.Equal(t, 3, p.Level)
	assert.True(t, p.IsAlive())
	assert.NotEmpty(t, p.ID)
}

func TestNewPlayer_Rejects(t *testing.T) {
	_, err := character.NewPlayer("", character.Archer, 1)
	assert.Error(t, err)

	_, err = character.NewPlayer("Nobody", "bard", 1)
	assert.True(t, errors.Is(err, character.ErrUnknownArchetype))
}

func TestLearnStartingSkills(t *testing.T) {
	slash := combat.NewStatusSkill(combat.SkillInfo{ID: "slash", Name: "Slash"}, nil)
	guard := combat.NewStatusSkill(combat.SkillInfo{ID: "guard", Name: "Guard"}, nil)
	catalog := mapCatalog{"slash": slash, "guard": guard}

	p, err := character.NewPlayer("Bryn", character.Axeman, 1)
	require.NoError(t, err)
	require.NoError(t, p.LearnStartingSkills(catalog, []string{"slash", "guard"}))
	assert.Equal(t, []combat.Skill{slash, guard}, p.Skills())

	q, err := character.NewPlayer("Cade", character.Axeman, 1)
	require.NoError(t, err)
	err = q.LearnStartingSkills(catalog, []string{"slash", "missing"})
	require.Error(t, err)
	assert.Empty(t, q.Skills(), "a failed call must learn nothing")
}

func TestPropertyBaseStats_MonotonicInLevel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.SampledFrom(character.Archetypes()).Draw(rt, "archetype")
		level := rapid.IntRange(1, 99).Draw(rt, "level")
		lo, err := character.BaseStats(a, level)
		require.NoError(rt, err)
		hi, err := character.BaseStats(a, level+1)
		require.NoError(rt, err)
		assert.Greater(rt, hi.MaxHP, lo.MaxHP)
		assert.Greater(rt, hi.Damage, lo.Damage)
		assert.GreaterOrEqual(rt, hi.Defense, lo.Defense)
		assert.GreaterOrEqual(rt, hi.Speed, lo.Speed)
		assert.Greater(rt, hi.CriticalRate, lo.CriticalRate)
		assert.Equal(rt, level, lo.Level)
	})
}
