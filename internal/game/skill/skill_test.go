package skill_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/condition"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/skill"
)

const skillsYAML = `
id: cleave
name: Cleave
kind: attack
mana_cost: 10
damage: 4
attack_power: 12
critical_chance: 0.2
---
id: poison_arrow
name: Poison Arrow
kind: attack_status
mana_cost: 15
damage: 2
attack_power: 8
critical_chance: 0.1
condition: poisoned
level_required: 2
---
id: guard
name: Guard
kind: status
mana_cost: 5
condition: shielded
duration: 2
`

func writeSkills(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skills.yaml"), []byte(src), 0644))
	return dir
}

func conditions() *condition.Registry {
	reg := condition.NewRegistry()
	reg.Register(&condition.ConditionDef{ID: "poisoned", Name: "Poisoned", Duration: 3,
		Modifiers: condition.Modifiers{Damage: -2}})
	reg.Register(&condition.ConditionDef{ID: "shielded", Name: "Shielded", Duration: 2,
		Modifiers: condition.Modifiers{Defense: 5}})
	return reg
}

func TestLoadDefs_MultiDocument(t *testing.T) {
	defs, err := skill.LoadDefs(writeSkills(t, skillsYAML))
	require.NoError(t, err)
	require.Len(t, defs, 3)
	assert.Equal(t, "cleave", defs[0].ID)
	assert.Equal(t, 12, defs[0].AttackPower)
	assert.InDelta(t, 0.2, defs[0].CriticalChance, 1e-9)
	assert.Equal(t, "poisoned", defs[1].Condition)
	assert.Equal(t, 2, defs[1].LevelRequired)
}

func TestLoadDefs_RejectsUnknownFields(t *testing.T) {
	_, err := skill.LoadDefs(writeSkills(t, "id: x\nname: X\nkind: attack\nrange: 3\n"))
	assert.Error(t, err)
}

func TestDef_Validate(t *testing.T) {
	err := (&skill.Def{Kind: "heal", ManaCost: -1, CriticalChance: 1.5}).Validate()
	require.Error(t, err)
	for _, want := range []string{"id must not be empty", "kind must be one of", "mana_cost", "critical_chance"} {
		assert.Contains(t, err.Error(), want)
	}
	err = (&skill.Def{ID: "g", Name: "G", Kind: skill.KindStatus}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must name a condition")
}

func TestNewCatalog_BuildsVariants(t *testing.T) {
	defs, err := skill.LoadDefs(writeSkills(t, skillsYAML))
	require.NoError(t, err)
	roller := dice.NewLoggedRoller(&dice.FixedSource{Floats: []float64{0.99}}, zaptest.NewLogger(t))

	cat, err := skill.NewCatalog(defs, conditions(), nil, roller)
	require.NoError(t, err)

	cleave, ok := cat.Skill("cleave")
	require.True(t, ok)
	require.IsType(t, &combat.AttackSkill{}, cleave)
	assert.Equal(t, 10, cleave.Info().ManaCost)

	arrow, _ := cat.Skill("poison_arrow")
	require.IsType(t, &combat.AttackStatusSkill{}, arrow)
	guard, _ := cat.Skill("guard")
	require.IsType(t, &combat.StatusSkill{}, guard)

	assert.Len(t, cat.All(), 3)
	assert.Len(t, cat.Learnable(1), 2)
	assert.Len(t, cat.Learnable(2), 3)
}

func TestCatalog_SharedSkillMintsFreshBuffs(t *testing.T) {
	defs, err := skill.LoadDefs(writeSkills(t, skillsYAML))
	require.NoError(t, err)
	roller := dice.NewLoggedRoller(&dice.FixedSource{Floats: []float64{0.99}}, zaptest.NewLogger(t))
	cat, err := skill.NewCatalog(defs, conditions(), nil, roller)
	require.NoError(t, err)
	arrow, _ := cat.Skill("poison_arrow")

	archer := combat.NewUnit("Archer", combat.Stats{MaxHP: 90})
	a := combat.NewUnit("Goblin A", combat.Stats{MaxHP: 40, Damage: 6, Defense: 0})
	b := combat.NewUnit("Goblin B", combat.Stats{MaxHP: 40, Damage: 6, Defense: 0})

	assert.Equal(t, 10, archer.UseSkill(arrow, a))
	assert.Equal(t, 10, archer.UseSkill(arrow, b))
	assert.Equal(t, 70, archer.Mana())
	require.Len(t, a.Buffs(), 1)
	require.Len(t, b.Buffs(), 1)
	assert.NotSame(t, a.Buffs()[0], b.Buffs()[0])
	assert.Equal(t, 4, a.Damage)

	for i := 0; i < 3; i++ {
		a.UpdateBuffs()
	}
	assert.Empty(t, a.Buffs())
	assert.Equal(t, 6, a.Damage)
	assert.Len(t, b.Buffs(), 1, "expiry on one target must not touch another")
}

func TestNewCatalog_UnknownCondition(t *testing.T) {
	defs := []*skill.Def{{ID: "hex", Name: "Hex", Kind: skill.KindStatus, Condition: "cursed"}}
	roller := dice.NewLoggedRoller(&dice.FixedSource{}, zaptest.NewLogger(t))
	_, err := skill.NewCatalog(defs, conditions(), nil, roller)
	assert.True(t, errors.Is(err, condition.ErrUnknownCondition))
}

func TestNewCatalog_DuplicateID(t *testing.T) {
	defs := []*skill.Def{
		{ID: "jab", Name: "Jab", Kind: skill.KindAttack},
		{ID: "jab", Name: "Jab", Kind: skill.KindAttack},
	}
	roller := dice.NewLoggedRoller(&dice.FixedSource{}, zaptest.NewLogger(t))
	_, err := skill.NewCatalog(defs, conditions(), nil, roller)
	assert.Error(t, err)
}

func TestLoadDefs_ShippedContent(t *testing.T) {
	defs, err := skill.LoadDefs("../../../content/skills")
	require.NoError(t, err)
	conds, err := condition.LoadDirectory("../../../content/conditions")
	require.NoError(t, err)
	roller := dice.NewLoggedRoller(&dice.FixedSource{}, zaptest.NewLogger(t))
	_, err = skill.NewCatalog(defs, conds, nil, roller)
	require.NoError(t, err)
}
