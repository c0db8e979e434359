package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/dungeon/internal/game/character"
	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/npc"
)

type noSkills struct{}

func (noSkills) Skill(string) (combat.Skill, bool) { return nil, false }

// quietRoller never crits and always rolls the low end of a range.
func quietRoller(t *testing.T) *dice.Roller {
	return dice.NewLoggedRoller(&dice.FixedSource{}, zaptest.NewLogger(t))
}

func spawn(t *testing.T, tmpl *npc.Template) *npc.Instance {
	t.Helper()
	require.NoError(t, tmpl.Validate())
	inst, err := npc.NewInstance(tmpl, noSkills{}, quietRoller(t))
	require.NoError(t, err)
	return inst
}

func newPlayer(t *testing.T, a character.Archetype) *character.Player {
	t.Helper()
	p, err := character.NewPlayer("Hero", a, 1)
	require.NoError(t, err)
	return p
}

// punchingBag never dies inside a short duel and barely hurts.
func punchingBag() *npc.Template {
	return &npc.Template{ID: "bag", Name: "Straw Dummy", Level: 1, MaxHP: 1000, Damage: 1, Defense: 100, Speed: 1}
}

func TestDuel_VictoryPaysExpAndLoot(t *testing.T) {
	player := newPlayer(t, character.Knight)
	foe := spawn(t, &npc.Template{
		ID: "rat", Name: "Rat", Level: 1, MaxHP: 5, Damage: 1, Speed: 1, ExpReward: 20,
		Loot: &npc.LootTable{Gold: &npc.GoldDrop{Min: 3, Max: 9}},
	})

	d := NewDuel(player, nil, foe, quietRoller(t), zaptest.NewLogger(t), DuelConfig{MaxTurns: 10})
	r, err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Victory, r.Outcome)
	assert.Equal(t, 1, r.Turns)
	assert.Equal(t, 20, r.Exp)
	assert.Equal(t, 3, r.Loot.Gold)
	assert.Equal(t, 20, player.Exp)
	assert.Equal(t, player.MaxHP(), player.HP(), "the rat died before it could act")
}

func TestDuel_Defeat(t *testing.T) {
	player := newPlayer(t, character.Archer)
	player.TakeDamage(84)
	require.Equal(t, 11, player.HP())
	foe := spawn(t, &npc.Template{ID: "ogre", Name: "Ogre", Level: 5, MaxHP: 500, Damage: 50, Speed: 20, ExpReward: 100})

	d := NewDuel(player, nil, foe, quietRoller(t), zaptest.NewLogger(t), DuelConfig{MaxTurns: 10})
	r, err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Defeat, r.Outcome)
	assert.Equal(t, 1, r.Turns)
	assert.Zero(t, player.Exp)
	assert.Equal(t, foe.MaxHP(), foe.HP(), "the faster ogre struck first")
}

func TestDuel_DrawAtMaxTurns(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	player := newPlayer(t, character.Knight)
	foe := spawn(t, punchingBag())

	d := NewDuel(player, nil, foe, quietRoller(t), zap.New(core), DuelConfig{MaxTurns: 3})
	r, err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Draw, r.Outcome)
	assert.Equal(t, 3, r.Turns)
	assert.True(t, player.IsAlive())
	assert.True(t, foe.IsAlive())
	assert.Equal(t, 3, logs.FilterMessage("turn ended").Len())
	assert.Equal(t, 6, logs.FilterMessage("skill used").Len())
}

func TestDuel_FasterUnitActsFirst(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	player := newPlayer(t, character.Knight)
	tmpl := punchingBag()
	tmpl.Speed = 50
	foe := spawn(t, tmpl)

	d := NewDuel(player, nil, foe, quietRoller(t), zap.New(core), DuelConfig{MaxTurns: 1})
	_, err := d.Run(context.Background())
	require.NoError(t, err)

	used := logs.FilterMessage("skill used").All()
	require.Len(t, used, 2)
	assert.Equal(t, "Straw Dummy", used[0].ContextMap()["actor"])
	assert.Equal(t, "Hero", used[1].ContextMap()["actor"])
}

func TestDuel_DrinksHealingPotionWhenLow(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	player := newPlayer(t, character.Knight)
	player.TakeDamage(100)
	require.Equal(t, 30, player.HP())
	potion := inventory.NewPotion("heal", inventory.Healing, 3, "Healing Draught", "", 20)
	foe := spawn(t, punchingBag())

	d := NewDuel(player, []*inventory.Potion{potion}, foe, quietRoller(t), zap.New(core), DuelConfig{MaxTurns: 2})
	_, err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, potion.Quantity)
	require.Equal(t, 1, logs.FilterMessage("potion used").Len())
	// 30 + 30 healed, then two dummy hits of 1 each.
	assert.Equal(t, 58, player.HP())
	assert.Equal(t, 3, logs.FilterMessage("skill used").Len(), "drinking replaces the player's first action")
}

func TestDuel_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := NewDuel(newPlayer(t, character.Axeman), nil, spawn(t, punchingBag()), quietRoller(t), zaptest.NewLogger(t), DuelConfig{MaxTurns: 5})

	r, err := d.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, r.Turns)
}

func TestDuel_TurnDelayHonoursDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	d := NewDuel(newPlayer(t, character.Knight), nil, spawn(t, punchingBag()), quietRoller(t), zaptest.NewLogger(t),
		DuelConfig{MaxTurns: 5, TurnDelay: time.Hour})

	r, err := d.Run(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, 1, r.Turns, "the first turn never waits")
}

type markBuff struct{ left int }

func (b *markBuff) ApplyBuff(*combat.Unit)  {}
func (b *markBuff) RemoveBuff(*combat.Unit) {}
func (b *markBuff) UpdateAfterTurn()        { b.left-- }
func (b *markBuff) CheckExpired() bool      { return b.left <= 0 }

func TestPickPlayerSkill_Priorities(t *testing.T) {
	roller := quietRoller(t)
	mark := func() combat.Buff { return &markBuff{left: 2} }
	guard := combat.NewStatusSkill(combat.SkillInfo{ID: "guard", ManaCost: 10}, mark)
	venom := combat.NewAttackStatusSkill(combat.SkillInfo{ID: "venom", ManaCost: 10, Damage: 2}, 2, 0, mark, roller)
	jab := combat.NewAttackSkill(combat.SkillInfo{ID: "jab", ManaCost: 5, Damage: 3}, 3, 0, roller)
	smash := combat.NewAttackSkill(combat.SkillInfo{ID: "smash", ManaCost: 20, Damage: 9}, 9, 0, roller)

	self := combat.NewUnit("Hero", combat.Stats{MaxHP: 50})
	foe := combat.NewUnit("Foe", combat.Stats{MaxHP: 50})
	for _, s := range []combat.Skill{jab, venom, smash, guard} {
		self.LearnSkill(s)
	}

	s, target := pickPlayerSkill(self, foe)
	assert.Same(t, guard, s)
	assert.Same(t, self, target)

	self.AddBuff(mark())
	s, target = pickPlayerSkill(self, foe)
	assert.Same(t, venom, s)
	assert.Same(t, foe, target)

	foe.AddBuff(mark())
	s, target = pickPlayerSkill(self, foe)
	assert.Same(t, smash, s)
	assert.Same(t, foe, target)
}

func TestPickPlayerSkill_NothingAffordable(t *testing.T) {
	self := combat.NewUnit("Hero", combat.Stats{MaxHP: 50})
	self.LearnSkill(combat.NewAttackSkill(combat.SkillInfo{ID: "nova", ManaCost: combat.MaxMana + 1}, 50, 0, quietRoller(t)))
	s, target := pickPlayerSkill(self, combat.NewUnit("Foe", combat.Stats{MaxHP: 50}))
	assert.Nil(t, s)
	assert.Nil(t, target)
}

func TestDuel_FallsBackToManaPotion(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	player := newPlayer(t, character.Archer)
	player.LearnSkill(combat.NewAttackSkill(combat.SkillInfo{ID: "nova", Name: "Nova", ManaCost: combat.MaxMana + 1}, 50, 0, quietRoller(t)))
	tonic := inventory.NewPotion("tonic", inventory.Mana, 4, "Mana Tonic", "", 25)
	foe := spawn(t, punchingBag())

	d := NewDuel(player, []*inventory.Potion{tonic}, foe, quietRoller(t), zap.New(core), DuelConfig{MaxTurns: 2})
	_, err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, tonic.Quantity)
	assert.Equal(t, 1, logs.FilterMessage("potion used").Len())
	attacks := logs.FilterMessage("skill used").FilterField(zap.String("actor", "Hero")).All()
	require.Len(t, attacks, 1)
	assert.Equal(t, "Attack", attacks[0].ContextMap()["skill"])
}
