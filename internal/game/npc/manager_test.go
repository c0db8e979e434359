package npc_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/npc"
)

func newManager(t *testing.T) *npc.Manager {
	t.Helper()
	roller := dice.NewLoggedRoller(dice.NewSeededSource(7), zap.NewNop())
	rat := &npc.Template{ID: "rat", Name: "Rat", Level: 1, MaxHP: 8}
	m, err := npc.NewManager([]*npc.Template{goblin(), rat}, stabCatalog(roller), roller)
	require.NoError(t, err)
	return m
}

func TestManager_SpawnAndFind(t *testing.T) {
	m := newManager(t)
	assert.Equal(t, []string{"goblin", "rat"}, m.TemplateIDs())

	g, err := m.Spawn("goblin", "cellar")
	require.NoError(t, err)
	r, err := m.Spawn("rat", "cellar")
	require.NoError(t, err)

	got, ok := m.Get(g.ID)
	require.True(t, ok)
	assert.Same(t, g, got)

	assert.Equal(t, []*npc.Instance{g, r}, m.InEncounter("cellar"))
	assert.Empty(t, m.InEncounter("attic"))

	assert.Same(t, r, m.FindInEncounter("cellar", "RA"))
	r.Die()
	assert.Nil(t, m.FindInEncounter("cellar", "ra"), "corpses are not targetable")
}

func TestManager_SpawnErrors(t *testing.T) {
	m := newManager(t)
	_, err := m.Spawn("dragon", "cellar")
	assert.Error(t, err)
	_, err = m.Spawn("rat", "")
	assert.Error(t, err)
}

func TestManager_Remove(t *testing.T) {
	m := newManager(t)
	r, err := m.Spawn("rat", "cellar")
	require.NoError(t, err)
	require.NoError(t, m.Remove(r.ID))
	assert.Empty(t, m.InEncounter("cellar"))
	assert.Error(t, m.Remove(r.ID))
}

func TestNewManager_DuplicateTemplate(t *testing.T) {
	roller := dice.NewLoggedRoller(&dice.FixedSource{}, zap.NewNop())
	_, err := npc.NewManager([]*npc.Template{goblin(), goblin()}, stabCatalog(roller), roller)
	assert.Error(t, err)
}

func TestManager_ConcurrentSpawn(t *testing.T) {
	m := newManager(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Spawn("rat", "pit")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Len(t, m.InEncounter("pit"), 20)
}

func TestProperty_Manager_SpawnRemoveBalance(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		roller := dice.NewLoggedRoller(dice.NewSeededSource(1), zap.NewNop())
		m, err := npc.NewManager([]*npc.Template{{ID: "rat", Name: "Rat", Level: 1, MaxHP: 8}}, mapCatalog{}, roller)
		require.NoError(rt, err)
		n := rapid.IntRange(1, 10).Draw(rt, "n")
		k := rapid.IntRange(0, n).Draw(rt, "k")
		var ids []string
		for i := 0; i < n; i++ {
			inst, err := m.Spawn("rat", "den")
			require.NoError(rt, err)
			ids = append(ids, inst.ID)
		}
		for _, id := range ids[:k] {
			require.NoError(rt, m.Remove(id))
		}
		assert.Len(rt, m.InEncounter("den"), n-k)
	})
}
