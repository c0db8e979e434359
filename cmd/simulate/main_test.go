package main

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/game/character"
)

// repoRoot is where the shipped content lives relative to this package.
const repoRoot = "../.."

func testConfig(archetype, opponent string, seed uint64) config.Config {
	return config.Config{
		Logging: config.LoggingConfig{Level: "info", Format: "console"},
		Content: config.ContentConfig{
			ItemsDir:      "content/items",
			SkillsDir:     "content/skills",
			ConditionsDir: "content/conditions",
			ArchetypesDir: "content/archetypes",
			NPCsDir:       "content/npcs",
			ScriptsDir:    "content/scripts",
		},
		Combat:   config.CombatConfig{Seed: seed, MaxTurns: 50},
		Simulate: config.SimulateConfig{PlayerName: "Hero", Archetype: archetype, Level: 1, Opponent: opponent},
	}
}

func TestRun_ShippedContentEveryMatchup(t *testing.T) {
	for _, a := range character.Archetypes() {
		for _, opponent := range []string{"goblin", "wolf", "skeleton"} {
			t.Run(string(a)+"_vs_"+opponent, func(t *testing.T) {
				r, err := run(context.Background(), testConfig(string(a), opponent, 7), repoRoot, zaptest.NewLogger(t))
				require.NoError(t, err)
				assert.Contains(t, []Outcome{Victory, Defeat, Draw}, r.Outcome)
				assert.GreaterOrEqual(t, r.Turns, 1)
			})
		}
	}
}

func TestRun_SeedIsReproducible(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64Min(1).Draw(rt, "seed")
		cfg := testConfig("archer", "goblin", seed)
		first, err := run(context.Background(), cfg, repoRoot, zap.NewNop())
		require.NoError(rt, err)
		second, err := run(context.Background(), cfg, repoRoot, zap.NewNop())
		require.NoError(rt, err)

		assert.Equal(rt, first.Outcome, second.Outcome)
		assert.Equal(rt, first.Turns, second.Turns)
		assert.Equal(rt, first.Loot.Gold, second.Loot.Gold)
	})
}

func TestRun_UnknownArchetype(t *testing.T) {
	_, err := run(context.Background(), testConfig("bard", "goblin", 1), repoRoot, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, character.ErrUnknownArchetype))
}

func TestRun_UnknownOpponent(t *testing.T) {
	_, err := run(context.Background(), testConfig("knight", "dragon", 1), repoRoot, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dragon")
}

func TestRun_MissingContent(t *testing.T) {
	_, err := run(context.Background(), testConfig("knight", "goblin", 1), t.TempDir(), zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestLoadContent_RejectsArchetypeWithoutStats(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"knight.yaml", "archer.yaml"} {
		data, err := os.ReadFile(filepath.Join(repoRoot, "content", "archetypes", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bard.yaml"),
		[]byte("id: bard\nname: Bard\nstarting_items:\n  - copper_ring\n"), 0644))

	dirs := testConfig("knight", "goblin", 1).Content.Resolve(repoRoot)
	dirs.ArchetypesDir = dir
	_, err := loadContent(dirs, 0, quietRoller(t), zaptest.NewLogger(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, character.ErrUnknownArchetype))
	assert.Contains(t, err.Error(), "bard")
}

func writePNG(t *testing.T, dir, key string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(key)+".png")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4))))
}

func TestRun_PreloadsEquipmentIcons(t *testing.T) {
	images := t.TempDir()
	for _, key := range []string{"weapon/sword", "armor/helmet", "armor/chest"} {
		writePNG(t, images, key)
	}
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := testConfig("knight", "goblin", 3)
	cfg.Content.ImagesDir = images

	_, err := run(context.Background(), cfg, repoRoot, zap.New(core))
	require.NoError(t, err)

	loaded := logs.FilterMessage("equipment icons loaded").All()
	require.Len(t, loaded, 1)
	assert.Equal(t, int64(3), loaded[0].ContextMap()["count"])
	assert.Equal(t, 1, logs.FilterMessage("image cache released").Len())
}

func TestRun_MissingIconsOnlyWarn(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := testConfig("axeman", "wolf", 5)
	cfg.Content.ImagesDir = t.TempDir()

	_, err := run(context.Background(), cfg, repoRoot, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("preloading equipment icons").Len())
}

func TestNewPlayer_StartingKit(t *testing.T) {
	logger := zaptest.NewLogger(t)
	cfg := testConfig("knight", "goblin", 1)
	c, err := loadContent(cfg.Content.Resolve(repoRoot), 0, quietRoller(t), logger)
	require.NoError(t, err)
	defer c.Close()

	player, k, err := c.newPlayer(cfg.Simulate, logger)
	require.NoError(t, err)
	assert.Len(t, player.Skills(), 2)
	assert.Len(t, k.equipment, 3)
	require.Len(t, k.potions, 1)

	shared, ok := c.items.Potion("healing_draught")
	require.True(t, ok)
	assert.NotSame(t, shared, k.potions[0], "the kit holds its own copy")
	k.potions[0].Quantity = 0
	assert.Equal(t, 2, shared.Quantity)
}
