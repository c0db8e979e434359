// Package main provides the simulate binary, which loads the game content
// and fights one duel between a player archetype and an NPC.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/game/character"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/observability"
	"github.com/cory-johannsen/dungeon/internal/render"
)

// duelEncounter is the encounter ID the opponent is spawned into.
const duelEncounter = "duel"

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/simulate.yaml", "path to configuration file")
	root := flag.String("root", ".", "base directory relative content paths are resolved against")
	archetype := flag.String("archetype", "", "player archetype; overrides simulate.archetype")
	opponent := flag.String("opponent", "", "NPC template ID; overrides simulate.opponent")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *archetype != "" {
		cfg.Simulate.Archetype = *archetype
	}
	if *opponent != "" {
		cfg.Simulate.Opponent = *opponent
	}

	logger, err := observability.NewLogger(cfg.Logging, "simulate")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting simulation",
		zap.String("config", *configPath),
		zap.Uint64("seed", cfg.Combat.Seed),
		zap.Duration("startup", time.Since(start)),
	)

	result, err := run(ctx, cfg, *root, logger)
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}
	logger.Info("simulation complete",
		zap.String("outcome", string(result.Outcome)),
		zap.Int("turns", result.Turns),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// run loads content from root, builds the configured player and opponent, and
// fights the duel.
//
// Precondition: cfg has passed Validate.
func run(ctx context.Context, cfg config.Config, root string, logger *zap.Logger) (Result, error) {
	src := dice.NewCryptoSource()
	if cfg.Combat.Seed != 0 {
		src = dice.NewSeededSource(cfg.Combat.Seed)
	}
	roller := dice.NewLoggedRoller(src, logger)

	dirs := cfg.Content.Resolve(root)
	c, err := loadContent(dirs, cfg.Combat.ScriptInstructionLimit, roller, logger)
	if err != nil {
		return Result{}, err
	}
	defer c.Close()

	player, kit, err := c.newPlayer(cfg.Simulate, logger)
	if err != nil {
		return Result{}, err
	}

	if dirs.ImagesDir != "" {
		cache := render.NewCache(render.FileLoader{Dir: dirs.ImagesDir}, logger)
		defer cache.ReleaseAll()
		keys := make([]string, 0, len(kit.equipment))
		for _, e := range kit.equipment {
			keys = append(keys, e.ImageKey())
		}
		if err := cache.Preload(ctx, keys); err != nil {
			logger.Warn("preloading equipment icons", zap.Error(err))
		} else {
			logger.Info("equipment icons loaded", zap.Int("count", cache.Len()))
		}
	}

	foe, err := c.npcs.Spawn(cfg.Simulate.Opponent, duelEncounter)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if err := c.npcs.Remove(foe.ID); err != nil {
			logger.Warn("removing opponent", zap.Error(err))
		}
	}()
	logger.Info("opponent spawned",
		zap.String("template", foe.TemplateID),
		zap.String("name", foe.Name),
		zap.String("description", foe.Description),
	)

	duel := NewDuel(player, kit.potions, foe, roller, logger, DuelConfig{
		MaxTurns:  cfg.Combat.MaxTurns,
		TurnDelay: cfg.Simulate.TurnDelay,
	})
	result, err := duel.Run(ctx)
	if err != nil {
		return result, fmt.Errorf("running duel: %w", err)
	}
	for _, item := range result.Loot.Items {
		logger.Info("loot dropped",
			zap.String("item", item.ItemDefID),
			zap.String("instance", item.InstanceID),
			zap.Int("quantity", item.Quantity),
		)
	}
	return result, nil
}

// kit is what a player carries into a duel. Potions are private copies so
// the registry's stacks are never drawn down.
type kit struct {
	equipment []inventory.Equipment
	potions   []*inventory.Potion
}

// newPlayer builds the configured player, teaches the archetype's starting
// skills and hands out its starting items.
func (c *content) newPlayer(s config.SimulateConfig, logger *zap.Logger) (*character.Player, kit, error) {
	archetype, ok := c.archetypes.Archetype(s.Archetype)
	if !ok {
		return nil, kit{}, fmt.Errorf("archetype %q: %w", s.Archetype, character.ErrUnknownArchetype)
	}
	player, err := character.NewPlayer(s.PlayerName, character.Archetype(archetype.ID), s.Level)
	if err != nil {
		return nil, kit{}, err
	}
	if err := player.LearnStartingSkills(c.skills, archetype.StartingSkills); err != nil {
		return nil, kit{}, err
	}

	var k kit
	for _, id := range archetype.StartingItems {
		if w, ok := c.items.Weapon(id); ok {
			k.equipment = append(k.equipment, w)
			continue
		}
		if a, ok := c.items.Armor(id); ok {
			k.equipment = append(k.equipment, a)
			continue
		}
		if p, ok := c.items.Potion(id); ok {
			cp := *p
			k.potions = append(k.potions, &cp)
		}
	}

	logger.Info("player created",
		zap.String("name", player.Name),
		zap.String("archetype", archetype.DisplayName()),
		zap.Int("level", player.Level),
		zap.Int("max_hp", player.MaxHP()),
		zap.Int("skills", len(player.Skills())),
	)
	for _, e := range k.equipment {
		logger.Info(e.Equipped(), zap.String("item", e.Base().Name))
	}
	return player, k, nil
}
