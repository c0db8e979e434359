package main

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/game/character"
	"github.com/cory-johannsen/dungeon/internal/game/condition"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/npc"
	"github.com/cory-johannsen/dungeon/internal/game/ruleset"
	"github.com/cory-johannsen/dungeon/internal/game/skill"
	"github.com/cory-johannsen/dungeon/internal/scripting"
)

// content is every registry the duel draws on, loaded once at startup.
type content struct {
	scripts    *scripting.Manager
	conditions *condition.Registry
	skills     *skill.Catalog
	items      *inventory.Registry
	archetypes *ruleset.ArchetypeRegistry
	npcs       *npc.Manager
}

// loadContent loads scripts, conditions, skills, items, archetypes and NPC
// templates from dirs in dependency order and checks the references between
// them.
//
// Precondition: dirs has been resolved; roller and logger are non-nil.
// Postcondition: on success the caller owns c.scripts and must Close it.
func loadContent(dirs config.ContentConfig, instLimit int, roller *dice.Roller, logger *zap.Logger) (*content, error) {
	c := &content{}

	start := time.Now()
	c.scripts = scripting.NewManager(logger, instLimit)
	if dirs.ScriptsDir != "" {
		if err := c.scripts.LoadDir(dirs.ScriptsDir); err != nil {
			c.scripts.Close()
			return nil, err
		}
	}
	logger.Info("loaded scripts", zap.String("dir", dirs.ScriptsDir), zap.Duration("elapsed", time.Since(start)))

	ok := false
	defer func() {
		if !ok {
			c.scripts.Close()
		}
	}()

	start = time.Now()
	conds, err := condition.LoadDirectory(dirs.ConditionsDir)
	if err != nil {
		return nil, fmt.Errorf("loading conditions: %w", err)
	}
	c.conditions = conds
	logger.Info("loaded conditions", zap.Int("count", len(conds.All())), zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	defs, err := skill.LoadDefs(dirs.SkillsDir)
	if err != nil {
		return nil, fmt.Errorf("loading skills: %w", err)
	}
	c.skills, err = skill.NewCatalog(defs, conds, c.scripts, roller)
	if err != nil {
		return nil, fmt.Errorf("building skill catalog: %w", err)
	}
	logger.Info("loaded skills", zap.Int("count", len(defs)), zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	itemDefs, err := inventory.LoadItemDefs(dirs.ItemsDir)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	c.items = inventory.NewRegistry()
	if err := c.items.Build(itemDefs); err != nil {
		return nil, fmt.Errorf("building item registry: %w", err)
	}
	logger.Info("loaded items", zap.Int("count", len(itemDefs)), zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	archetypes, err := ruleset.LoadArchetypes(dirs.ArchetypesDir)
	if err != nil {
		return nil, fmt.Errorf("loading archetypes: %w", err)
	}
	c.archetypes = ruleset.NewArchetypeRegistry()
	for _, a := range archetypes {
		c.archetypes.Register(a)
	}
	logger.Info("loaded archetypes", zap.Int("count", len(archetypes)), zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	templates, err := npc.LoadTemplates(dirs.NPCsDir)
	if err != nil {
		return nil, fmt.Errorf("loading npc templates: %w", err)
	}
	c.npcs, err = npc.NewManager(templates, c.skills, roller)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded npc templates", zap.Int("count", len(templates)), zap.Duration("elapsed", time.Since(start)))

	if err := c.checkReferences(); err != nil {
		return nil, err
	}
	ok = true
	return c, nil
}

// checkReferences reports the first archetype without a stat formula, or the
// first archetype or template that names a skill or item the catalogs do not
// hold.
func (c *content) checkReferences() error {
	known := character.Archetypes()
	for _, id := range c.archetypes.IDs() {
		if !slices.Contains(known, character.Archetype(id)) {
			return fmt.Errorf("archetype %q: %w", id, character.ErrUnknownArchetype)
		}
		a, _ := c.archetypes.Archetype(id)
		for _, s := range a.StartingSkills {
			if _, found := c.skills.Skill(s); !found {
				return fmt.Errorf("archetype %q: unknown starting skill %q", id, s)
			}
		}
		for _, item := range a.StartingItems {
			if !c.hasItem(item) {
				return fmt.Errorf("archetype %q: unknown starting item %q", id, item)
			}
		}
	}
	for _, id := range c.npcs.TemplateIDs() {
		t, _ := c.npcs.Template(id)
		for _, s := range t.Skills {
			if _, found := c.skills.Skill(s); !found {
				return fmt.Errorf("npc template %q: unknown skill %q", id, s)
			}
		}
		if t.Loot == nil {
			continue
		}
		for _, drop := range t.Loot.Items {
			if !c.hasItem(drop.ItemID) {
				return fmt.Errorf("npc template %q: unknown loot item %q", id, drop.ItemID)
			}
		}
	}
	return nil
}

func (c *content) hasItem(id string) bool {
	if _, ok := c.items.Weapon(id); ok {
		return true
	}
	if _, ok := c.items.Armor(id); ok {
		return true
	}
	_, ok := c.items.Potion(id)
	return ok
}

// Close releases the scripting VM.
func (c *content) Close() {
	c.scripts.Close()
}
