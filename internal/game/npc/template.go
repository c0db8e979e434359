// Package npc provides NPC template definitions and live combat instances.
package npc

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
)

// Template defines a reusable NPC archetype loaded from YAML.
type Template struct {
	ID           string     `yaml:"id"`
	Name         string     `yaml:"name"`
	Description  string     `yaml:"description"`
	Level        int        `yaml:"level"`
	MaxHP        int        `yaml:"max_hp"`
	Damage       int        `yaml:"damage"`
	Defense      int        `yaml:"defense"`
	Speed        int        `yaml:"speed"`
	CriticalRate float64    `yaml:"critical_rate"`
	ExpReward    int        `yaml:"exp_reward"`
	Skills       []string   `yaml:"skills"`
	Taunts       []string   `yaml:"taunts"`
	TauntChance  float64    `yaml:"taunt_chance"`
	Loot         *LootTable `yaml:"loot"`
}

// Stats returns the combat stats an instance of t starts with.
func (t *Template) Stats() combat.Stats {
	return combat.Stats{
		MaxHP:        t.MaxHP,
		Damage:       t.Damage,
		Defense:      t.Defense,
		Speed:        t.Speed,
		CriticalRate: t.CriticalRate,
		Level:        t.Level,
	}
}

// Validate checks that the template satisfies its invariants: non-empty ID
// and Name, Level and MaxHP of at least 1, non-negative Defense and
// ExpReward, probabilities in [0, 1], no empty skill or taunt entries, and a
// valid loot table.
//
// Postcondition: returns nil iff every invariant holds; otherwise one error
// naming every violation.
func (t *Template) Validate() error {
	var errs []error
	if t.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if t.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if t.Level < 1 {
		errs = append(errs, fmt.Errorf("level must be >= 1, got %d", t.Level))
	}
	if t.MaxHP < 1 {
		errs = append(errs, fmt.Errorf("max_hp must be >= 1, got %d", t.MaxHP))
	}
	if t.Defense < 0 || t.ExpReward < 0 {
		errs = append(errs, errors.New("defense and exp_reward must be >= 0"))
	}
	if !probability(t.CriticalRate) {
		errs = append(errs, fmt.Errorf("critical_rate must be in [0, 1], got %v", t.CriticalRate))
	}
	if !probability(t.TauntChance) {
		errs = append(errs, fmt.Errorf("taunt_chance must be in [0, 1], got %v", t.TauntChance))
	}
	for i, id := range t.Skills {
		if id == "" {
			errs = append(errs, fmt.Errorf("skills[%d] must not be empty", i))
		}
	}
	for i, line := range t.Taunts {
		if strings.TrimSpace(line) == "" {
			errs = append(errs, fmt.Errorf("taunts[%d] must not be blank", i))
		}
	}
	if t.Loot != nil {
		if err := t.Loot.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("npc template %q validation failed: %v", t.ID, errs)
	}
	return nil
}

func probability(p float64) bool { return p >= 0 && p <= 1 }

// LoadTemplateFromBytes parses one template. Unknown YAML keys are errors.
//
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads every *.yaml file in dir, one template per file, in
// file-name order.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns every template, or the first error with no partial result.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading npc dir %q: %w", dir, err)
	}
	var templates []*Template
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
