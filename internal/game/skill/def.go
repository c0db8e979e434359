// Package skill loads skill definitions from YAML and builds the shared
// combat.Skill catalog.
package skill

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind constants for Def.Kind.
const (
	KindAttack       = "attack"
	KindStatus       = "status"
	KindAttackStatus = "attack_status"
)

// Def is the static definition of a skill, loaded from YAML.
type Def struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	Description    string  `yaml:"description"`
	Kind           string  `yaml:"kind"`
	ManaCost       int     `yaml:"mana_cost"`
	Damage         int     `yaml:"damage"`
	AttackPower    int     `yaml:"attack_power"`
	CriticalChance float64 `yaml:"critical_chance"`
	Cooldown       int     `yaml:"cooldown"`
	Duration       int     `yaml:"duration"`
	LevelRequired  int     `yaml:"level_required"`
	Condition      string  `yaml:"condition"` // condition ID applied by status kinds
}

// Validate checks that the Def satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	switch d.Kind {
	case KindAttack:
		if d.Condition != "" {
			errs = append(errs, errors.New("attack skills must not name a condition"))
		}
	case KindStatus, KindAttackStatus:
		if d.Condition == "" {
			errs = append(errs, fmt.Errorf("%s skills must name a condition", d.Kind))
		}
	default:
		errs = append(errs, fmt.Errorf("kind must be one of attack, status, attack_status; got %q", d.Kind))
	}
	if d.ManaCost < 0 {
		errs = append(errs, errors.New("mana_cost must be >= 0"))
	}
	if d.CriticalChance < 0 || d.CriticalChance > 1 {
		errs = append(errs, fmt.Errorf("critical_chance must be in [0, 1], got %v", d.CriticalChance))
	}
	if d.Cooldown < 0 || d.Duration < 0 || d.LevelRequired < 0 {
		errs = append(errs, errors.New("cooldown, duration and level_required must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("skill validation failed: %v", errs)
	}
	return nil
}

// LoadDefs reads every *.yaml file in dir. A file may hold several
// documents separated by "---". Unknown YAML keys are errors.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns every valid Def in file-name order, or the first error.
func LoadDefs(dir string) ([]*Def, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading skill dir %q: %w", dir, err)
	}
	var defs []*Def
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		for {
			var d Def
			err := dec.Decode(&d)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("parsing %q: %w", path, err)
			}
			if err := d.Validate(); err != nil {
				return nil, fmt.Errorf("invalid skill in %q: %w", path, err)
			}
			defs = append(defs, &d)
		}
	}
	return defs, nil
}
