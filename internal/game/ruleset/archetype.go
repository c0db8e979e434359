// Package ruleset loads the descriptive content that sits around the combat
// formulas: archetype display text and starting kits.
package ruleset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Archetype describes a playable archetype. Base stats are not content; they
// come from the character package's per-archetype formulas keyed by ID.
//
// Precondition: ID and Name must be non-empty after loading.
type Archetype struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Article        string   `yaml:"article"`
	Description    string   `yaml:"description"`
	StartingSkills []string `yaml:"starting_skills"`
	StartingItems  []string `yaml:"starting_items"`
}

// DisplayName returns the archetype name with its grammatical article.
// If Article is empty, returns Name alone.
//
// Precondition: Name must be non-empty.
// Postcondition: Returns a non-empty string.
func (a *Archetype) DisplayName() string {
	if a.Article == "" {
		return a.Name
	}
	return a.Article + " " + a.Name
}

// Validate checks that the Archetype satisfies its invariants.
func (a *Archetype) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if a.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	for i, s := range a.StartingSkills {
		if s == "" {
			errs = append(errs, fmt.Errorf("starting_skills[%d] must not be empty", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("archetype validation failed: %v", errs)
	}
	return nil
}

// LoadArchetypes reads all .yaml files in dir and parses each as an Archetype.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed archetypes (may be empty slice) or a non-nil error.
func LoadArchetypes(dir string) ([]*Archetype, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	archetypes := make([]*Archetype, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var a Archetype
		if err := yaml.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("parsing archetype file %s: %w", path, err)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("archetype file %s: %w", path, err)
		}
		archetypes = append(archetypes, &a)
	}
	return archetypes, nil
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
