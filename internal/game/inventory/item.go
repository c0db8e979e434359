package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Item holds the fields shared by every carried object.
type Item struct {
	ItemID      string
	Quantity    int
	Name        string
	Description string
	Tier        int
	Price       int
}

// Kind constants for ItemDef.Kind.
const (
	KindWeapon = "weapon"
	KindArmor  = "armor"
	KindPotion = "potion"
)

var validKinds = map[string]bool{
	KindWeapon: true,
	KindArmor:  true,
	KindPotion: true,
}

// ItemDef is one catalog entry loaded from YAML. Stats are not stored; they
// are generated from Kind, Subtype and Tier when the Registry is built.
type ItemDef struct {
	ID          string `yaml:"id"`
	Kind        string `yaml:"kind"`
	Subtype     string `yaml:"subtype"`
	Tier        int    `yaml:"tier"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       int    `yaml:"price"`
	// Quantity is the stack size; nil means the key was omitted and the
	// stack holds one.
	Quantity *int `yaml:"quantity"`
}

// StackSize returns Quantity, or 1 when it was omitted.
func (d *ItemDef) StackSize() int {
	if d.Quantity == nil {
		return 1
	}
	return *d.Quantity
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !validKinds[d.Kind] {
		errs = append(errs, fmt.Errorf("kind must be one of weapon, armor, potion; got %q", d.Kind))
	}
	if d.Subtype == "" {
		errs = append(errs, errors.New("subtype must not be empty"))
	}
	if d.Tier < 0 {
		errs = append(errs, errors.New("tier must be >= 0"))
	}
	if d.Price < 0 {
		errs = append(errs, errors.New("price must be >= 0"))
	}
	if d.Quantity != nil && *d.Quantity < 1 {
		errs = append(errs, fmt.Errorf("quantity must be >= 1 when set, got %d", *d.Quantity))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// LoadItemDefs reads all *.yaml and *.yml files from dir. Each file holds a
// list of ItemDefs.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid ItemDefs in file-name order, or the first error.
func LoadItemDefs(dir string) ([]*ItemDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadItemDefs: cannot read directory %q: %w", dir, err)
	}

	var defs []*ItemDef
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadItemDefs: cannot read file %q: %w", path, err)
		}
		var batch []*ItemDef
		if err := yaml.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("LoadItemDefs: cannot parse file %q: %w", path, err)
		}
		for _, d := range batch {
			if err := d.Validate(); err != nil {
				return nil, fmt.Errorf("LoadItemDefs: invalid item %q in %q: %w", d.ID, path, err)
			}
		}
		defs = append(defs, batch...)
	}
	return defs, nil
}
