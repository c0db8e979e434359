package npc

import (
	"fmt"

	"github.com/google/uuid"
)

// Roller is the random source for loot and taunts. *dice.Roller satisfies it.
type Roller interface {
	Chance(label string, p float64) bool
	Between(label string, lo, hi int) int
}

// GoldDrop defines the range of gold an NPC can drop on death.
type GoldDrop struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// ItemDrop defines a single item entry in a loot table with a drop chance.
type ItemDrop struct {
	ItemID string  `yaml:"item"`
	Chance float64 `yaml:"chance"`
	MinQty int     `yaml:"min_qty"`
	MaxQty int     `yaml:"max_qty"`
}

// LootTable defines the possible loot drops for an NPC template.
type LootTable struct {
	Gold  *GoldDrop  `yaml:"gold"`
	Items []ItemDrop `yaml:"items"`
}

// Validate checks gold bounds and every item drop. An empty table is valid.
//
// Postcondition: returns nil iff every drop is well formed; otherwise one
// error naming every violation.
func (lt *LootTable) Validate() error {
	var errs []error
	if g := lt.Gold; g != nil && (g.Min < 0 || g.Min > g.Max) {
		errs = append(errs, fmt.Errorf("gold range [%d, %d] must satisfy 0 <= min <= max", g.Min, g.Max))
	}
	for i, d := range lt.Items {
		if d.ItemID == "" {
			errs = append(errs, fmt.Errorf("items[%d]: item must not be empty", i))
		}
		if d.Chance <= 0 || d.Chance > 1 {
			errs = append(errs, fmt.Errorf("items[%d]: chance must be in (0, 1], got %v", i, d.Chance))
		}
		if d.MinQty < 1 || d.MinQty > d.MaxQty {
			errs = append(errs, fmt.Errorf("items[%d]: quantity range [%d, %d] must satisfy 1 <= min_qty <= max_qty", i, d.MinQty, d.MaxQty))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("loot table validation failed: %v", errs)
	}
	return nil
}

// LootItem represents a single item instance in a loot result.
type LootItem struct {
	ItemDefID  string
	InstanceID string
	Quantity   int
}

// LootResult holds the generated loot from a single NPC kill.
type LootResult struct {
	Gold  int
	Items []LootItem
}

// GenerateLoot rolls loot from lt.
//
// Precondition: lt must have passed Validate(); roller must be non-nil.
// Postcondition: Gold is in [Gold.Min, Gold.Max] if gold is set;
// each item's Quantity is in [MinQty, MaxQty] for items that pass the chance roll.
func GenerateLoot(lt LootTable, roller Roller) LootResult {
	var result LootResult

	if lt.Gold != nil && lt.Gold.Max > 0 {
		result.Gold = roller.Between("loot gold", lt.Gold.Min, lt.Gold.Max)
	}

	for _, item := range lt.Items {
		if !roller.Chance("loot "+item.ItemID, item.Chance) {
			continue
		}
		result.Items = append(result.Items, LootItem{
			ItemDefID:  item.ItemID,
			InstanceID: uuid.New().String(),
			Quantity:   roller.Between("loot qty "+item.ItemID, item.MinQty, item.MaxQty),
		})
	}

	return result
}
