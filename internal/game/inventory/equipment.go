package inventory

import (
	"fmt"
	"strings"
)

// DefaultDurability is the durability every newly generated equipment piece
// starts with.
const DefaultDurability = 100

// Equipment is a wearable bonus bundle. The variant set is closed:
// *Weapon and *Armor.
//
// Equipping is representational only. Nothing in this package adds the
// bonuses onto a combat unit's live stats.
type Equipment interface {
	// Base returns the shared item fields.
	Base() *Item
	// TypeTag returns the weapon type or armor slot, e.g. "Sword" or "Ring".
	TypeTag() string
	// ImageKey returns the render cache key for this piece's type tag,
	// e.g. "weapon/sword".
	ImageKey() string
	// Durability returns the remaining durability; it may be negative.
	Durability() int
	// Wear lowers durability by n with no floor.
	Wear(n int)
	// Equipped returns a one-line summary of the type tag, every bonus, and
	// the remaining durability.
	Equipped() string

	isEquipment()
}

// LevelName prefixes name with "Level {tier} " unless it already contains
// "Level {tier}". Applying it more than once yields the same string.
func LevelName(name string, tier int) string {
	tag := fmt.Sprintf("Level %d", tier)
	if strings.Contains(name, tag) {
		return name
	}
	return tag + " " + name
}

// equipmentBase carries the fields common to weapons and armor.
type equipmentBase struct {
	Item
	durability int
}

func (e *equipmentBase) Base() *Item { return &e.Item }

func (e *equipmentBase) Durability() int { return e.durability }

func (e *equipmentBase) Wear(n int) { e.durability -= n }

func (e *equipmentBase) isEquipment() {}

func imageKey(kind, tag string) string {
	return kind + "/" + strings.ToLower(tag)
}

func signed(v float64) string {
	return fmt.Sprintf("%+.2f", v)
}
