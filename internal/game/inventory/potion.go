package inventory

import "github.com/cory-johannsen/dungeon/internal/game/combat"

// PotionType selects a potion's effect.
type PotionType string

const (
	Healing        PotionType = "Healing"
	Mana           PotionType = "Mana"
	ExpBoost       PotionType = "ExpBoost"
	ReduceCooldown PotionType = "ReduceCooldown"
)

// Potion is a consumable stack.
type Potion struct {
	Item
	PotionType PotionType
	Magnitude  int
	Duration   int
}

// NewPotion generates a single potion of potionType at tier.
//
// Postcondition: Magnitude and Duration equal PotionStats(potionType, tier).
func NewPotion(id string, potionType PotionType, tier int, name, description string, price int) *Potion {
	effect := PotionStats(potionType, tier)
	return &Potion{
		Item: Item{
			ItemID:      id,
			Quantity:    1,
			Name:        LevelName(name, tier),
			Description: description,
			Tier:        tier,
			Price:       price,
		},
		PotionType: potionType,
		Magnitude:  effect.Magnitude,
		Duration:   effect.Duration,
	}
}

// Use drinks one potion on u and reports whether it was consumed.
// ReduceCooldown has no effect in combat and is never consumed here, since
// skill cooldowns are not tracked on a unit.
//
// Precondition: u must not be nil.
// Postcondition: on true, Quantity is one lower.
func (p *Potion) Use(u *combat.Unit) bool {
	if p.Quantity <= 0 || !u.IsAlive() {
		return false
	}
	switch p.PotionType {
	case Healing:
		u.Heal(p.Magnitude)
	case Mana:
		u.RestoreMana(p.Magnitude)
	case ExpBoost:
		u.GainExp(p.Magnitude)
	default:
		return false
	}
	p.Quantity--
	return true
}
