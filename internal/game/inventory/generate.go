package inventory

// The formulas below are balance constants. Every subtype's stats are linear
// in tier and must stay bit-identical across releases.

// WeaponBonus is the generated stat tuple for a weapon.
type WeaponBonus struct {
	Attack       float64
	CriticalRate float64
}

// ArmorBonus is the generated stat tuple for an armor piece.
type ArmorBonus struct {
	Defense float64
	HP      float64
	Speed   float64
	Mana    float64
}

// PotionEffect is the generated stat tuple for a potion.
type PotionEffect struct {
	Magnitude int
	Duration  int
}

// WeaponStats returns the bonuses for a weapon of the given type and tier.
// Unknown types use the default row.
func WeaponStats(weaponType WeaponType, tier int) WeaponBonus {
	t := float64(tier)
	switch weaponType {
	case Sword:
		return WeaponBonus{Attack: 8 + 1*t, CriticalRate: 0.08 + 0.01*t}
	case Bow:
		return WeaponBonus{Attack: 6 + 0.5*t, CriticalRate: 0.12 + 0.02*t}
	case Axe:
		return WeaponBonus{Attack: 10 + 2*t, CriticalRate: 0.06 + 0.005*t}
	default:
		return WeaponBonus{Attack: 5 + 0.5*t, CriticalRate: 0.05 + 0.5*t}
	}
}

// ArmorStats returns the bonuses for an armor piece of the given type and
// tier. Unknown types use the default row.
func ArmorStats(armorType ArmorType, tier int) ArmorBonus {
	t := float64(tier)
	switch armorType {
	case Helmet:
		return ArmorBonus{Defense: 3 + 0.5*t, HP: 8 + 0.5*t, Speed: 0, Mana: 2 + 0.5*t}
	case Chest:
		return ArmorBonus{Defense: 5 + 0.5*t, HP: 15 + 0.5*t, Speed: 1 * t, Mana: 0}
	case Leg:
		return ArmorBonus{Defense: 2 + 0.5*t, HP: 6 + 0.5*t, Speed: 1 * t, Mana: 1 * t}
	case Glove:
		return ArmorBonus{Defense: 1.5 + 0.5*t, HP: 4 + 0.5*t, Speed: 1 * t, Mana: 1.5 + 0.5*t}
	case Bracelet:
		return ArmorBonus{Defense: 1 + 0.5*t, HP: 3 + 0.5*t, Speed: 3 + 0.5*t, Mana: 0}
	case Ring:
		return ArmorBonus{Defense: 0.5 + 0.5*t, HP: 2 + 0.5*t, Speed: 0, Mana: 3 + 0.5*t}
	default:
		return ArmorBonus{Defense: 2 + 0.5*t, HP: 5 + 0.5*t, Speed: 0, Mana: 0}
	}
}

// PotionStats returns the effect of a potion of the given type and tier.
// Every type except ReduceCooldown shares the 10-per-tier magnitude; no
// potion has a duration.
func PotionStats(potionType PotionType, tier int) PotionEffect {
	switch potionType {
	case ReduceCooldown:
		return PotionEffect{Magnitude: 1 * tier, Duration: 0}
	default:
		return PotionEffect{Magnitude: 10 * tier, Duration: 0}
	}
}
