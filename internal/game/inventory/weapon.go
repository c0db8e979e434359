package inventory

import "fmt"

// WeaponType selects a weapon's row of the stat table.
type WeaponType string

const (
	Sword WeaponType = "Sword"
	Bow   WeaponType = "Bow"
	Axe   WeaponType = "Axe"
)

// Weapon is equipment granting attack and critical-rate bonuses.
type Weapon struct {
	equipmentBase
	weaponType        WeaponType
	bonusAttack       float64
	bonusCriticalRate float64
}

// NewWeapon generates a weapon of weaponType at tier. The name is tagged with
// the tier, quantity starts at 1, and durability at DefaultDurability.
//
// Postcondition: BonusAttack and BonusCriticalRate equal WeaponStats(weaponType, tier).
func NewWeapon(id string, weaponType WeaponType, tier int, name, description string, price int) *Weapon {
	bonus := WeaponStats(weaponType, tier)
	return &Weapon{
		equipmentBase: equipmentBase{
			Item: Item{
				ItemID:      id,
				Quantity:    1,
				Name:        LevelName(name, tier),
				Description: description,
				Tier:        tier,
				Price:       price,
			},
			durability: DefaultDurability,
		},
		weaponType:        weaponType,
		bonusAttack:       bonus.Attack,
		bonusCriticalRate: bonus.CriticalRate,
	}
}

func (w *Weapon) WeaponType() WeaponType     { return w.weaponType }
func (w *Weapon) BonusAttack() float64       { return w.bonusAttack }
func (w *Weapon) BonusCriticalRate() float64 { return w.bonusCriticalRate }

// TypeTag implements Equipment.
func (w *Weapon) TypeTag() string { return string(w.weaponType) }

// ImageKey implements Equipment.
func (w *Weapon) ImageKey() string { return imageKey(KindWeapon, w.TypeTag()) }

// Equipped implements Equipment.
func (w *Weapon) Equipped() string {
	return fmt.Sprintf("%s equipped: %s attack, %s critical rate, durability %d",
		w.TypeTag(), signed(w.bonusAttack), signed(w.bonusCriticalRate), w.durability)
}
