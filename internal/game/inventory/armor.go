package inventory

import "fmt"

// ArmorType is the body slot an armor piece occupies.
type ArmorType string

const (
	Helmet   ArmorType = "Helmet"
	Chest    ArmorType = "Chest"
	Glove    ArmorType = "Glove"
	Leg      ArmorType = "Leg"
	Bracelet ArmorType = "Bracelet"
	Ring     ArmorType = "Ring"
)

// Armor is equipment granting defense, HP, speed and mana bonuses.
type Armor struct {
	equipmentBase
	armorType    ArmorType
	bonusDefense float64
	bonusHP      float64
	bonusSpeed   float64
	bonusMana    float64
}

// NewArmor generates an armor piece of armorType at tier.
//
// Postcondition: every bonus equals the matching ArmorStats(armorType, tier) field.
func NewArmor(id string, armorType ArmorType, tier int, name, description string, price int) *Armor {
	bonus := ArmorStats(armorType, tier)
	return &Armor{
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
		armorType:    armorType,
		bonusDefense: bonus.Defense,
		bonusHP:      bonus.HP,
		bonusSpeed:   bonus.Speed,
		bonusMana:    bonus.Mana,
	}
}

func (a *Armor) ArmorType() ArmorType  { return a.armorType }
func (a *Armor) BonusDefense() float64 { return a.bonusDefense }
func (a *Armor) BonusHP() float64      { return a.bonusHP }
func (a *Armor) BonusSpeed() float64   { return a.bonusSpeed }
func (a *Armor) BonusMana() float64    { return a.bonusMana }

// TypeTag implements Equipment.
func (a *Armor) TypeTag() string { return string(a.armorType) }

// ImageKey implements Equipment.
func (a *Armor) ImageKey() string { return imageKey(KindArmor, a.TypeTag()) }

// Equipped implements Equipment.
func (a *Armor) Equipped() string {
	return fmt.Sprintf("%s equipped: %s defense, %s hp, %s speed, %s mana, durability %d",
		a.TypeTag(), signed(a.bonusDefense), signed(a.bonusHP), signed(a.bonusSpeed),
		signed(a.bonusMana), a.durability)
}
