package inventory

import (
	"fmt"
	"sort"
)

// Registry holds the generated catalog items indexed by ID.
type Registry struct {
	weapons map[string]*Weapon
	armor   map[string]*Armor
	potions map[string]*Potion
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{
		weapons: make(map[string]*Weapon),
		armor:   make(map[string]*Armor),
		potions: make(map[string]*Potion),
	}
}

// Build generates an item for every def through the stat formulas and
// registers it.
//
// Precondition: every def has passed Validate.
// Postcondition: returns an error if any ID appears twice across all kinds.
func (r *Registry) Build(defs []*ItemDef) error {
	for _, d := range defs {
		if r.has(d.ID) {
			return fmt.Errorf("inventory: Registry.Build: item ID %q already registered", d.ID)
		}
		switch d.Kind {
		case KindWeapon:
			w := NewWeapon(d.ID, WeaponType(d.Subtype), d.Tier, d.Name, d.Description, d.Price)
			w.Quantity = d.StackSize()
			r.weapons[d.ID] = w
		case KindArmor:
			a := NewArmor(d.ID, ArmorType(d.Subtype), d.Tier, d.Name, d.Description, d.Price)
			a.Quantity = d.StackSize()
			r.armor[d.ID] = a
		case KindPotion:
			p := NewPotion(d.ID, PotionType(d.Subtype), d.Tier, d.Name, d.Description, d.Price)
			p.Quantity = d.StackSize()
			r.potions[d.ID] = p
		default:
			return fmt.Errorf("inventory: Registry.Build: item %q has unknown kind %q", d.ID, d.Kind)
		}
	}
	return nil
}

func (r *Registry) has(id string) bool {
	_, w := r.weapons[id]
	_, a := r.armor[id]
	_, p := r.potions[id]
	return w || a || p
}

// Weapon returns the Weapon for id and whether it was found.
func (r *Registry) Weapon(id string) (*Weapon, bool) {
	w, ok := r.weapons[id]
	return w, ok
}

// Armor returns the Armor for id and whether it was found.
func (r *Registry) Armor(id string) (*Armor, bool) {
	a, ok := r.armor[id]
	return a, ok
}

// Potion returns the Potion for id and whether it was found.
func (r *Registry) Potion(id string) (*Potion, bool) {
	p, ok := r.potions[id]
	return p, ok
}

// All returns the shared Item fields of every registered entry, sorted by ID.
//
// Postcondition: len(result) equals the number of registered items.
func (r *Registry) All() []*Item {
	out := make([]*Item, 0, len(r.weapons)+len(r.armor)+len(r.potions))
	for _, w := range r.weapons {
		out = append(out, w.Base())
	}
	for _, a := range r.armor {
		out = append(out, a.Base())
	}
	for _, p := range r.potions {
		out = append(out, &p.Item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

// Equipment returns every registered weapon and armor piece sorted by ID.
func (r *Registry) Equipment() []Equipment {
	out := make([]Equipment, 0, len(r.weapons)+len(r.armor))
	for _, w := range r.weapons {
		out = append(out, w)
	}
	for _, a := range r.armor {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Base().ItemID < out[j].Base().ItemID })
	return out
}
