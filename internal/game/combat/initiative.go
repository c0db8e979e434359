package combat

// TurnOrder returns the living members of units in acting order, fastest
// first. Speed is read at call time so buffs that move it take effect on the
// next turn.
//
// Postcondition: units with equal Speed keep their relative input order.
func TurnOrder(units []*Unit) []*Unit {
	order := AliveUnits(units)
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && order[j].Speed > order[j-1].Speed; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}
