package combat

// Buff is a timed status effect owned by one Unit.
//
// ApplyBuff runs when the buff is granted; RemoveBuff undoes it when it
// expires. UpdateAfterTurn advances the buff's timer by one turn and
// CheckExpired reports whether it should now be removed.
type Buff interface {
	ApplyBuff(u *Unit)
	RemoveBuff(u *Unit)
	UpdateAfterTurn()
	CheckExpired() bool
}

// BuffFactory mints a fresh Buff for each application. Skills are shared
// between units, so they carry a factory rather than a buff instance.
type BuffFactory func() Buff
