package condition

import (
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/scripting"
)

// ScriptRunner runs a named Lua hook against a unit snapshot and returns an
// HP delta. *scripting.Manager satisfies it.
type ScriptRunner interface {
	CallUnitHook(hook string, snap scripting.UnitSnapshot) (int, error)
}

// Buff is one applied instance of a ConditionDef. It implements combat.Buff.
// It is owned by a single unit and is not safe for concurrent use.
type Buff struct {
	def       *ConditionDef
	remaining int
	target    *combat.Unit
	scripts   ScriptRunner
}

// NewBuff creates an unapplied Buff for def. scripts may be nil, in which case
// Lua hooks are skipped.
//
// Precondition: def must not be nil.
// Postcondition: Remaining() == def.Duration.
func NewBuff(def *ConditionDef, scripts ScriptRunner) *Buff {
	return &Buff{def: def, remaining: def.Duration, scripts: scripts}
}

// Def returns the condition definition.
func (b *Buff) Def() *ConditionDef { return b.def }

// Remaining returns the turns left; -1 means permanent.
func (b *Buff) Remaining() int { return b.remaining }

// ApplyBuff adds the condition's modifiers to u and runs lua_on_apply.
func (b *Buff) ApplyBuff(u *combat.Unit) {
	b.target = u
	b.def.Modifiers.apply(u)
	b.runHook(b.def.LuaOnApply, u)
}

// RemoveBuff reverts the modifiers added by ApplyBuff and runs lua_on_remove.
func (b *Buff) RemoveBuff(u *combat.Unit) {
	b.def.Modifiers.revert(u)
	b.runHook(b.def.LuaOnRemove, u)
	b.target = nil
}

// UpdateAfterTurn counts down one turn and runs lua_on_tick against the unit
// the buff is applied to. Permanent buffs never count down.
func (b *Buff) UpdateAfterTurn() {
	if b.remaining > 0 {
		b.remaining--
	}
	if b.target != nil {
		b.runHook(b.def.LuaOnTick, b.target)
	}
}

// CheckExpired reports whether the countdown has reached zero.
func (b *Buff) CheckExpired() bool {
	return b.remaining == 0
}

// String returns a short label, e.g. "Poisoned (2 turns)".
func (b *Buff) String() string {
	if b.remaining == Permanent {
		return b.def.Name
	}
	return fmt.Sprintf("%s (%d turns)", b.def.Name, b.remaining)
}

func (b *Buff) runHook(hook string, u *combat.Unit) {
	if hook == "" || b.scripts == nil {
		return
	}
	delta, err := b.scripts.CallUnitHook(hook, scripting.UnitSnapshot{
		ID:           u.ID,
		Name:         u.Name,
		HP:           u.HP(),
		MaxHP:        u.MaxHP(),
		Mana:         u.Mana(),
		Damage:       u.Damage,
		Defense:      u.Defense,
		Speed:        u.Speed,
		CriticalRate: u.CriticalRate,
		Level:        u.Level,
		Condition:    b.def.ID,
		Remaining:    b.remaining,
	})
	if err != nil || delta == 0 {
		return
	}
	u.AdjustHP(delta)
}

// Factory returns a combat.BuffFactory that mints a fresh Buff for the
// condition id on every call.
//
// Postcondition: returns an error wrapping ErrUnknownCondition if id is not registered.
func (r *Registry) Factory(id string, scripts ScriptRunner) (combat.BuffFactory, error) {
	def, ok := r.Get(id)
	if !ok {
		return nil, fmt.Errorf("condition %q: %w", id, ErrUnknownCondition)
	}
	return func() combat.Buff { return NewBuff(def, scripts) }, nil
}
