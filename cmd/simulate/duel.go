package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/game/character"
	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/npc"
	"github.com/cory-johannsen/dungeon/internal/observability"
)

// lowHealthPercent is the HP share below which the player drinks a healing
// potion instead of acting.
const lowHealthPercent = 35

// Outcome is how a duel ended.
type Outcome string

const (
	Victory Outcome = "victory"
	Defeat  Outcome = "defeat"
	Draw    Outcome = "draw"
)

// Result summarises a finished duel.
type Result struct {
	Outcome Outcome
	// Turns is the number of turns started, each giving both sides one action.
	Turns int
	// Exp is the experience the player gained.
	Exp  int
	Loot npc.LootResult
}

// DuelConfig bounds a duel.
type DuelConfig struct {
	// MaxTurns ends the duel in a draw once exceeded.
	MaxTurns int
	// TurnDelay pauses before every turn after the first.
	TurnDelay time.Duration
}

// Duel is a one-on-one battle loop between a player and an NPC. It owns
// turn order, target selection and buff ticking; all rules resolution is
// delegated to the combat package.
//
// A Duel is not safe for concurrent use.
type Duel struct {
	player  *character.Player
	potions []*inventory.Potion
	foe     *npc.Instance
	cfg     DuelConfig
	roller  combat.CritRoller
	logger  *zap.Logger
}

// NewDuel prepares a duel. potions is the player's consumable kit and is
// drawn down as the duel runs.
//
// Precondition: player, foe, roller and logger must be non-nil; cfg.MaxTurns >= 1.
func NewDuel(player *character.Player, potions []*inventory.Potion, foe *npc.Instance, roller combat.CritRoller, logger *zap.Logger, cfg DuelConfig) *Duel {
	return &Duel{
		player:  player,
		potions: potions,
		foe:     foe,
		cfg:     cfg,
		roller:  roller,
		logger:  logger,
	}
}

// Run fights the duel to a finish. Each turn both living sides act once, the
// faster unit first, and each actor's buffs tick at the end of its action.
//
// Postcondition: on a nil error exactly one Outcome is reported; a cancelled
// ctx returns ctx.Err() with the turns completed so far.
func (d *Duel) Run(ctx context.Context) (Result, error) {
	d.logger.Info("duel started",
		zap.String("player", d.player.Name),
		zap.String("archetype", string(d.player.Archetype)),
		zap.String("foe", d.foe.Name),
		zap.Int("max_turns", d.cfg.MaxTurns),
	)

	for turn := 1; turn <= d.cfg.MaxTurns; turn++ {
		if err := d.wait(ctx, turn); err != nil {
			return Result{Turns: turn - 1}, err
		}
		for _, actor := range d.order() {
			if !actor.IsAlive() {
				continue
			}
			if actor == d.player.Unit {
				d.playerTurn(turn)
			} else {
				d.foeTurn(turn)
			}
			if r, over := d.settle(turn); over {
				return r, nil
			}
			actor.UpdateBuffs()
			if r, over := d.settle(turn); over {
				return r, nil
			}
		}

		fields := []zap.Field{zap.Int("turn", turn), zap.String("foe_health", d.foe.HealthDescription())}
		fields = append(fields, observability.UnitFields("player", d.player.Unit)...)
		fields = append(fields, observability.UnitFields("foe", d.foe.Unit)...)
		d.logger.Info("turn ended", fields...)
	}

	d.logger.Info("duel ended", zap.String("outcome", string(Draw)), zap.Int("turns", d.cfg.MaxTurns))
	return Result{Outcome: Draw, Turns: d.cfg.MaxTurns}, nil
}

func (d *Duel) wait(ctx context.Context, turn int) error {
	if turn == 1 || d.cfg.TurnDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d.cfg.TurnDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// order returns the units in acting order; the player wins speed ties.
func (d *Duel) order() []*combat.Unit {
	return combat.TurnOrder([]*combat.Unit{d.player.Unit, d.foe.Unit})
}

// settle reports whether either side has fallen and, if so, pays out the
// victory.
func (d *Duel) settle(turn int) (Result, bool) {
	switch {
	case !d.foe.IsAlive():
		loot, _ := d.foe.Drops()
		d.player.GainExp(d.foe.ExpReward)
		d.logger.Info("duel ended",
			zap.String("outcome", string(Victory)),
			zap.Int("turns", turn),
			zap.Int("exp", d.foe.ExpReward),
			zap.Int("gold", loot.Gold),
			zap.Int("items", len(loot.Items)),
		)
		return Result{Outcome: Victory, Turns: turn, Exp: d.foe.ExpReward, Loot: loot}, true
	case !d.player.IsAlive():
		d.logger.Info("duel ended", zap.String("outcome", string(Defeat)), zap.Int("turns", turn))
		return Result{Outcome: Defeat, Turns: turn}, true
	}
	return Result{}, false
}

func (d *Duel) playerTurn(turn int) {
	self := d.player.Unit
	if self.HP()*100 < self.MaxHP()*lowHealthPercent && d.drink(turn, inventory.Healing) {
		return
	}
	if s, target := pickPlayerSkill(self, d.foe.Unit); s != nil {
		d.use(turn, self, s, target)
		return
	}
	if len(self.Skills()) > 0 && d.drink(turn, inventory.Mana) {
		return
	}
	d.use(turn, self, basicAttack(self, d.roller), d.foe.Unit)
}

// pickPlayerSkill chooses among the affordable skills: a self buff when none
// is active, then a debuffing attack on an unaffected foe, then the hardest
// hitting attack. It returns nil when nothing useful is affordable.
func pickPlayerSkill(self, foe *combat.Unit) (combat.Skill, *combat.Unit) {
	affordable := combat.AffordableSkills(self)
	if len(self.Buffs()) == 0 {
		for _, s := range affordable {
			if _, ok := s.(*combat.StatusSkill); ok {
				return s, self
			}
		}
	}
	if len(foe.Buffs()) == 0 {
		for _, s := range affordable {
			if _, ok := s.(*combat.AttackStatusSkill); ok {
				return s, foe
			}
		}
	}

	var best combat.Skill
	bestPower := -1
	for _, s := range affordable {
		power := -1
		switch s := s.(type) {
		case *combat.AttackSkill:
			power = s.AttackPower + s.Damage
		case *combat.AttackStatusSkill:
			power = s.AttackPower + s.Damage
		}
		if power > bestPower {
			best, bestPower = s, power
		}
	}
	if best == nil {
		return nil, nil
	}
	return best, foe
}

func (d *Duel) foeTurn(turn int) {
	if line, ok := d.foe.TryTaunt(); ok {
		d.logger.Info("taunt", zap.String("npc", d.foe.Name), zap.String("line", line))
	}
	target := d.player.Unit
	s := d.foe.ChooseSkill()
	switch s.(type) {
	case nil:
		s = basicAttack(d.foe.Unit, d.roller)
	case *combat.StatusSkill:
		target = d.foe.Unit
	}
	d.use(turn, d.foe.Unit, s, target)
}

// basicAttack is the free fallback action, built from the actor's current
// stats so that active buffs count.
func basicAttack(u *combat.Unit, roller combat.CritRoller) combat.Skill {
	return combat.NewAttackSkill(combat.SkillInfo{ID: "attack", Name: "Attack"}, u.Damage, u.CriticalRate, roller)
}

func (d *Duel) use(turn int, actor *combat.Unit, s combat.Skill, target *combat.Unit) {
	dealt, ok := actor.TryUseSkill(s, target)
	if !ok {
		s = basicAttack(actor, d.roller)
		dealt, _ = actor.TryUseSkill(s, target)
	}
	fields := []zap.Field{
		zap.Int("turn", turn),
		zap.String("actor", actor.Name),
		zap.String("skill", s.Info().Name),
		zap.Int("damage", dealt),
		zap.Int("actor_mana", actor.Mana()),
	}
	fields = append(fields, observability.UnitFields("target", target)...)
	d.logger.Info("skill used", fields...)
}

// drink uses the first potion of kind the player still holds.
func (d *Duel) drink(turn int, kind inventory.PotionType) bool {
	for _, p := range d.potions {
		if p.PotionType != kind || p.Quantity <= 0 {
			continue
		}
		if !p.Use(d.player.Unit) {
			continue
		}
		fields := []zap.Field{
			zap.Int("turn", turn),
			zap.String("potion", p.Name),
			zap.Int("magnitude", p.Magnitude),
			zap.Int("remaining", p.Quantity),
		}
		fields = append(fields, observability.UnitFields("player", d.player.Unit)...)
		d.logger.Info("potion used", fields...)
		return true
	}
	return false
}
