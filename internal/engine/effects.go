package engine

import (
	"dueldice/internal/game"
)

// applyEffect mutates board state for a resolved ability value. The
// target is the post-redirection card.
func (ctx *commitContext) applyEffect(att *game.Attack, ability *game.Ability, attacker, target *game.CardInstance, value int, exec *game.CommitExecution) {
	switch ability.EffectID {
	case game.EffectDamageEnemy:
		exec.AppliedDamage = value
		exec.TargetDefeated = ctx.dealDamage(att, target, value)

	case game.EffectHealTarget:
		// Healing is uncapped.
		target.Health += value
		exec.AppliedHealing = value

	case game.EffectRetaliationBonus:
		// Stacks additively; never touches health directly.
		target.RetaliationBonus += value

	case game.EffectLifeSteal:
		exec.AppliedDamage = value
		exec.TargetDefeated = ctx.dealDamage(att, target, value)
		// The caster heals by the gross type-adjusted amount dealt,
		// before any retaliation loss is subtracted.
		attacker.Health += value
		exec.LifeStealHealing = value
		exec.LifeStealNetHealing = value
		exec.AppliedHealing = value

	case game.EffectDisruption:
		ctx.applyDisruption(att, ability, target, value, exec)
	}
}

// dealDamage subtracts health from the target and removes it from its
// board at 0 or below. Returns whether the target was defeated.
func (ctx *commitContext) dealDamage(att *game.Attack, target *game.CardInstance, amount int) bool {
	target.Health -= amount
	if target.Health > 0 {
		return false
	}
	ctx.m.StateFor(ctx.targetOwnerID(att)).RemoveFromBoard(target)
	return true
}

// applyDisruption reduces the target's own resolved stat for this commit
// phase. A reduction aimed at damage or defense lands when that stat is
// later consumed; one aimed at speed re-positions the target in the
// still-open ordering pass. Without a queued attack to disrupt, the
// resolved value falls back to direct health damage.
func (ctx *commitContext) applyDisruption(att *game.Attack, ability *game.Ability, target *game.CardInstance, value int, exec *game.CommitExecution) {
	targetOwner := ctx.targetOwnerID(att)
	queued := ctx.queuedAttackOf(targetOwner, target)
	if queued == nil {
		exec.DisruptionFallbackDamage = value
		exec.AppliedDamage = value
		exec.TargetDefeated = ctx.dealDamage(att, target, value)
		return
	}
	stat := ability.EnemyValueSourceStat
	if stat == game.RollEffect {
		stat = game.RollDamage
	}
	ctx.addReduction(queued.ID, stat, value)
	exec.DisruptedStat = stat
	exec.DisruptedAttackID = queued.ID
}

// applyRetaliation resolves counter-damage after an enemy-directed
// damage effect. The defender counter-attacks when its own pending
// attack is aimed back at the attacker's slot; retaliation damage is the
// defender's resolved attack value plus its accumulated retaliation
// bonus, mitigated by the attacker's rolled defense. Mutual kills are
// valid outcomes: retaliation applies even when the defender was just
// defeated by the triggering blow.
func (ctx *commitContext) applyRetaliation(att *game.Attack, attacker, defender *game.CardInstance, exec *game.CommitExecution) {
	defenderOwner := ctx.targetOwnerID(att)
	counter := ctx.counterAttackOf(defenderOwner, defender, att)
	if counter == nil {
		return
	}
	if defender.Silenced() {
		return
	}

	base := 0
	if ability := defender.Catalog.AbilityAt(counter.SelectedAbilityIndex); ability != nil && dealsEnemyDamage(ability.EffectID) {
		base = ctx.resolveValue(ability, counter.ID)
		base, _ = AdjustedEffectValue(base, ability.EffectID, defender.Catalog.CardType, attacker.Catalog.CardType)
	}
	total := base + defender.RetaliationBonus
	if total <= 0 {
		return
	}

	defense := ctx.statValue(att.ID, game.RollDefense)
	applied := total - defense
	remaining := 0
	if applied < 0 {
		applied = 0
	}
	if defense > total {
		remaining = defense - total
	}

	result := &game.RetaliationResult{
		DefenderSlotIndex: defender.SlotIndex,
		BaseDamage:        base,
		RetaliationBonus:  defender.RetaliationBonus,
		DefenseRoll:       defense,
		AppliedDamage:     applied,
		DefenseRemaining:  remaining,
	}
	if applied > 0 {
		attacker.Health -= applied
		if attacker.Health <= 0 {
			ctx.m.StateFor(att.AttackerID).RemoveFromBoard(attacker)
			result.AttackerDefeated = true
		}
	}
	exec.Retaliation = result
}

// counterAttackOf finds the defender's pending attack aimed back at the
// original attacker's slot.
func (ctx *commitContext) counterAttackOf(ownerID string, defender *game.CardInstance, att *game.Attack) *game.Attack {
	for _, a := range ctx.m.PendingCommitAttacks[ownerID] {
		if a.AttackerSlotIndex != defender.SlotIndex {
			continue
		}
		if a.TargetSide == game.SideOpponent && a.TargetSlotIndex == att.AttackerSlotIndex {
			return a
		}
	}
	return nil
}
