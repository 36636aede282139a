package engine

import (
	"time"

	"dueldice/internal/game"
)

// Skip reasons recorded in the execution log.
const (
	ReasonSilenced        = "silenced"
	ReasonAttackerRemoved = "attacker_removed"
	ReasonTargetRemoved   = "target_removed"
	ReasonNoAbility       = "no_ability"
)

// ApplyCommitEffects resolves the whole Commit phase in one pass. The
// next attacker is selected lazily after every step so effects applied
// earlier in the pass (taunt, silence, frostbite, speed disruption)
// influence the remainder of the same pass. The realized order and the
// full execution log are written onto the match; given identical rolls
// and timestamps the result is identical on every run.
func ApplyCommitEffects(m *game.Match) {
	ctx := newCommitContext(m)
	remaining := ctx.collectAttacks()

	m.CommitOrder = make([]string, 0, len(remaining))
	m.CommitExecutions = make(map[string]*game.CommitExecution, len(remaining))

	for len(remaining) > 0 {
		i := ctx.pickNext(remaining)
		att := remaining[i].att
		remaining = append(remaining[:i], remaining[i+1:]...)

		exec := ctx.executeAttack(att)
		ctx.executed[att.ID] = true
		m.CommitOrder = append(m.CommitOrder, att.ID)
		m.CommitExecutions[att.ID] = exec
	}

	now := time.Now()
	m.CommitAllRolledAt = &now
}

// executeAttack runs a single step of the pipeline: taunt recheck,
// silence gate, ability resolution, effect application, buff
// application, retaliation.
func (ctx *commitContext) executeAttack(att *game.Attack) *game.CommitExecution {
	exec := &game.CommitExecution{
		AttackID:                att.ID,
		TargetSide:              att.TargetSide,
		TargetSlotIndex:         att.TargetSlotIndex,
		DeclaredTargetSlotIndex: att.DeclaredTargetSlotIndex,
	}

	attacker := ctx.attackerCard(att)
	if attacker == nil {
		exec.Reason = ReasonAttackerRemoved
		return exec
	}
	if attacker.Silenced() {
		exec.Reason = ReasonSilenced
		return exec
	}
	ability := attacker.Catalog.AbilityAt(att.SelectedAbilityIndex)
	if ability == nil {
		exec.Reason = ReasonNoAbility
		return exec
	}
	exec.EffectID = ability.EffectID
	exec.BuffID = ability.BuffID

	target, redirected := ctx.redirectForTaunt(att)
	if target != nil {
		exec.TargetSlotIndex = target.SlotIndex
		// An eager redirect rewrote the bound slot before this step
		// ran; compare against the declared slot so it still shows up.
		if att.TargetSide == game.SideOpponent && target.SlotIndex != att.DeclaredTargetSlotIndex {
			redirected = true
		}
	}
	exec.Redirected = redirected

	if target == nil && ability.EffectID != game.EffectNone {
		exec.Reason = ReasonTargetRemoved
		return exec
	}

	value := ctx.resolveValue(ability, att.ID)
	if target != nil {
		var adv bool
		value, adv = AdjustedEffectValue(value, ability.EffectID, attacker.Catalog.CardType, target.Catalog.CardType)
		exec.TypeAdvantage = adv
	}
	exec.ResolvedValue = value
	exec.Executed = true

	ctx.applyEffect(att, ability, attacker, target, value, exec)
	exec.BuffApplied = ctx.applyBuff(ability, att, attacker, target)

	if dealsEnemyDamage(ability.EffectID) && att.TargetSide == game.SideOpponent && target != nil {
		ctx.applyRetaliation(att, attacker, target, exec)
		if ability.EffectID == game.EffectLifeSteal {
			retaliated := 0
			if exec.Retaliation != nil {
				retaliated = exec.Retaliation.AppliedDamage
			}
			exec.LifeStealNetHealing = exec.LifeStealHealing - retaliated
		}
	}
	return exec
}

func dealsEnemyDamage(effect game.EffectID) bool {
	return effect == game.EffectDamageEnemy || effect == game.EffectLifeSteal
}
