package engine

import (
	"dueldice/internal/game"
)

// CurrentTauntTarget returns the card enemy attacks must be redirected
// onto: the taunting card with the highest current health, ties broken
// by lowest slot index. Nil when no card on the board is taunting.
func CurrentTauntTarget(board []*game.CardInstance) *game.CardInstance {
	var best *game.CardInstance
	for _, c := range board {
		if !c.Taunting() {
			continue
		}
		if best == nil || c.Health > best.Health || (c.Health == best.Health && c.SlotIndex < best.SlotIndex) {
			best = c
		}
	}
	return best
}

// redirectForTaunt re-checks taunt against the defender's current board
// and returns the card the attack actually lands on. Redirection binds
// at the attack's own execution time: a taunt applied earlier in the
// same pass captures attacks that were declared against another card.
func (ctx *commitContext) redirectForTaunt(att *game.Attack) (*game.CardInstance, bool) {
	defender := ctx.m.StateFor(ctx.targetOwnerID(att))
	original := defender.BoardCardAt(att.TargetSlotIndex)
	if att.TargetSide != game.SideOpponent {
		return original, false
	}
	taunt := CurrentTauntTarget(defender.Board)
	if taunt == nil {
		return original, false
	}
	if original != nil && original.Taunting() {
		return original, false
	}
	return taunt, taunt != original
}

// applyBuff lands an ability's attached status on its buff target.
// Returns false when there is nothing to apply.
func (ctx *commitContext) applyBuff(ability *game.Ability, att *game.Attack, actor, enemyTarget *game.CardInstance) bool {
	if ability.BuffID == game.BuffNone {
		return false
	}
	var target *game.CardInstance
	switch ability.BuffTarget {
	case game.BuffTargetSelf:
		target = actor
	case game.BuffTargetFriendly:
		if att.TargetSide == game.SidePlayer {
			target = ctx.m.StateFor(att.AttackerID).BoardCardAt(att.TargetSlotIndex)
		}
		if target == nil {
			target = actor
		}
	case game.BuffTargetEnemy:
		target = enemyTarget
	}
	if target == nil {
		return false
	}
	applyBuffTo(ctx.m, target, ability.BuffID, ability.DurationTurns, ctx.executed)
	return true
}

// ApplyBuffTo mutates a card's timed status counters for one buff
// application from outside a commit pass (the spell handshake).
func ApplyBuffTo(m *game.Match, card *game.CardInstance, buff game.BuffID, duration int) {
	applyBuffTo(m, card, buff, duration, nil)
}

// applyBuffTo is the shared buff application. Taunt additionally
// performs an eager redirect scan over the opposing player's
// not-yet-executed attacks; each attack is bound again at its own
// execution slot regardless.
func applyBuffTo(m *game.Match, card *game.CardInstance, buff game.BuffID, duration int, executed map[string]bool) {
	switch buff {
	case game.BuffTaunt:
		card.TauntTurnsRemaining = duration
		if ownerID := m.OwnerOfBoardCard(card); ownerID != "" {
			eagerRedirect(m, ownerID, executed)
		}
	case game.BuffSilence:
		card.SilenceTurnsRemaining = duration
	case game.BuffPoison:
		card.PoisonStacks++
		card.PoisonTurnsRemaining = duration
	case game.BuffFire:
		card.FireStacks++
		card.FireTurnsRemaining = duration
	case game.BuffFrostbite:
		card.FrostbiteStacks++
		card.FrostbiteTurnsRemaining = duration
	}
}

// eagerRedirect rebinds the opposing player's still-pending attacks onto
// the taunt target owned by ownerID. Attacks already aimed at a taunting
// card keep their target.
func eagerRedirect(m *game.Match, ownerID string, executed map[string]bool) {
	owner := m.StateFor(ownerID)
	taunt := CurrentTauntTarget(owner.Board)
	if taunt == nil {
		return
	}
	oppID := m.OpponentOf(ownerID)
	for _, a := range m.PendingCommitAttacks[oppID] {
		if a.TargetSide != game.SideOpponent {
			continue
		}
		if executed[a.ID] {
			continue
		}
		if cur := owner.BoardCardAt(a.TargetSlotIndex); cur != nil && cur.Taunting() {
			continue
		}
		a.TargetSlotIndex = taunt.SlotIndex
	}
}
