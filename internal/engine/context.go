package engine

import (
	"math"

	"dueldice/internal/game"
)

// commitContext carries the state of one commit resolution pass: the
// match being resolved plus the per-attack stat reductions accumulated
// by disruption effects during the pass.
type commitContext struct {
	m *game.Match

	// statReductions maps target attack id -> rolled stat -> total
	// reduction applied by disruption this phase. Reductions are
	// consumed whenever the stat is read, so a reduction registered
	// mid-pass affects every later read of that stat.
	statReductions map[string]map[game.RollType]int

	// executed marks attack ids whose execution slot has passed.
	executed map[string]bool
}

func newCommitContext(m *game.Match) *commitContext {
	return &commitContext{
		m:              m,
		statReductions: make(map[string]map[game.RollType]int),
		executed:       make(map[string]bool),
	}
}

func (ctx *commitContext) addReduction(attackID string, stat game.RollType, amount int) {
	if ctx.statReductions[attackID] == nil {
		ctx.statReductions[attackID] = make(map[game.RollType]int)
	}
	ctx.statReductions[attackID][stat] += amount
}

// rollEntry looks up a recorded roll for an attack. Spell-era clients
// submit the damage stat under the name "efct"; alias it transparently.
func (ctx *commitContext) rollEntry(attackID string, stat game.RollType) (game.CommitRollEntry, bool) {
	if stat == game.RollEffect {
		stat = game.RollDamage
	}
	if e, ok := ctx.m.CommitRolls[game.RollKey(attackID, stat)]; ok {
		return e, true
	}
	if stat == game.RollDamage {
		if e, ok := ctx.m.CommitRolls[game.RollKey(attackID, game.RollEffect)]; ok {
			return e, true
		}
	}
	return game.CommitRollEntry{}, false
}

// statValue returns the usable value of a rolled stat: the floored roll
// outcome (0 when missing or negative) minus any disruption reductions,
// never below 0.
func (ctx *commitContext) statValue(attackID string, stat game.RollType) int {
	e, ok := ctx.rollEntry(attackID, stat)
	v := 0
	if ok {
		v = int(math.Floor(e.Roll.Outcome))
	}
	if v < 0 {
		v = 0
	}
	if red, ok := ctx.statReductions[attackID]; ok {
		if stat == game.RollEffect {
			stat = game.RollDamage
		}
		v -= red[stat]
		if v < 0 {
			v = 0
		}
	}
	return v
}

// attackerCard returns the board card an attack originates from, or nil
// when the card has left the board.
func (ctx *commitContext) attackerCard(att *game.Attack) *game.CardInstance {
	return ctx.m.StateFor(att.AttackerID).BoardCardAt(att.AttackerSlotIndex)
}

// targetOwnerID resolves the player owning an attack's target side.
func (ctx *commitContext) targetOwnerID(att *game.Attack) string {
	if att.TargetSide == game.SidePlayer {
		return att.AttackerID
	}
	return ctx.m.OpponentOf(att.AttackerID)
}

// queuedAttackOf returns the pending attack declared by the given board
// card this phase, or nil.
func (ctx *commitContext) queuedAttackOf(ownerID string, card *game.CardInstance) *game.Attack {
	for _, a := range ctx.m.PendingCommitAttacks[ownerID] {
		if a.AttackerSlotIndex == card.SlotIndex {
			return a
		}
	}
	return nil
}
