package engine

import (
	"time"

	"dueldice/internal/game"
)

// orderedAttack pairs a pending attack with its declaration position.
// Insertion order is player A's attacks first, then player B's, each in
// the order the player declared them.
type orderedAttack struct {
	att       *game.Attack
	insertion int
}

// collectAttacks gathers both players' pending attacks in insertion
// order.
func (ctx *commitContext) collectAttacks() []orderedAttack {
	out := make([]orderedAttack, 0, 6)
	for _, pid := range ctx.m.Players {
		for _, a := range ctx.m.PendingCommitAttacks[pid] {
			out = append(out, orderedAttack{att: a, insertion: len(out)})
		}
	}
	return out
}

// initiative is the attack's adjusted speed: the rolled speed outcome
// (0 when missing), minus disruption reductions, minus the attacker's
// active frostbite stacks. Never negative. The raw roll stays recorded
// for audit; only ordering sees the adjustment.
func (ctx *commitContext) initiative(att *game.Attack) int {
	v := ctx.statValue(att.ID, game.RollSpeed)
	if card := ctx.attackerCard(att); card != nil {
		v -= card.FrostbiteStacks
	}
	if v < 0 {
		v = 0
	}
	return v
}

// speedSubmittedAt returns when the attack's speed roll was submitted;
// the zero time when no speed roll exists.
func (ctx *commitContext) speedSubmittedAt(att *game.Attack) time.Time {
	if e, ok := ctx.rollEntry(att.ID, game.RollSpeed); ok {
		return e.SubmittedAt
	}
	return time.Time{}
}

// pickNext selects the next attack to resolve: highest adjusted
// initiative first, ties broken by earliest speed-roll submission, then
// by declaration order. Selection is recomputed per step so effects
// resolved earlier in the pass (frostbite, speed disruption) move
// not-yet-executed attacks.
func (ctx *commitContext) pickNext(remaining []orderedAttack) int {
	best := 0
	for i := 1; i < len(remaining); i++ {
		if ctx.ordersBefore(remaining[i], remaining[best]) {
			best = i
		}
	}
	return best
}

func (ctx *commitContext) ordersBefore(a, b orderedAttack) bool {
	ia, ib := ctx.initiative(a.att), ctx.initiative(b.att)
	if ia != ib {
		return ia > ib
	}
	ta, tb := ctx.speedSubmittedAt(a.att), ctx.speedSubmittedAt(b.att)
	if !ta.Equal(tb) {
		return ta.Before(tb)
	}
	return a.insertion < b.insertion
}

// OrderedCommitAttacks computes the current total order over both
// players' pending attacks without executing anything. It is
// deterministic for fixed rolls and timestamps; the execution pass uses
// the same comparator incrementally.
func OrderedCommitAttacks(m *game.Match) []*game.Attack {
	ctx := newCommitContext(m)
	remaining := ctx.collectAttacks()
	out := make([]*game.Attack, 0, len(remaining))
	for len(remaining) > 0 {
		i := ctx.pickNext(remaining)
		out = append(out, remaining[i].att)
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	return out
}
