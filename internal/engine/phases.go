package engine

import (
	"fmt"
	"strings"
	"time"

	"dueldice/internal/game"
)

// EnterCommitPhase moves a match from Decision to Commit: it snapshots
// each player's declared attacks, resets the roll and execution maps and
// clears both completion sets. Callers must have verified that both
// players are ready.
func EnterCommitPhase(m *game.Match) {
	m.Phase = game.PhaseCommit
	m.PhaseStartedAt = time.Now()

	m.PendingCommitAttacks = make(map[string][]*game.Attack, 2)
	for _, pid := range m.Players {
		declared := m.DeclaredAttacks[pid]
		pending := make([]*game.Attack, len(declared))
		for i, a := range declared {
			cp := *a
			pending[i] = &cp
		}
		m.PendingCommitAttacks[pid] = pending
	}

	m.CommitRolls = make(map[string]game.CommitRollEntry)
	m.CommitOrder = nil
	m.CommitExecutions = make(map[string]*game.CommitExecution)
	m.CommitCompleted = make(map[string]bool, 2)
	m.CommitAnimationCompleted = make(map[string]bool, 2)
	m.CommitAllRolledAt = nil
	m.AddEvent("commit phase started")
}

// AdvanceToDecision moves a match from Commit back to Decision and runs
// the turn upkeep: counters, status timers, damage-over-time ticks and
// the per-player draw. Callers must have verified that both players
// acknowledged animation playback.
func AdvanceToDecision(m *game.Match) {
	m.TurnNumber++
	m.Upkeep++
	if m.Upkeep > game.MaxUpkeep {
		m.Upkeep = game.MaxUpkeep
	}
	m.Phase = game.PhaseDecision
	m.PhaseStartedAt = time.Now()
	m.ReadyPlayers = make(map[string]bool, 2)
	m.DeclaredAttacks = make(map[string][]*game.Attack, 2)
	m.LastDrawnCards = make(map[string][]*game.CardInstance, 2)

	for _, pid := range m.Players {
		ps := m.StateFor(pid)
		tickBoardStatuses(m, ps)
		drawCard(m, pid, ps)
	}
	m.AddEvent(fmt.Sprintf("turn %d started (upkeep %d)", m.TurnNumber, m.Upkeep))
}

// tickBoardStatuses decrements timed statuses, clears per-turn attack
// declarations and applies one damage-over-time tick per board card.
func tickBoardStatuses(m *game.Match, ps *game.PlayerState) {
	// Iterate over a copy: DOT deaths mutate the board slice.
	cards := append([]*game.CardInstance(nil), ps.Board...)
	for _, c := range cards {
		if c.TauntTurnsRemaining > 0 {
			c.TauntTurnsRemaining--
		}
		if c.SilenceTurnsRemaining > 0 {
			c.SilenceTurnsRemaining--
		}
		c.AttackCommitted = false
		c.TargetSide = ""
		c.TargetSlotIndex = 0
		c.SelectedAbilityIndex = 0
		c.RetaliationBonus = 0

		applyDotTick(m, ps, c)
	}
}

// applyDotTick applies poison and fire damage (one point per active
// type, independent and additive), decrements the DOT timers and decays
// frostbite. Stacks clear when their timer reaches zero.
func applyDotTick(m *game.Match, ps *game.PlayerState, c *game.CardInstance) {
	damage := 0
	var sources []string
	if c.PoisonStacks > 0 && c.PoisonTurnsRemaining > 0 {
		damage++
		sources = append(sources, "poison")
		c.PoisonTurnsRemaining--
		if c.PoisonTurnsRemaining == 0 {
			c.PoisonStacks = 0
		}
	}
	if c.FireStacks > 0 && c.FireTurnsRemaining > 0 {
		damage++
		sources = append(sources, "fire")
		c.FireTurnsRemaining--
		if c.FireTurnsRemaining == 0 {
			c.FireStacks = 0
		}
	}
	if c.FrostbiteTurnsRemaining > 0 {
		c.FrostbiteTurnsRemaining--
		if c.FrostbiteTurnsRemaining == 0 {
			c.FrostbiteStacks = 0
		}
	}
	if damage == 0 {
		return
	}
	c.Health -= damage
	m.AddEvent(fmt.Sprintf("%s takes %d damage (%s)", c.Catalog.Name, damage, strings.Join(sources, ", ")))
	if c.Health <= 0 {
		ps.RemoveFromBoard(c)
		m.AddEvent(fmt.Sprintf("%s is destroyed", c.Catalog.Name))
	}
}

// drawCard moves the top deck card into the player's hand when the deck
// is non-empty and the hand is below the cap, recording it in
// LastDrawnCards.
func drawCard(m *game.Match, pid string, ps *game.PlayerState) {
	if len(ps.Deck) == 0 || len(ps.Hand) >= game.MaxHandSize {
		return
	}
	card := ps.Deck[0]
	ps.Deck = ps.Deck[1:]
	ps.Hand = append(ps.Hand, card)
	m.LastDrawnCards[pid] = append(m.LastDrawnCards[pid], card)
}
