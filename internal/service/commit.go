package service

import (
	"time"

	"dueldice/internal/constants"
	"dueldice/internal/engine"
	"dueldice/internal/game"
	"dueldice/internal/logging"
)

// SubmitCommitRoll records one stat roll for one of the player's own
// pending attacks. The roll payload comes from the client's dice
// simulator and is trusted verbatim.
func (s *Service) SubmitCommitRoll(matchID, playerID, attackID string, rollType game.RollType, sides int, roll game.RollPayload) error {
	return s.withMatch(matchID, playerID, func(m *game.Match) error {
		if m.Phase != game.PhaseCommit {
			return ErrWrongPhase
		}
		if m.SpellPending() {
			return ErrSpellPending
		}
		switch rollType {
		case game.RollDamage, game.RollSpeed, game.RollDefense, game.RollEffect:
		default:
			return ErrInvalidRollType
		}

		var attack *game.Attack
		for _, pid := range m.Players {
			for _, a := range m.PendingCommitAttacks[pid] {
				if a.ID == attackID {
					attack = a
					break
				}
			}
		}
		if attack == nil {
			return ErrUnknownAttack
		}
		if attack.AttackerID != playerID {
			return ErrNotYourAttack
		}

		key := game.RollKey(attackID, rollType)
		if _, exists := m.CommitRolls[key]; exists {
			return ErrRollAlreadySubmitted
		}
		m.CommitRolls[key] = game.CommitRollEntry{
			AttackID:    attackID,
			AttackerID:  playerID,
			RollType:    rollType,
			Sides:       sides,
			Roll:        roll,
			SubmittedAt: time.Now(),
		}
		logging.Debug("commit roll recorded", logging.Fields{constants.LogFieldMatchID: m.ID, constants.LogFieldPlayerID: playerID, constants.LogFieldAttackID: attackID, "roll_type": rollType})
		return nil
	})
}

// CompleteCommitRolls signals the player is done rolling. Once both
// players have signaled, the commit resolution runs exactly once and
// stamps CommitAllRolledAt.
func (s *Service) CompleteCommitRolls(matchID, playerID string) error {
	return s.withMatch(matchID, playerID, func(m *game.Match) error {
		if m.Phase != game.PhaseCommit {
			return ErrWrongPhase
		}
		if m.CommitCompleted[playerID] {
			return ErrAlreadyCompleted
		}
		m.CommitCompleted[playerID] = true
		if m.CommitCompleted[m.Players[0]] && m.CommitCompleted[m.Players[1]] && m.CommitAllRolledAt == nil {
			engine.ApplyCommitEffects(m)
			logging.Info("commit resolution applied", logging.Fields{constants.LogFieldMatchID: m.ID, constants.LogFieldTurn: m.TurnNumber, "attacks": len(m.CommitOrder)})
		}
		return nil
	})
}

// CompleteCommitAnimations signals the player finished animating the
// execution log. Once both players have signaled, the match advances to
// the next Decision phase.
func (s *Service) CompleteCommitAnimations(matchID, playerID string) error {
	return s.withMatch(matchID, playerID, func(m *game.Match) error {
		if m.Phase != game.PhaseCommit {
			return ErrWrongPhase
		}
		if m.CommitAllRolledAt == nil {
			return ErrRollsNotComplete
		}
		if m.CommitAnimationCompleted[playerID] {
			return ErrAlreadyCompleted
		}
		m.CommitAnimationCompleted[playerID] = true
		if m.CommitAnimationCompleted[m.Players[0]] && m.CommitAnimationCompleted[m.Players[1]] {
			engine.AdvanceToDecision(m)
			logging.Info("decision phase entered", logging.Fields{constants.LogFieldMatchID: m.ID, constants.LogFieldTurn: m.TurnNumber, constants.LogFieldPhase: m.Phase})
		}
		return nil
	})
}
