package service

import (
	"fmt"
	"time"

	"dueldice/internal/constants"
	"dueldice/internal/engine"
	"dueldice/internal/game"
	"dueldice/internal/logging"
)

// SpellStartRequest begins the spell handshake for a hand-only spell
// card.
type SpellStartRequest struct {
	CardID               string          `json:"card_id"`
	SelectedAbilityIndex int             `json:"selected_ability_index"`
	TargetSide           game.TargetSide `json:"target_side"`
	TargetSlotIndex      int             `json:"target_slot_index"`
}

// StartSpellResolution opens a spell resolution. Only one may be in
// flight per match; while it is outstanding every ready/sync/roll call
// by either player is rejected.
func (s *Service) StartSpellResolution(matchID, playerID string, req SpellStartRequest) (*game.SpellResolution, error) {
	var out *game.SpellResolution
	err := s.withMatch(matchID, playerID, func(m *game.Match) error {
		if m.Phase != game.PhaseDecision {
			return ErrWrongPhase
		}
		if m.SpellPending() {
			return ErrSpellAlreadyActive
		}
		if m.ReadyPlayers[playerID] {
			return ErrAlreadyReady
		}

		ps := m.StateFor(playerID)
		var card *game.CardInstance
		for _, c := range ps.Hand {
			if c.ID == req.CardID {
				card = c
				break
			}
		}
		if card == nil {
			return ErrCardNotInHand
		}
		if card.Catalog.CardType != game.TypeSpell {
			return ErrNotSpellCard
		}
		ability := card.Catalog.AbilityAt(req.SelectedAbilityIndex)
		if ability == nil {
			return ErrInvalidAbility
		}
		if req.TargetSide != game.SidePlayer && req.TargetSide != game.SideOpponent {
			return ErrInvalidTarget
		}
		if req.TargetSlotIndex < 0 || req.TargetSlotIndex >= game.MaxBoardSize {
			return ErrInvalidTarget
		}

		var targetBoard []*game.CardInstance
		if req.TargetSide == game.SidePlayer {
			targetBoard = ps.Board
		} else {
			targetBoard = m.StateFor(m.OpponentOf(playerID)).Board
		}
		target := boardCardAt(targetBoard, req.TargetSlotIndex)
		if target == nil {
			return ErrInvalidTarget
		}
		// An active enemy taunt locks enemy-side targeting onto the
		// taunting card.
		if req.TargetSide == game.SideOpponent {
			if taunt := engine.CurrentTauntTarget(targetBoard); taunt != nil && !target.Taunting() {
				return ErrTargetNotTaunting
			}
		}

		rollType, sides := spellRollDie(&card.Catalog, ability)
		s.mu.Lock()
		spellID := s.newID(8)
		s.mu.Unlock()
		spell := &game.SpellResolution{
			ID:                   spellID,
			CasterID:             playerID,
			CardID:               card.ID,
			CardSnapshot:         *card,
			SelectedAbilityIndex: req.SelectedAbilityIndex,
			TargetSide:           req.TargetSide,
			TargetSlotIndex:      req.TargetSlotIndex,
			RollType:             rollType,
			DieSides:             sides,
			RequiresRoll:         ability.ValueSourceType == game.ValueSourceRoll,
			EffectID:             ability.EffectID,
			StartedAt:            time.Now(),
		}
		if !spell.RequiresRoll {
			previewSpell(m, spell, card, ability)
		}
		m.ActiveSpell = spell
		out = spell
		return nil
	})
	return out, err
}

// SubmitSpellRoll records the caster's roll and previews the resolved
// effect without mutating board state.
func (s *Service) SubmitSpellRoll(matchID, playerID string, roll game.RollPayload) (*game.SpellResolution, error) {
	var out *game.SpellResolution
	err := s.withMatch(matchID, playerID, func(m *game.Match) error {
		spell := m.ActiveSpell
		if !spell.Pending() {
			return ErrNoActiveSpell
		}
		if spell.CasterID != playerID {
			return ErrNotSpellCaster
		}
		if !spell.RequiresRoll {
			return ErrSpellRollNotNeeded
		}
		if spell.RollOutcome != nil {
			return ErrSpellAlreadyRolled
		}
		outcome := roll.Outcome
		spell.RollOutcome = &outcome
		spell.RollData = &roll

		card := spell.CardSnapshot
		ability := card.Catalog.AbilityAt(spell.SelectedAbilityIndex)
		previewSpell(m, spell, &card, ability)
		out = spell
		return nil
	})
	return out, err
}

// CompleteSpellResolution applies the spell's effect and any attached
// buff exactly once, moves the spell card to the discard pile and closes
// the resolution.
func (s *Service) CompleteSpellResolution(matchID, playerID string) (*game.SpellResolution, error) {
	var out *game.SpellResolution
	err := s.withMatch(matchID, playerID, func(m *game.Match) error {
		spell := m.ActiveSpell
		if !spell.Pending() {
			return ErrNoActiveSpell
		}
		if spell.CasterID != playerID {
			return ErrNotSpellCaster
		}
		if spell.RequiresRoll && spell.RollOutcome == nil {
			return ErrSpellRollMissing
		}

		card := spell.CardSnapshot
		ability := card.Catalog.AbilityAt(spell.SelectedAbilityIndex)
		previewSpell(m, spell, &card, ability)
		applySpell(m, spell, ability)

		// The spell card leaves the hand for the discard pile.
		ps := m.StateFor(playerID)
		for i, c := range ps.Hand {
			if c.ID == spell.CardID {
				ps.Hand = append(ps.Hand[:i], ps.Hand[i+1:]...)
				ps.Discard = append(ps.Discard, c)
				break
			}
		}

		now := time.Now()
		spell.CompletedAt = &now
		m.AddEvent(fmt.Sprintf("%s resolved for %d", card.Catalog.Name, spell.ResolvedValue))
		logging.Info("spell resolution completed", logging.Fields{constants.LogFieldMatchID: m.ID, constants.LogFieldPlayerID: playerID, constants.LogFieldSpellID: spell.ID, "value": spell.ResolvedValue})
		out = spell
		return nil
	})
	return out, err
}

// spellRollDie maps an ability's value stat onto its die.
func spellRollDie(cat *game.CatalogCard, ability *game.Ability) (game.RollType, int) {
	stat := ability.ValueSourceStat
	switch stat {
	case game.RollSpeed:
		return stat, cat.SpeedDieSides
	case game.RollDefense:
		return stat, cat.DefenseDieSides
	case game.RollDamage, game.RollEffect:
		return game.RollEffect, cat.DamageDieSides
	}
	return game.RollEffect, cat.DamageDieSides
}

// spellTargetCard resolves the spell's current target against live board
// state.
func spellTargetCard(m *game.Match, spell *game.SpellResolution) *game.CardInstance {
	var board []*game.CardInstance
	if spell.TargetSide == game.SidePlayer {
		board = m.StateFor(spell.CasterID).Board
	} else {
		board = m.StateFor(m.OpponentOf(spell.CasterID)).Board
	}
	return boardCardAt(board, spell.TargetSlotIndex)
}

// previewSpell derives the resolved figures for the spell against the
// current target without mutating any board state.
func previewSpell(m *game.Match, spell *game.SpellResolution, card *game.CardInstance, ability *game.Ability) {
	value := engine.ResolveFixedOrRollValue(ability, spell.RollOutcome)
	if target := spellTargetCard(m, spell); target != nil {
		value, _ = engine.AdjustedEffectValue(value, ability.EffectID, card.Catalog.CardType, target.Catalog.CardType)
	}
	spell.ResolvedValue = value
	spell.ResolvedDamage = 0
	spell.ResolvedHealing = 0
	switch ability.EffectID {
	case game.EffectDamageEnemy, game.EffectDisruption:
		spell.ResolvedDamage = value
	case game.EffectHealTarget:
		spell.ResolvedHealing = value
	case game.EffectLifeSteal:
		spell.ResolvedDamage = value
		spell.ResolvedHealing = value
	}
}

// applySpell mutates board state for a completed spell. Disruption cast
// during Decision always falls back to direct damage: there is no queued
// attack to reduce outside a commit pass.
func applySpell(m *game.Match, spell *game.SpellResolution, ability *game.Ability) {
	target := spellTargetCard(m, spell)
	if target == nil {
		return
	}
	value := spell.ResolvedValue

	targetOwner := spell.CasterID
	if spell.TargetSide == game.SideOpponent {
		targetOwner = m.OpponentOf(spell.CasterID)
	}

	switch ability.EffectID {
	case game.EffectDamageEnemy, game.EffectDisruption:
		spellDamage(m, targetOwner, target, value)
	case game.EffectHealTarget:
		target.Health += value
	case game.EffectRetaliationBonus:
		target.RetaliationBonus += value
	case game.EffectLifeSteal:
		spellDamage(m, targetOwner, target, value)
		// Without a board-side caster the stolen life goes to the
		// caster's most wounded board card; it is lost on an empty
		// board.
		if ally := lowestHealthCard(m.StateFor(spell.CasterID).Board); ally != nil {
			ally.Health += value
		}
	}

	if ability.BuffID != game.BuffNone {
		if buffed := spellBuffTarget(m, spell, ability, target); buffed != nil {
			engine.ApplyBuffTo(m, buffed, ability.BuffID, ability.DurationTurns)
		}
	}
}

func spellDamage(m *game.Match, ownerID string, target *game.CardInstance, amount int) {
	target.Health -= amount
	if target.Health <= 0 {
		m.StateFor(ownerID).RemoveFromBoard(target)
		m.AddEvent(fmt.Sprintf("%s is destroyed", target.Catalog.Name))
	}
}

// spellBuffTarget picks the card a spell's attached buff lands on. Self
// and friendly land on the player-side target; enemy lands on the
// enemy-side target.
func spellBuffTarget(m *game.Match, spell *game.SpellResolution, ability *game.Ability, target *game.CardInstance) *game.CardInstance {
	switch ability.BuffTarget {
	case game.BuffTargetSelf, game.BuffTargetFriendly:
		if spell.TargetSide == game.SidePlayer {
			return target
		}
	case game.BuffTargetEnemy:
		if spell.TargetSide == game.SideOpponent {
			return target
		}
	}
	return nil
}

func boardCardAt(board []*game.CardInstance, slot int) *game.CardInstance {
	for _, c := range board {
		if c.SlotIndex == slot {
			return c
		}
	}
	return nil
}

func lowestHealthCard(board []*game.CardInstance) *game.CardInstance {
	var best *game.CardInstance
	for _, c := range board {
		if best == nil || c.Health < best.Health {
			best = c
		}
	}
	return best
}
