package service

import (
	"dueldice/internal/constants"
	"dueldice/internal/engine"
	"dueldice/internal/game"
	"dueldice/internal/logging"
)

// SubmittedCard references one of the player's cards by id. SlotIndex is
// only read for board entries.
type SubmittedCard struct {
	ID        string `json:"id"`
	SlotIndex int    `json:"slot_index"`
}

// SubmittedAttack declares one attack from a board slot.
type SubmittedAttack struct {
	AttackerSlotIndex    int             `json:"attacker_slot_index"`
	TargetSide           game.TargetSide `json:"target_side"`
	TargetSlotIndex      int             `json:"target_slot_index"`
	SelectedAbilityIndex int             `json:"selected_ability_index"`
}

// StateSubmission is the full Decision-phase payload: the client's view
// of its hand, board and discard, plus the attacks it declares.
type StateSubmission struct {
	Hand    []SubmittedCard   `json:"hand"`
	Board   []SubmittedCard   `json:"board"`
	Discard []SubmittedCard   `json:"discard"`
	Attacks []SubmittedAttack `json:"attacks"`
}

// ReadyUp validates and commits a Decision-phase submission and marks
// the player ready. When both players are ready the match enters the
// Commit phase.
func (s *Service) ReadyUp(matchID, playerID string, sub StateSubmission) error {
	return s.withMatch(matchID, playerID, func(m *game.Match) error {
		if m.Phase != game.PhaseDecision {
			return ErrWrongPhase
		}
		if m.SpellPending() {
			return ErrSpellPending
		}
		if m.ReadyPlayers[playerID] {
			return ErrAlreadyReady
		}
		if err := applySubmission(m, playerID, sub); err != nil {
			return err
		}
		m.ReadyPlayers[playerID] = true
		if m.ReadyPlayers[m.Players[0]] && m.ReadyPlayers[m.Players[1]] {
			engine.EnterCommitPhase(m)
			logging.Info("both players ready, commit phase entered", logging.Fields{constants.LogFieldMatchID: m.ID, constants.LogFieldTurn: m.TurnNumber, constants.LogFieldPhase: m.Phase})
		}
		return nil
	})
}

// SyncState applies the same validation and submission as ReadyUp
// without readying up. It is rejected once the player has readied.
func (s *Service) SyncState(matchID, playerID string, sub StateSubmission) error {
	return s.withMatch(matchID, playerID, func(m *game.Match) error {
		if m.Phase != game.PhaseDecision {
			return ErrWrongPhase
		}
		if m.SpellPending() {
			return ErrSpellPending
		}
		if m.ReadyPlayers[playerID] {
			return ErrNotReadyPhase
		}
		return applySubmission(m, playerID, sub)
	})
}

// applySubmission validates a submission fully, then rebuilds the
// player's zones from the server-side card instances and records the
// declared attacks. Validation failures leave the match untouched.
func applySubmission(m *game.Match, playerID string, sub StateSubmission) error {
	ps := m.StateFor(playerID)

	// Index the cards the player currently owns outside the deck. The
	// submission must be a pure rearrangement of exactly this set.
	owned := make(map[string]*game.CardInstance)
	for _, zone := range [][]*game.CardInstance{ps.Hand, ps.Board, ps.Discard} {
		for _, c := range zone {
			owned[c.ID] = c
		}
	}

	if len(sub.Hand) > game.MaxHandSize {
		return ErrHandTooLarge
	}
	if len(sub.Board) > game.MaxBoardSize {
		return ErrBoardTooLarge
	}

	seen := make(map[string]bool, len(owned))
	checkCard := func(sc SubmittedCard) (*game.CardInstance, error) {
		c, ok := owned[sc.ID]
		if !ok {
			return nil, ErrUnknownCard
		}
		if seen[sc.ID] {
			return nil, ErrCardConservation
		}
		seen[sc.ID] = true
		return c, nil
	}

	newHand := make([]*game.CardInstance, 0, len(sub.Hand))
	for _, sc := range sub.Hand {
		c, err := checkCard(sc)
		if err != nil {
			return err
		}
		newHand = append(newHand, c)
	}

	slots := make(map[int]*game.CardInstance, len(sub.Board))
	newBoard := make([]*game.CardInstance, 0, len(sub.Board))
	prevSlots := make(map[string]bool, len(ps.Board))
	for _, c := range ps.Board {
		prevSlots[c.ID] = true
	}
	for _, sc := range sub.Board {
		c, err := checkCard(sc)
		if err != nil {
			return err
		}
		if sc.SlotIndex < 0 || sc.SlotIndex >= game.MaxBoardSize {
			return ErrSlotOutOfRange
		}
		if slots[sc.SlotIndex] != nil {
			return ErrDuplicateSlot
		}
		if c.Catalog.CardType == game.TypeSpell {
			return ErrSpellCardOnBoard
		}
		slots[sc.SlotIndex] = c
		newBoard = append(newBoard, c)
	}

	newDiscard := make([]*game.CardInstance, 0, len(sub.Discard))
	for _, sc := range sub.Discard {
		c, err := checkCard(sc)
		if err != nil {
			return err
		}
		newDiscard = append(newDiscard, c)
	}

	// Conservation: every owned card must appear exactly once.
	if len(seen) != len(owned) {
		return ErrCardConservation
	}

	// Validate attacks against the new board before any write.
	attackSlots := make(map[int]bool, len(sub.Attacks))
	attacks := make([]*game.Attack, 0, len(sub.Attacks))
	for _, sa := range sub.Attacks {
		attacker := slots[sa.AttackerSlotIndex]
		if attacker == nil {
			return ErrInvalidAttack
		}
		if attackSlots[sa.AttackerSlotIndex] {
			return ErrDuplicateAttack
		}
		if sa.TargetSide != game.SidePlayer && sa.TargetSide != game.SideOpponent {
			return ErrInvalidAttack
		}
		if sa.TargetSlotIndex < 0 || sa.TargetSlotIndex >= game.MaxBoardSize {
			return ErrInvalidAttack
		}
		if attacker.Catalog.AbilityAt(sa.SelectedAbilityIndex) == nil {
			return ErrInvalidAttack
		}
		// Summoning sickness: cards placed this turn cannot attack. A
		// card keeps its original SummonedTurn only if it was already
		// on the board.
		summoned := attacker.SummonedTurn
		if !prevSlots[attacker.ID] {
			summoned = m.TurnNumber
		}
		if summoned >= m.TurnNumber {
			return ErrSummoningSickness
		}
		attackSlots[sa.AttackerSlotIndex] = true
		attacks = append(attacks, &game.Attack{
			ID:                      game.AttackID(playerID, sa.AttackerSlotIndex, sa.TargetSide, sa.TargetSlotIndex),
			AttackerID:              playerID,
			AttackerSlotIndex:       sa.AttackerSlotIndex,
			TargetSide:              sa.TargetSide,
			TargetSlotIndex:         sa.TargetSlotIndex,
			DeclaredTargetSlotIndex: sa.TargetSlotIndex,
			SelectedAbilityIndex:    sa.SelectedAbilityIndex,
		})
	}

	// All checks passed; commit the rearrangement.
	ps.Hand = newHand
	ps.Discard = newDiscard
	ps.Board = newBoard
	for slot, c := range slots {
		if !prevSlots[c.ID] {
			c.SummonedTurn = m.TurnNumber
		}
		c.SlotIndex = slot
		c.AttackCommitted = false
		c.TargetSide = ""
		c.TargetSlotIndex = 0
		c.SelectedAbilityIndex = 0
	}
	for _, a := range attacks {
		c := slots[a.AttackerSlotIndex]
		c.AttackCommitted = true
		c.TargetSide = a.TargetSide
		c.TargetSlotIndex = a.TargetSlotIndex
		c.SelectedAbilityIndex = a.SelectedAbilityIndex
	}
	m.DeclaredAttacks[playerID] = attacks
	return nil
}
