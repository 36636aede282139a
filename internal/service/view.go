package service

import (
	"dueldice/internal/game"
)

// SideView is one player's zones as seen by the viewer. Hand contents
// are only present for the viewer's own side; the opponent exposes
// counts.
type SideView struct {
	PlayerID  string               `json:"player_id"`
	Hand      []*game.CardInstance `json:"hand,omitempty"`
	HandCount int                  `json:"hand_count"`
	DeckCount int                  `json:"deck_count"`
	Board     []*game.CardInstance `json:"board"`
	Discard   []*game.CardInstance `json:"discard"`
	Ready     bool                 `json:"ready"`
}

// SpellView wraps an in-flight or just-completed spell resolution with a
// viewer-relative caster flag.
type SpellView struct {
	*game.SpellResolution
	CastByYou bool `json:"cast_by_you"`
}

// MatchView is the full player-relative snapshot returned by status,
// matchmaking and every mutating call that echoes state back.
type MatchView struct {
	ID         string     `json:"id"`
	TurnNumber int        `json:"turn_number"`
	Upkeep     int        `json:"upkeep"`
	Phase      game.Phase `json:"phase"`

	You      SideView `json:"you"`
	Opponent SideView `json:"opponent"`

	YourAttacks     []*game.Attack `json:"your_attacks"`
	OpponentAttacks []*game.Attack `json:"opponent_attacks"`

	CommitRolls       map[string]game.CommitRollEntry  `json:"commit_rolls,omitempty"`
	CommitOrder       []string                         `json:"commit_order,omitempty"`
	CommitExecutions  map[string]*game.CommitExecution `json:"commit_executions,omitempty"`
	CommitAllRolled   bool                             `json:"commit_all_rolled"`
	YouCompleted      bool                             `json:"you_completed"`
	OpponentCompleted bool                             `json:"opponent_completed"`
	YouAnimated       bool                             `json:"you_animated"`
	OpponentAnimated  bool                             `json:"opponent_animated"`

	ActiveSpell *SpellView           `json:"active_spell,omitempty"`
	LastDrawn   []*game.CardInstance `json:"last_drawn,omitempty"`

	Events []game.MatchEvent `json:"events"`
}

// MatchStatus returns the viewer-relative snapshot of a match.
func (s *Service) MatchStatus(matchID, playerID string) (*MatchView, error) {
	return s.viewFor(matchID, playerID)
}

// MatchStatusForPlayer resolves the viewer's current match and returns
// its snapshot.
func (s *Service) MatchStatusForPlayer(playerID string) (*MatchView, error) {
	if playerID == "" {
		return nil, ErrPlayerIDRequired
	}
	id, ok := s.matches.MatchIDForPlayer(playerID)
	if !ok {
		return nil, ErrMatchNotFound
	}
	return s.viewFor(id, playerID)
}

func (s *Service) viewFor(matchID, playerID string) (*MatchView, error) {
	var view *MatchView
	err := s.withMatch(matchID, playerID, func(m *game.Match) error {
		view = buildView(m, playerID)
		return nil
	})
	return view, err
}

// buildView assembles the player-relative snapshot. Callers must hold
// the match lock.
func buildView(m *game.Match, playerID string) *MatchView {
	oppID := m.OpponentOf(playerID)
	you := m.StateFor(playerID)
	opp := m.StateFor(oppID)

	v := &MatchView{
		ID:         m.ID,
		TurnNumber: m.TurnNumber,
		Upkeep:     m.Upkeep,
		Phase:      m.Phase,
		You: SideView{
			PlayerID:  playerID,
			Hand:      you.Hand,
			HandCount: len(you.Hand),
			DeckCount: len(you.Deck),
			Board:     you.Board,
			Discard:   you.Discard,
			Ready:     m.ReadyPlayers[playerID],
		},
		Opponent: SideView{
			PlayerID:  oppID,
			HandCount: len(opp.Hand),
			DeckCount: len(opp.Deck),
			Board:     opp.Board,
			Discard:   opp.Discard,
			Ready:     m.ReadyPlayers[oppID],
		},
		CommitAllRolled:   m.CommitAllRolledAt != nil,
		YouCompleted:      m.CommitCompleted[playerID],
		OpponentCompleted: m.CommitCompleted[oppID],
		YouAnimated:       m.CommitAnimationCompleted[playerID],
		OpponentAnimated:  m.CommitAnimationCompleted[oppID],
		LastDrawn:         m.LastDrawnCards[playerID],
		Events:            m.Events,
	}

	// During Decision only the viewer's own declarations are shown;
	// during Commit the frozen attacks of both sides are public.
	switch m.Phase {
	case game.PhaseDecision:
		v.YourAttacks = m.DeclaredAttacks[playerID]
		v.Opponent.Board = redactBoard(opp.Board)
	case game.PhaseCommit:
		v.YourAttacks = m.PendingCommitAttacks[playerID]
		v.OpponentAttacks = m.PendingCommitAttacks[oppID]
		v.CommitRolls = m.CommitRolls
		v.CommitOrder = m.CommitOrder
		v.CommitExecutions = m.CommitExecutions
	}

	if m.ActiveSpell != nil {
		v.ActiveSpell = &SpellView{SpellResolution: m.ActiveSpell, CastByYou: m.ActiveSpell.CasterID == playerID}
	}
	return v
}

// redactBoard copies board cards with their declared attack intent
// stripped, so a Decision-phase view does not reveal the opponent's
// plan through the card fields.
func redactBoard(board []*game.CardInstance) []*game.CardInstance {
	out := make([]*game.CardInstance, len(board))
	for i, c := range board {
		cp := *c
		cp.AttackCommitted = false
		cp.TargetSide = ""
		cp.TargetSlotIndex = 0
		cp.SelectedAbilityIndex = 0
		out[i] = &cp
	}
	return out
}
