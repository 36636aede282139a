package service

import (
	"fmt"
	"time"

	"dueldice/internal/constants"
	"dueldice/internal/game"
	"dueldice/internal/logging"
)

// Matchmaking statuses returned by FindMatch and MatchmakingStatus.
const (
	StatusQueued  = "queued"
	StatusMatched = "matched"
	StatusIdle    = "idle"
)

// MatchmakingStatus is the result of a FindMatch call: either the player
// is waiting in the queue, or a match exists and its player-scoped view
// is attached.
type MatchmakingStatus struct {
	Status string     `json:"status"`
	Match  *MatchView `json:"match,omitempty"`
}

var cardColors = []string{"crimson", "cobalt", "emerald", "amber", "violet", "slate"}

// FindMatch puts the player in the queue or pairs them with a waiting
// opponent, seeding both decks from the catalog. Calling it while
// already in a match returns the current match view.
func (s *Service) FindMatch(playerID string) (*MatchmakingStatus, error) {
	if playerID == "" {
		return nil, ErrPlayerIDRequired
	}
	if id, ok := s.matches.MatchIDForPlayer(playerID); ok {
		view, err := s.viewFor(id, playerID)
		if err != nil {
			return nil, err
		}
		return &MatchmakingStatus{Status: StatusMatched, Match: view}, nil
	}

	s.mu.Lock()
	var opponent string
	for i, waiting := range s.queue {
		if waiting != playerID {
			opponent = waiting
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			break
		}
	}
	if opponent == "" {
		queued := false
		for _, waiting := range s.queue {
			if waiting == playerID {
				queued = true
				break
			}
		}
		if !queued {
			s.queue = append(s.queue, playerID)
		}
		s.mu.Unlock()
		return &MatchmakingStatus{Status: StatusQueued}, nil
	}
	s.mu.Unlock()

	m, err := s.createMatch(opponent, playerID)
	if err != nil {
		// Put the opponent back so they are not silently dropped.
		s.mu.Lock()
		s.queue = append(s.queue, opponent)
		s.mu.Unlock()
		return nil, err
	}
	view, err := s.viewFor(m.ID, playerID)
	if err != nil {
		return nil, err
	}
	return &MatchmakingStatus{Status: StatusMatched, Match: view}, nil
}

// MatchmakingStatus is the read-only counterpart of FindMatch: it
// reports the player's current standing without enqueueing them.
func (s *Service) MatchmakingStatus(playerID string) (*MatchmakingStatus, error) {
	view, err := s.MatchStatusForPlayer(playerID)
	switch {
	case err == nil:
		return &MatchmakingStatus{Status: StatusMatched, Match: view}, nil
	case err != ErrMatchNotFound:
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, waiting := range s.queue {
		if waiting == playerID {
			return &MatchmakingStatus{Status: StatusQueued}, nil
		}
	}
	return &MatchmakingStatus{Status: StatusIdle}, nil
}

// Reset removes the player from the queue and tears down their match,
// releasing both participants.
func (s *Service) Reset(playerID string) error {
	if playerID == "" {
		return ErrPlayerIDRequired
	}
	s.mu.Lock()
	for i, waiting := range s.queue {
		if waiting == playerID {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	if id, ok := s.matches.MatchIDForPlayer(playerID); ok {
		s.matches.Remove(id)
		logging.Info("match abandoned", logging.Fields{constants.LogFieldMatchID: id, constants.LogFieldPlayerID: playerID})
	}
	return nil
}

// createMatch builds a fresh match for two players, dealing each a deck
// drawn uniformly at random from the catalog plus a starting hand.
func (s *Service) createMatch(playerA, playerB string) (*game.Match, error) {
	cards, err := s.catalog.GetCatalogCards()
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	s.mu.Lock()
	matchID := s.newID(8)
	m := &game.Match{
		ID:             matchID,
		Players:        [2]string{playerA, playerB},
		TurnNumber:     1,
		Upkeep:         1,
		Phase:          game.PhaseDecision,
		PhaseStartedAt: time.Now(),
		CreatedAt:      time.Now(),
		ReadyPlayers:   make(map[string]bool, 2),
		PlayerStates:   make(map[string]*game.PlayerState, 2),
		DeclaredAttacks: make(map[string][]*game.Attack, 2),
		PendingCommitAttacks: make(map[string][]*game.Attack, 2),
		CommitRolls:          make(map[string]game.CommitRollEntry),
		CommitExecutions:     make(map[string]*game.CommitExecution),
		CommitCompleted:      make(map[string]bool, 2),
		CommitAnimationCompleted: make(map[string]bool, 2),
		LastDrawnCards:           make(map[string][]*game.CardInstance, 2),
	}
	for _, pid := range m.Players {
		ps := &game.PlayerState{}
		for i := 0; i < s.opts.DeckSize; i++ {
			ps.Deck = append(ps.Deck, s.dealCard(matchID, cards))
		}
		hand := s.opts.StartingHandSize
		if hand > game.MaxHandSize {
			hand = game.MaxHandSize
		}
		if hand > len(ps.Deck) {
			hand = len(ps.Deck)
		}
		ps.Hand, ps.Deck = ps.Deck[:hand], ps.Deck[hand:]
		m.PlayerStates[pid] = ps
	}
	s.mu.Unlock()

	m.AddEvent("match created")
	s.matches.Create(m)
	logging.Info("matchmaking paired players", logging.Fields{constants.LogFieldMatchID: m.ID, constants.LogFieldPlayerID: playerA, constants.LogFieldOpponentID: playerB})
	if s.profiles != nil {
		for _, pid := range m.Players {
			if err := s.profiles.UpsertProfile(pid); err != nil {
				logging.Warn("matchmaking failed to record player profile", logging.Fields{constants.LogFieldMatchID: m.ID, constants.LogFieldPlayerID: pid, "error": err.Error()})
			}
		}
	}
	return m, nil
}

// dealCard instantiates one uniformly drawn catalog card. Callers must
// hold s.mu.
func (s *Service) dealCard(matchID string, catalog []game.CatalogCard) *game.CardInstance {
	def := catalog[s.rng.Intn(len(catalog))]
	return &game.CardInstance{
		ID:      matchID + "-" + s.newID(6),
		Color:   cardColors[s.rng.Intn(len(cardColors))],
		Catalog: def,
		Health:  def.BaseHealth,
	}
}
