package storage

import (
	"sync"

	"dueldice/internal/game"
)

// MatchStore holds live matches in memory. Each match carries its own
// mutex; WithMatch is the single-writer boundary through which every
// read and mutation of match state flows.
type MatchStore struct {
	mu      sync.RWMutex
	matches map[string]*matchEntry
	players map[string]string
}

type matchEntry struct {
	mu    sync.Mutex
	match *game.Match
}

// NewMatchStore creates an empty store.
func NewMatchStore() *MatchStore {
	return &MatchStore{
		matches: make(map[string]*matchEntry),
		players: make(map[string]string),
	}
}

// Create registers a match and indexes both players to it.
func (s *MatchStore) Create(m *game.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[m.ID] = &matchEntry{match: m}
	for _, pid := range m.Players {
		s.players[pid] = m.ID
	}
}

// MatchIDForPlayer returns the id of the match the player is in, if any.
func (s *MatchStore) MatchIDForPlayer(playerID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.players[playerID]
	return id, ok
}

// WithMatch runs fn while holding the match's lock. The returned bool
// reports whether the match exists; err is fn's result.
func (s *MatchStore) WithMatch(matchID string, fn func(*game.Match) error) (bool, error) {
	s.mu.RLock()
	entry, ok := s.matches[matchID]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return true, fn(entry.match)
}

// Remove deletes a match and the player index entries pointing at it.
func (s *MatchStore) Remove(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.matches[matchID]
	if !ok {
		return
	}
	for _, pid := range entry.match.Players {
		if s.players[pid] == matchID {
			delete(s.players, pid)
		}
	}
	delete(s.matches, matchID)
}

// Count returns the number of live matches.
func (s *MatchStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}
