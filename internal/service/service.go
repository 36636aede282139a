package service

import (
	"math/rand"
	"sync"

	"dueldice/internal/game"
	"dueldice/internal/storage"
)

// CatalogProvider supplies the card catalog used to seed decks at match
// creation.
type CatalogProvider interface {
	GetCatalogCards() ([]game.CatalogCard, error)
}

// ProfileStore records per-player aggregate stats.
type ProfileStore interface {
	UpsertProfile(playerID string) error
}

// Options tune match creation.
type Options struct {
	DeckSize         int
	StartingHandSize int
}

// DefaultOptions are used when a field is zero.
var DefaultOptions = Options{DeckSize: 20, StartingHandSize: 4}

// Service owns the matchmaking queue and drives all match operations.
// Every mutation of a match happens under the store's per-match lock;
// the service-level mutex guards only the queue and the RNG.
type Service struct {
	matches  *storage.MatchStore
	catalog  CatalogProvider
	profiles ProfileStore
	opts     Options

	mu    sync.Mutex
	queue []string
	rng   *rand.Rand
}

// New creates a Service. The RNG drives deck selection and id
// generation; it is injected so tests can run reproducibly.
func New(matches *storage.MatchStore, catalog CatalogProvider, profiles ProfileStore, opts Options, rng *rand.Rand) *Service {
	if opts.DeckSize <= 0 {
		opts.DeckSize = DefaultOptions.DeckSize
	}
	if opts.StartingHandSize <= 0 {
		opts.StartingHandSize = DefaultOptions.StartingHandSize
	}
	return &Service{matches: matches, catalog: catalog, profiles: profiles, opts: opts, rng: rng}
}

const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// newID generates a short random identifier. Callers must hold s.mu.
func (s *Service) newID(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idCharset[s.rng.Intn(len(idCharset))]
	}
	return string(b)
}

// withPlayerMatch locates the match a player belongs to and runs fn
// under its lock.
func (s *Service) withPlayerMatch(playerID string, fn func(*game.Match) error) error {
	if playerID == "" {
		return ErrPlayerIDRequired
	}
	id, ok := s.matches.MatchIDForPlayer(playerID)
	if !ok {
		return ErrMatchNotFound
	}
	return s.withMatch(id, playerID, fn)
}

// withMatch runs fn under the match lock after verifying membership.
func (s *Service) withMatch(matchID, playerID string, fn func(*game.Match) error) error {
	if playerID == "" {
		return ErrPlayerIDRequired
	}
	found, err := s.matches.WithMatch(matchID, func(m *game.Match) error {
		if !m.HasPlayer(playerID) {
			return ErrPlayerNotFound
		}
		return fn(m)
	})
	if !found {
		return ErrMatchNotFound
	}
	return err
}
