package storage

import (
	"dueldice/internal/game"
)

// Repository is the persistence surface backing the service: the seeded
// card catalog and the per-player aggregate profiles.
type Repository interface {
	GetCatalogCards() ([]game.CatalogCard, error)
	GetCatalogCardByName(name string) (*game.CatalogCard, error)

	UpsertProfile(playerID string) error
	GetProfile(playerID string) (*game.PlayerProfile, error)
	GetTopPlayers(limit int) ([]game.PlayerProfile, error)
}
