package storage

import (
	"strings"
	"time"

	"dueldice/internal/game"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
	// configByName maps lowercase card name -> config definition (stats).
	configByName map[string]game.CatalogCard
	// catalogGroup deduplicates concurrent catalog loads: matchmaking
	// bursts would otherwise each hit the DB for the same rows.
	catalogGroup singleflight.Group
}

func NewSQLiteRepository(db *gorm.DB, configCards []game.CatalogCard) Repository {
	m := make(map[string]game.CatalogCard, len(configCards))
	for _, c := range configCards {
		m[strings.ToLower(c.Name)] = c
	}
	return &sqliteRepository{db: db, configByName: m}
}

func (r *sqliteRepository) GetCatalogCards() ([]game.CatalogCard, error) {
	v, err, _ := r.catalogGroup.Do("catalog", func() (interface{}, error) {
		var cards []game.CatalogCard
		if err := r.db.Find(&cards).Error; err != nil {
			return nil, err
		}
		for i := range cards {
			r.applyConfig(&cards[i])
		}
		return cards, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]game.CatalogCard), nil
}

func (r *sqliteRepository) GetCatalogCardByName(name string) (*game.CatalogCard, error) {
	var c game.CatalogCard
	if err := r.db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&c).Error; err != nil {
		return nil, err
	}
	r.applyConfig(&c)
	return &c, nil
}

// applyConfig overrides a DB row's design fields from the config
// definition (config is source of truth).
func (r *sqliteRepository) applyConfig(c *game.CatalogCard) {
	conf, ok := r.configByName[strings.ToLower(c.Name)]
	if !ok {
		return
	}
	c.CardType = conf.CardType
	c.BaseHealth = conf.BaseHealth
	c.DamageDieSides = conf.DamageDieSides
	c.SpeedDieSides = conf.SpeedDieSides
	c.DefenseDieSides = conf.DefenseDieSides
	c.Ability1 = conf.Ability1
	c.Ability2 = conf.Ability2
}

func (r *sqliteRepository) UpsertProfile(playerID string) error {
	var p game.PlayerProfile
	if err := r.db.Where("player_id = ?", playerID).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			p = game.PlayerProfile{PlayerID: playerID}
		} else {
			return err
		}
	}
	p.MatchesPlayed++
	p.LastSeenAt = time.Now()
	return r.db.Save(&p).Error
}

func (r *sqliteRepository) GetProfile(playerID string) (*game.PlayerProfile, error) {
	var p game.PlayerProfile
	if err := r.db.Where("player_id = ?", playerID).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &game.PlayerProfile{PlayerID: playerID}, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetTopPlayers returns up to limit profiles ordered by matches played.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.PlayerProfile, error) {
	if limit <= 0 {
		limit = 10
	}
	var profiles []game.PlayerProfile
	if err := r.db.Model(&game.PlayerProfile{}).
		Order("matches_played DESC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
