package storage

import (
	"dueldice/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database, migrates the schema and seeds
// the catalog card names from the config. Card stats are never
// persisted; the config file stays the single source of truth and only
// the names live in the DB.
func OpenAndMigrate(dataSourceName string, cardsFromConfig []game.CatalogCard) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&game.CatalogCard{}, &game.PlayerProfile{})
	if err != nil {
		return nil, err
	}

	seedCatalog(db, cardsFromConfig)
	return db, nil
}

// seedCatalog inserts any configured card names missing from the DB.
// Rows for cards removed from the config are left in place so old match
// histories keep resolving.
func seedCatalog(db *gorm.DB, cardsFromConfig []game.CatalogCard) {
	for _, c := range cardsFromConfig {
		var count int64
		db.Model(&game.CatalogCard{}).Where("name = ?", c.Name).Count(&count)
		if count > 0 {
			continue
		}
		db.Create(&game.CatalogCard{Name: c.Name})
	}
}
