package main

import (
	"math/rand"
	"os"
	"time"

	"dueldice/internal/api"
	"dueldice/internal/config"
	"dueldice/internal/constants"
	"dueldice/internal/logging"
	"dueldice/internal/service"
	"dueldice/internal/storage"
	"dueldice/internal/version"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load the card configuration file (required). Path may be provided
	// via DUELDICE_CONFIG or defaults to ./dueldice_config.json in the
	// current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./dueldice_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid dueldice configuration", err, logging.Fields{"config_path": configPath, "hint": "create a dueldice_config.json with a 'card_list' array of card objects (name, card_type, base_health, die sides, ability1/ability2) and optional keys: server.address, deck_size, starting_hand_size"})
	}

	// DB path: DUELDICE_DB overrides the config value; default to a
	// data/ directory for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		dbPath = "./data/dueldice.db"
	}
	db, err := storage.OpenAndMigrate(dbPath, cfg.Cards)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewSQLiteRepository(db, cfg.Cards)
	matches := storage.NewMatchStore()
	opts := service.Options{DeckSize: cfg.DeckSize, StartingHandSize: cfg.StartingHandSize}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	svc := service.New(matches, repo, repo, opts, rng)
	handler := api.NewMatchHandler(svc, repo)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteCards, handler.ListCards)
		apiRoutes.GET(constants.RouteCardByName, handler.GetCard)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RoutePlayerStats, handler.GetPlayerStats)

		apiRoutes.POST(constants.RouteMatchmakingFind, handler.FindMatch)
		apiRoutes.POST(constants.RouteMatchmakingReset, handler.ResetMatchmaking)
		apiRoutes.GET(constants.RouteMatchmakingStatus, handler.GetMatchmakingStatus)

		apiRoutes.GET(constants.RouteMatchStatus, handler.GetMatchStatus)
		apiRoutes.POST(constants.RouteMatchReady, handler.ReadyUp)
		apiRoutes.POST(constants.RouteMatchSync, handler.SyncState)

		apiRoutes.POST(constants.RouteCommitRolls, handler.SubmitCommitRoll)
		apiRoutes.POST(constants.RouteCommitComplete, handler.CompleteCommitRolls)
		apiRoutes.POST(constants.RouteCommitAnimations, handler.CompleteCommitAnimations)

		apiRoutes.POST(constants.RouteSpellStart, handler.StartSpell)
		apiRoutes.POST(constants.RouteSpellRoll, handler.SubmitSpellRoll)
		apiRoutes.POST(constants.RouteSpellComplete, handler.CompleteSpell)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr, "version": version.String()})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
