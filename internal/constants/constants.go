package constants

// Centralized constants for headers, env keys and routes.
const (
	// Environment variable keys
	EnvConfigPath = "DUELDICE_CONFIG"
	EnvDBPath     = "DUELDICE_DB"

	// HTTP headers
	HeaderPlayerID = "X-Player-Id"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Routes used by the backend router
const (
	RouteAPIPrefix = "/api"

	RouteMatchmakingFind   = "/matchmaking/find"
	RouteMatchmakingReset  = "/matchmaking/reset"
	RouteMatchmakingStatus = "/matchmaking/status"

	RouteMatchStatus = "/matches/:matchID/status"
	RouteMatchReady  = "/matches/:matchID/ready"
	RouteMatchSync   = "/matches/:matchID/sync"

	RouteCommitRolls      = "/matches/:matchID/commit/rolls"
	RouteCommitComplete   = "/matches/:matchID/commit/complete"
	RouteCommitAnimations = "/matches/:matchID/commit/animations"

	RouteSpellStart    = "/matches/:matchID/spell/start"
	RouteSpellRoll     = "/matches/:matchID/spell/roll"
	RouteSpellComplete = "/matches/:matchID/spell/complete"

	RouteCards      = "/cards"
	RouteCardByName = "/cards/:name"

	RoutePlayerStats = "/player-stats"
	RouteLeaderboard = "/leaderboard"
	RouteVersion     = "/version"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyStatus  = "status"
	JSONKeyVersion = "version"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest    = "Invalid request"
	ErrPlayerIDRequired  = "player id is required"
	ErrCardNotFound      = "Card not found"
	ErrFailedFetchCards  = "Failed to fetch cards"
	ErrFailedFetchStats  = "Failed to fetch stats"
	ErrFailedLeaderboard = "Failed to fetch leaderboard"
)

// Logging field names
const (
	LogFieldMatchID    = "match_id"
	LogFieldPlayerID   = "player_id"
	LogFieldOpponentID = "opponent_id"
	LogFieldPhase    = "phase"
	LogFieldTurn     = "turn"
	LogFieldAttackID = "attack_id"
	LogFieldSpellID  = "spell_id"
	LogFieldAddr     = "addr"
	LogFieldPath     = "path"
	LogFieldStatus   = "status"
)
