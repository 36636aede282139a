package api

import (
	"net/http"
	"strconv"

	"dueldice/internal/constants"
	"dueldice/internal/logging"

	"github.com/gin-gonic/gin"
)

// GetPlayerStats returns the persisted profile for the caller.
func (h *MatchHandler) GetPlayerStats(c *gin.Context) {
	pid := playerID(c)
	if pid == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerIDRequired})
		return
	}
	profile, err := h.repo.GetProfile(pid)
	if err != nil {
		logging.Error("player-stats failed to load profile", err, logging.Fields{constants.LogFieldPlayerID: pid})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListLeaderboard returns the top profiles ordered by matches played.
func (h *MatchHandler) ListLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	profiles, err := h.repo.GetTopPlayers(limit)
	if err != nil {
		logging.Error("leaderboard query failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedLeaderboard})
		return
	}
	c.JSON(http.StatusOK, profiles)
}
