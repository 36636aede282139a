package api

import (
	"net/http"

	"dueldice/internal/constants"
	"dueldice/internal/service"
	"dueldice/internal/storage"

	"github.com/gin-gonic/gin"
)

// MatchHandler groups all match-related HTTP handlers.
type MatchHandler struct {
	svc  *service.Service
	repo storage.Repository
}

// NewMatchHandler creates a new MatchHandler over the given service and
// repository.
func NewMatchHandler(svc *service.Service, repo storage.Repository) *MatchHandler {
	return &MatchHandler{svc: svc, repo: repo}
}

// FindMatch enqueues the caller or returns the match they were paired
// into.
func (h *MatchHandler) FindMatch(c *gin.Context) {
	pid := playerID(c)
	if pid == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerIDRequired})
		return
	}
	status, err := h.svc.FindMatch(pid)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// ResetMatchmaking removes the caller from the queue and abandons their
// current match, if any.
func (h *MatchHandler) ResetMatchmaking(c *gin.Context) {
	pid := playerID(c)
	if pid == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerIDRequired})
		return
	}
	if err := h.svc.Reset(pid); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "reset"})
}

// GetMatchmakingStatus reports whether the caller is idle, queued or in
// a match, without enqueueing them.
func (h *MatchHandler) GetMatchmakingStatus(c *gin.Context) {
	pid := playerID(c)
	if pid == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerIDRequired})
		return
	}
	status, err := h.svc.MatchmakingStatus(pid)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, status)
}

// GetMatchStatus returns the caller-relative snapshot of the match.
func (h *MatchHandler) GetMatchStatus(c *gin.Context) {
	view, err := h.svc.MatchStatus(c.Param("matchID"), playerID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, view)
}
