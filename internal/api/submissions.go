package api

import (
	"net/http"

	"dueldice/internal/constants"
	"dueldice/internal/service"

	"github.com/gin-gonic/gin"
)

// ReadyUp applies the caller's final Decision-phase layout and marks them
// ready. When both players are ready the match enters Commit.
func (h *MatchHandler) ReadyUp(c *gin.Context) {
	var sub service.StateSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	matchID := c.Param("matchID")
	pid := playerID(c)
	if err := h.svc.ReadyUp(matchID, pid, sub); err != nil {
		writeServiceError(c, err)
		return
	}
	h.echoView(c, matchID, pid)
}

// SyncState saves an intermediate Decision-phase layout without marking
// the caller ready.
func (h *MatchHandler) SyncState(c *gin.Context) {
	var sub service.StateSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	matchID := c.Param("matchID")
	pid := playerID(c)
	if err := h.svc.SyncState(matchID, pid, sub); err != nil {
		writeServiceError(c, err)
		return
	}
	h.echoView(c, matchID, pid)
}

// echoView responds with the caller-relative snapshot after a mutation.
func (h *MatchHandler) echoView(c *gin.Context, matchID, pid string) {
	view, err := h.svc.MatchStatus(matchID, pid)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
