package api

import (
	"net/http"

	"dueldice/internal/constants"
	"dueldice/internal/game"

	"github.com/gin-gonic/gin"
)

// CommitRollPayload is one submitted dice roll for a pending attack.
type CommitRollPayload struct {
	AttackID string           `json:"attack_id"`
	RollType game.RollType    `json:"roll_type"`
	Sides    int              `json:"sides"`
	Roll     game.RollPayload `json:"roll"`
}

// SubmitCommitRoll records one stat roll for one of the caller's pending
// attacks.
func (h *MatchHandler) SubmitCommitRoll(c *gin.Context) {
	var req CommitRollPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	matchID := c.Param("matchID")
	pid := playerID(c)
	if err := h.svc.SubmitCommitRoll(matchID, pid, req.AttackID, req.RollType, req.Sides, req.Roll); err != nil {
		writeServiceError(c, err)
		return
	}
	h.echoView(c, matchID, pid)
}

// CompleteCommitRolls marks the caller done rolling. When both players
// are done the full execution pass runs and the ordered log becomes
// available.
func (h *MatchHandler) CompleteCommitRolls(c *gin.Context) {
	matchID := c.Param("matchID")
	pid := playerID(c)
	if err := h.svc.CompleteCommitRolls(matchID, pid); err != nil {
		writeServiceError(c, err)
		return
	}
	h.echoView(c, matchID, pid)
}

// CompleteCommitAnimations marks the caller done replaying the execution
// log. When both players are done the match advances to the next
// Decision phase.
func (h *MatchHandler) CompleteCommitAnimations(c *gin.Context) {
	matchID := c.Param("matchID")
	pid := playerID(c)
	if err := h.svc.CompleteCommitAnimations(matchID, pid); err != nil {
		writeServiceError(c, err)
		return
	}
	h.echoView(c, matchID, pid)
}
