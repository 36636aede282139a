package api

import (
	"net/http"

	"dueldice/internal/constants"
	"dueldice/internal/game"
	"dueldice/internal/service"

	"github.com/gin-gonic/gin"
)

// StartSpell begins a spell resolution for a spell card in the caller's
// hand.
func (h *MatchHandler) StartSpell(c *gin.Context) {
	var req service.SpellStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	spell, err := h.svc.StartSpellResolution(c.Param("matchID"), playerID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, spell)
}

// SubmitSpellRoll records the caster's roll and returns the previewed
// resolution figures.
func (h *MatchHandler) SubmitSpellRoll(c *gin.Context) {
	var roll game.RollPayload
	if err := c.ShouldBindJSON(&roll); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	spell, err := h.svc.SubmitSpellRoll(c.Param("matchID"), playerID(c), roll)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, spell)
}

// CompleteSpell applies the spell's effect and closes the resolution.
func (h *MatchHandler) CompleteSpell(c *gin.Context) {
	spell, err := h.svc.CompleteSpellResolution(c.Param("matchID"), playerID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, spell)
}
