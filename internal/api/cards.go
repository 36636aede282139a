package api

import (
	"errors"
	"net/http"

	"dueldice/internal/constants"
	"dueldice/internal/logging"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListCards returns the playable card catalog, config overrides applied.
func (h *MatchHandler) ListCards(c *gin.Context) {
	cards, err := h.repo.GetCatalogCards()
	if err != nil {
		logging.Error("catalog listing failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCards})
		return
	}
	c.JSON(http.StatusOK, cards)
}

// GetCard returns one catalog card by name, case-insensitively.
func (h *MatchHandler) GetCard(c *gin.Context) {
	card, err := h.repo.GetCatalogCardByName(c.Param("name"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrCardNotFound})
			return
		}
		logging.Error("catalog lookup failed", err, logging.Fields{"name": c.Param("name")})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCards})
		return
	}
	c.JSON(http.StatusOK, card)
}
