package api

import (
	"net/http"

	"dueldice/internal/constants"
	"dueldice/internal/logging"
	"dueldice/internal/service"

	"github.com/gin-gonic/gin"
)

// playerID extracts the caller's identity from the X-Player-Id header,
// falling back to the player_id query parameter.
func playerID(c *gin.Context) string {
	if v := c.GetHeader(constants.HeaderPlayerID); v != "" {
		return v
	}
	return c.Query("player_id")
}

// writeServiceError maps a service error onto an HTTP status: missing
// entities are 404, rule conflicts are 409 and everything else is a 400
// validation failure.
func writeServiceError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case service.IsNotFound(err):
		status = http.StatusNotFound
	case service.IsConflict(err):
		status = http.StatusConflict
	}
	logging.Debug("request rejected", logging.Fields{constants.LogFieldPath: c.FullPath(), constants.LogFieldStatus: status, "error": err.Error()})
	c.JSON(status, gin.H{constants.JSONKeyError: err.Error()})
}
