package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-tracker/backend/internal/service"
)

// isConfigError reports a missing model credential or endpoint
func isConfigError(err error) bool {
	return errors.Is(err, service.ErrMissingAPIKey) || errors.Is(err, service.ErrMissingEndpoint)
}

// respondUpstreamError maps an error from an AI-backed flow onto a status.
// Configuration errors are 500 with their own message; anything else is
// attached for the error middleware to log and reported as a 502 with the
// generic retry message.
func respondUpstreamError(c *gin.Context, component string, err error, message string) {
	if isConfigError(err) {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	_ = c.Error(fmt.Errorf("%s: %w", component, err))
	c.JSON(http.StatusBadGateway, ErrorResponse{Error: message})
}
