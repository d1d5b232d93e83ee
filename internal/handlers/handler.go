package handlers

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"

	"github.com/wakqa-labs/wakqa-backend/internal/apperrors"
	"github.com/wakqa-labs/wakqa-backend/internal/middleware"
)

// respondError converts a service error to a JSON error response using the
// typed error kind. Cancellations are logged at debug and get no body; the
// client already went away.
func respondError(c *gin.Context, err error) {
	if apperrors.IsCancelled(err) {
		slog.Debug("Request cancelled by client", "path", c.Request.URL.Path)
		c.AbortWithStatus(apperrors.HTTPStatus(err))
		return
	}
	c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
}

// sessionEmail reads the authenticated email set by the auth middleware.
func sessionEmail(c *gin.Context) string {
	return c.GetString(middleware.ContextUserEmail)
}
