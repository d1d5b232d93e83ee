package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wakqa-labs/wakqa-backend/internal/config"
	"github.com/wakqa-labs/wakqa-backend/internal/utils"
)

// SessionCookieName is the HTTP-only cookie carrying the session JWT.
const SessionCookieName = "token"

// ContextUserEmail is the gin context key for the authenticated email.
const ContextUserEmail = "userEmail"

// SessionEmail extracts and validates the session token from the cookie,
// falling back to an Authorization bearer header for non-browser clients.
func SessionEmail(c *gin.Context, cfg *config.Config) (string, error) {
	tokenString, err := c.Cookie(SessionCookieName)
	if err != nil || tokenString == "" {
		const bearerSchema = "Bearer "
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerSchema) {
			return "", errors.New("no session token")
		}
		tokenString = authHeader[len(bearerSchema):]
	}

	return utils.ValidateSessionToken(tokenString, cfg)
}

// SessionAuthMiddleware rejects requests without a valid session and stores
// the authenticated email in the context for downstream handlers.
func SessionAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := SessionEmail(c, cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		c.Set(ContextUserEmail, email)
		c.Next()
	}
}
