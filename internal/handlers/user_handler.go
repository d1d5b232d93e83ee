package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wakqa-labs/wakqa-backend/internal/services"
)

// UserHandler handles public profile HTTP requests
type UserHandler struct {
	authService services.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// GetByWallet handles GET /users/:address
func (h *UserHandler) GetByWallet(c *gin.Context) {
	user, err := h.authService.GetUserByWallet(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
