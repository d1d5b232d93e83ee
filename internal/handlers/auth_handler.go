package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wakqa-labs/wakqa-backend/internal/config"
	"github.com/wakqa-labs/wakqa-backend/internal/middleware"
	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/services"
)

// AuthHandler handles account and session HTTP requests
type AuthHandler struct {
	authService services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, user)
}

// Signin handles POST /auth/signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var req models.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Signin(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, user)
}

// Signout handles POST /auth/signout
func (h *AuthHandler) Signout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Session handles GET /auth/session. It never returns 401; an absent or
// invalid session yields {authenticated:false} so the UI can render logged-out
// state without error handling.
func (h *AuthHandler) Session(c *gin.Context) {
	email, err := middleware.SessionEmail(c, h.cfg)
	if err != nil {
		c.JSON(http.StatusOK, models.SessionResponse{Authenticated: false})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusOK, models.SessionResponse{Authenticated: false})
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{Authenticated: true, User: user})
}

// GetUser handles GET /auth/user
func (h *AuthHandler) GetUser(c *gin.Context) {
	user, err := h.authService.GetUser(c.Request.Context(), sessionEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser handles PUT /auth/user
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), sessionEmail(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateTokenBalance handles PUT /auth/token-balance
func (h *AuthHandler) UpdateTokenBalance(c *gin.Context) {
	var req models.BalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.AdjustBalance(c.Request.Context(), sessionEmail(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteAccount handles DELETE /auth/account
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	if err := h.authService.DeleteAccount(c.Request.Context(), sessionEmail(c)); err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, h.cfg.JWT.ExpiresIn, "/", "", false, true)
}
