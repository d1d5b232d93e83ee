package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wakqa-labs/wakqa-backend/internal/services"
)

// RankingHandler handles leaderboard HTTP requests
type RankingHandler struct {
	rankingService services.RankingService
}

// NewRankingHandler creates a new RankingHandler
func NewRankingHandler(rankingService services.RankingService) *RankingHandler {
	return &RankingHandler{
		rankingService: rankingService,
	}
}

// Get handles GET /rankings/:period
func (h *RankingHandler) Get(c *gin.Context) {
	entries, err := h.rankingService.Leaderboard(c.Request.Context(), c.Param("period"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
