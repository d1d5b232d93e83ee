package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/services"
)

// AnswerHandler handles answer-related HTTP requests
type AnswerHandler struct {
	answerService services.AnswerService
}

// NewAnswerHandler creates a new AnswerHandler
func NewAnswerHandler(answerService services.AnswerService) *AnswerHandler {
	return &AnswerHandler{
		answerService: answerService,
	}
}

// List handles GET /answers?questionId=
func (h *AnswerHandler) List(c *gin.Context) {
	questionID := c.Query("questionId")
	if questionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "questionId is required"})
		return
	}

	answers, err := h.answerService.ListByQuestion(c.Request.Context(), questionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answers)
}

// Create handles POST /answers
func (h *AnswerHandler) Create(c *gin.Context) {
	var req models.CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.answerService.Create(c.Request.Context(), sessionEmail(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, answer)
}

// Accept handles PUT /answers/accept
func (h *AnswerHandler) Accept(c *gin.Context) {
	var req models.AcceptAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.answerService.Accept(c.Request.Context(), sessionEmail(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}
