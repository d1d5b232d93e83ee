package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/services"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	questionService services.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler
func NewQuestionHandler(questionService services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

// List handles GET /questions
func (h *QuestionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	filter := models.QuestionFilter{
		Tag:    c.Query("tag"),
		Status: c.Query("status"),
		Author: c.Query("author"),
	}

	questions, err := h.questionService.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// Get handles GET /questions/:questionId
func (h *QuestionHandler) Get(c *gin.Context) {
	question, err := h.questionService.GetByQuestionID(c.Request.Context(), c.Param("questionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// Create handles POST /questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), sessionEmail(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}
