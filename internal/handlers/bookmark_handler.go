package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wakqa-labs/wakqa-backend/internal/services"
)

// BookmarkHandler handles bookmark-related HTTP requests
type BookmarkHandler struct {
	bookmarkService services.BookmarkService
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(bookmarkService services.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkService: bookmarkService,
	}
}

// List handles GET /bookmarks
func (h *BookmarkHandler) List(c *gin.Context) {
	bookmarks, err := h.bookmarkService.List(c.Request.Context(), sessionEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookmarks)
}

// Create handles POST /bookmarks
func (h *BookmarkHandler) Create(c *gin.Context) {
	var req struct {
		QuestionID string `json:"questionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.bookmarkService.Add(c.Request.Context(), sessionEmail(c), req.QuestionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bookmarked"})
}

// Delete handles DELETE /bookmarks/:questionId
func (h *BookmarkHandler) Delete(c *gin.Context) {
	if err := h.bookmarkService.Remove(c.Request.Context(), sessionEmail(c), c.Param("questionId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bookmark removed"})
}
