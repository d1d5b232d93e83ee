package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wakqa-labs/wakqa-backend/internal/services"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// List handles GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notificationService.List(c.Request.Context(), sessionEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkRead handles PUT /notifications/read. Without an id the whole inbox is
// marked read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := sessionEmail(c)
	var err error
	if req.ID == "" {
		err = h.notificationService.MarkAllRead(c.Request.Context(), email)
	} else {
		err = h.notificationService.MarkRead(c.Request.Context(), email, req.ID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked read"})
}
