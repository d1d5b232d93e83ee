package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/services"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService services.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
	}
}

// GetOrCreate handles GET /receipt?txHash=&questionId=&answerId=
func (h *ReceiptHandler) GetOrCreate(c *gin.Context) {
	receipt, err := h.receiptService.GetOrCreate(
		c.Request.Context(),
		c.Query("txHash"),
		c.Query("questionId"),
		c.Query("answerId"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// Create handles POST /receipts
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req models.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipt, err := h.receiptService.GetOrCreate(c.Request.Context(), req.TxHash, req.QuestionID, req.AnswerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

// List handles GET /receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	receipts, err := h.receiptService.ListForUser(c.Request.Context(), sessionEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipts)
}
