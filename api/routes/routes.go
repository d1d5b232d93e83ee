package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/wakqa-labs/wakqa-backend/internal/config"
	"github.com/wakqa-labs/wakqa-backend/internal/handlers"
	"github.com/wakqa-labs/wakqa-backend/internal/middleware"
)

// Handlers collects the handlers wired by the entrypoint
type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Question     *handlers.QuestionHandler
	Answer       *handlers.AnswerHandler
	Bookmark     *handlers.BookmarkHandler
	Notification *handlers.NotificationHandler
	Receipt      *handlers.ReceiptHandler
	Ranking      *handlers.RankingHandler
	Transaction  *handlers.TransactionHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/signup", h.Auth.Signup)
			auth.POST("/signin", h.Auth.Signin)
			auth.POST("/signout", h.Auth.Signout)
			auth.GET("/session", h.Auth.Session)
		}

		// Question reads
		public.GET("/questions", h.Question.List)
		public.GET("/questions/:questionId", h.Question.Get)

		// Answer reads
		public.GET("/answers", h.Answer.List)

		// Leaderboards
		public.GET("/rankings/:period", h.Ranking.Get)

		// Public profiles
		public.GET("/users/:address", h.User.GetByWallet)

		// Receipt fetch-or-create by transaction hash
		public.GET("/receipt", h.Receipt.GetOrCreate)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.SessionAuthMiddleware(cfg))
	{
		// Account routes
		auth := protected.Group("/auth")
		{
			auth.GET("/user", h.Auth.GetUser)
			auth.PUT("/user", h.Auth.UpdateUser)
			auth.PUT("/token-balance", h.Auth.UpdateTokenBalance)
			auth.DELETE("/account", h.Auth.DeleteAccount)
		}

		// Question writes
		protected.POST("/questions", h.Question.Create)

		// Answer writes
		protected.POST("/answers", h.Answer.Create)
		protected.PUT("/answers/accept", h.Answer.Accept)

		// Bookmark routes
		bookmarks := protected.Group("/bookmarks")
		{
			bookmarks.GET("", h.Bookmark.List)
			bookmarks.POST("", h.Bookmark.Create)
			bookmarks.DELETE("/:questionId", h.Bookmark.Delete)
		}

		// Notification routes
		notifications := protected.Group("/notifications")
		{
			notifications.GET("", h.Notification.List)
			notifications.PUT("/read", h.Notification.MarkRead)
		}

		// Receipt routes
		receipts := protected.Group("/receipts")
		{
			receipts.GET("", h.Receipt.List)
			receipts.POST("", h.Receipt.Create)
		}

		// Ledger routes
		transactions := protected.Group("/transactions")
		{
			transactions.GET("", h.Transaction.List)
			transactions.POST("", h.Transaction.Create)
		}
	}

	return router
}
