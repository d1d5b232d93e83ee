package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"

	"github.com/wakqa-labs/wakqa-backend/api/routes"
	"github.com/wakqa-labs/wakqa-backend/internal/config"
	"github.com/wakqa-labs/wakqa-backend/internal/handlers"
	"github.com/wakqa-labs/wakqa-backend/internal/repositories"
	"github.com/wakqa-labs/wakqa-backend/internal/services"
	"github.com/wakqa-labs/wakqa-backend/pkg/chain"
	"github.com/wakqa-labs/wakqa-backend/pkg/mongodb"
	"github.com/wakqa-labs/wakqa-backend/pkg/signer"

	mongorepo "github.com/wakqa-labs/wakqa-backend/internal/repositories/mongodb"
)

func main() {
	// .env is optional, real deployments set env vars directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	// Connect to MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	if err := mongodb.EnsureIndexes(indexCtx, db); err != nil {
		cancelIndex()
		slog.Error("Failed to ensure indexes", "error", err)
		os.Exit(1)
	}
	cancelIndex()

	// Chain reader is optional: without an RPC URL receipts degrade to
	// database-only composition.
	var reader chain.Reader
	if cfg.Chain.RPCURL != "" {
		chainClient, err := chain.NewClient(cfg.Chain.RPCURL, cfg.Chain.QAContract, time.Duration(cfg.Chain.RequestTimeout)*time.Second)
		if err != nil {
			slog.Error("Failed to connect to chain RPC", "error", err)
			os.Exit(1)
		}
		defer chainClient.Close()
		reader = chainClient
	} else {
		slog.Warn("No chain RPC configured, receipts will not be reconciled on-chain")
	}

	// Attestor is optional: without a platform key receipts stay unsigned.
	platformSigner, err := signer.New(cfg.Chain.PlatformPrivateKey)
	if err != nil {
		slog.Error("Invalid platform private key", "error", err)
		os.Exit(1)
	}
	var attestor services.Attestor
	if platformSigner != nil {
		attestor = platformSigner
	} else {
		slog.Warn("No platform key configured, receipts will be unsigned")
	}

	// Initialize repositories
	var userRepo repositories.UserRepository = mongorepo.NewUserRepository(db)
	var questionRepo repositories.QuestionRepository = mongorepo.NewQuestionRepository(db)
	var answerRepo repositories.AnswerRepository = mongorepo.NewAnswerRepository(db)
	var bookmarkRepo repositories.BookmarkRepository = mongorepo.NewBookmarkRepository(db)
	var notificationRepo repositories.NotificationRepository = mongorepo.NewNotificationRepository(db)
	var receiptRepo repositories.ReceiptRepository = mongorepo.NewReceiptRepository(db)
	var transactionRepo repositories.TransactionRepository = mongorepo.NewTransactionRepository(db)
	var tx repositories.Transactor = mongoClient

	// Initialize services
	authService := services.NewAuthService(userRepo, transactionRepo, tx, cfg)
	questionService := services.NewQuestionService(questionRepo, answerRepo, userRepo, tx)
	notificationService := services.NewNotificationService(notificationRepo)
	answerService := services.NewAnswerService(answerRepo, questionRepo, userRepo, notificationService, tx)
	bookmarkService := services.NewBookmarkService(bookmarkRepo, questionRepo, userRepo)
	receiptService := services.NewReceiptService(receiptRepo, questionRepo, answerRepo, userRepo, reader, attestor, cfg)
	rankingService := services.NewRankingService(answerRepo, userRepo)
	transactionService := services.NewTransactionService(transactionRepo, userRepo, tx)

	// Initialize handlers
	h := &routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService, cfg),
		User:         handlers.NewUserHandler(authService),
		Question:     handlers.NewQuestionHandler(questionService),
		Answer:       handlers.NewAnswerHandler(answerService),
		Bookmark:     handlers.NewBookmarkHandler(bookmarkService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Receipt:      handlers.NewReceiptHandler(receiptService),
		Ranking:      handlers.NewRankingHandler(rankingService),
		Transaction:  handlers.NewTransactionHandler(transactionService),
	}

	router := routes.SetupRouter(cfg, h)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}

// setupLogger installs a JSON slog handler at the configured level
func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
