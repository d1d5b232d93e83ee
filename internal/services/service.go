package services

import (
	"context"

	"github.com/wakqa-labs/wakqa-backend/internal/models"
)

// AuthService defines account and session operations
type AuthService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.User, string, error)
	Signin(ctx context.Context, req *models.SigninRequest) (*models.User, string, error)
	GetUser(ctx context.Context, email string) (*models.User, error)
	GetUserByWallet(ctx context.Context, address string) (*models.User, error)
	UpdateProfile(ctx context.Context, email string, req *models.UpdateProfileRequest) (*models.User, error)
	AdjustBalance(ctx context.Context, email string, req *models.BalanceRequest) (*models.User, error)
	DeleteAccount(ctx context.Context, email string) error
}

// QuestionService defines question operations
type QuestionService interface {
	Create(ctx context.Context, email string, req *models.CreateQuestionRequest) (*models.Question, error)
	GetByQuestionID(ctx context.Context, questionID string) (*models.Question, error)
	List(ctx context.Context, filter models.QuestionFilter, page, limit int) ([]*models.Question, error)
}

// AnswerService defines answer operations, including the transactional
// acceptance flow.
type AnswerService interface {
	Create(ctx context.Context, email string, req *models.CreateAnswerRequest) (*models.Answer, error)
	ListByQuestion(ctx context.Context, questionID string) ([]*models.Answer, error)
	Accept(ctx context.Context, email string, req *models.AcceptAnswerRequest) (*models.Answer, error)
}

// BookmarkService defines bookmark operations
type BookmarkService interface {
	Add(ctx context.Context, email, questionID string) error
	Remove(ctx context.Context, email, questionID string) error
	List(ctx context.Context, email string) ([]*models.Bookmark, error)
}

// NotificationService defines notification operations
type NotificationService interface {
	List(ctx context.Context, email string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, email, id string) error
	MarkAllRead(ctx context.Context, email string) error
	Notify(ctx context.Context, notification *models.Notification) error
}

// ReceiptService defines the receipt reconciliation flow
type ReceiptService interface {
	GetOrCreate(ctx context.Context, txHash, questionID, answerID string) (*models.Receipt, error)
	ListForUser(ctx context.Context, email string) ([]*models.Receipt, error)
}

// RankingService defines leaderboard reads
type RankingService interface {
	Leaderboard(ctx context.Context, period string) ([]*models.RankingEntry, error)
}

// TransactionService defines ledger operations
type TransactionService interface {
	Create(ctx context.Context, email string, req *models.CreateTransactionRequest) (*models.Transaction, error)
	List(ctx context.Context, email string) ([]*models.Transaction, error)
}

// Attestor signs receipt payloads with the platform key. A nil Attestor
// means signing is disabled and receipts stay unsigned.
type Attestor interface {
	Sign(payload []byte) (signature, signer string, err error)
}
