package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wakqa-labs/wakqa-backend/internal/models"
)

// Transactor runs fn inside a single multi-document transaction. Every
// repository call inside fn must use the context fn receives.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines the interface for the single user aggregate. All
// balance and counter writes go through here; there is no second user
// collection to keep in sync.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByWallet(ctx context.Context, address string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// CreditBalance adds amount (whole tokens) to the user's ledger balance.
	CreditBalance(ctx context.Context, email string, amount float64) error
	// DebitBalance subtracts amount only if the balance covers it; an
	// uncovered debit fails instead of flooring at zero.
	DebitBalance(ctx context.Context, email string, amount float64) error
	// CreditAcceptedReward credits a reward by wallet address and bumps
	// acceptedAnswerCount and reputation in the same update.
	CreditAcceptedReward(ctx context.Context, wallet string, reward float64) error
	IncrementQuestionCount(ctx context.Context, email string) error
	IncrementAnswerCount(ctx context.Context, email string) error
}

// QuestionRepository defines the interface for question data operations
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	FindByQuestionID(ctx context.Context, questionID string) (*models.Question, error)
	FindAll(ctx context.Context, filter models.QuestionFilter, page, limit int) ([]*models.Question, error)
	// MarkSolved transitions an open question to solved. It fails if the
	// question is already solved, which makes solved terminal.
	MarkSolved(ctx context.Context, questionID, answerID string) error
}

// AnswerRepository defines the interface for answer data operations
type AnswerRepository interface {
	Create(ctx context.Context, answer *models.Answer) error
	FindByQuestion(ctx context.Context, questionID string) ([]*models.Answer, error)
	// FindByQuestionAndID resolves answerID as an ObjectID hex first and as
	// a stored legacy composite id second (exact match only).
	FindByQuestionAndID(ctx context.Context, questionID, answerID string) (*models.Answer, error)
	MarkAccepted(ctx context.Context, id primitive.ObjectID) error
	CountByQuestion(ctx context.Context, questionID string) (int64, error)
	// AggregateAuthorStats groups answers by author since the given time.
	// A zero time means no lower bound.
	AggregateAuthorStats(ctx context.Context, since time.Time) ([]*models.AuthorStats, error)
}

// BookmarkRepository defines the interface for bookmark data operations
type BookmarkRepository interface {
	// Add inserts the pair if absent. It reports whether a new row was
	// created; a duplicate add is a successful no-op.
	Add(ctx context.Context, bookmark *models.Bookmark) (bool, error)
	Remove(ctx context.Context, questionID, userAddress string) error
	FindByUser(ctx context.Context, userAddress string) ([]*models.Bookmark, error)
}

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByEmail(ctx context.Context, email string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id primitive.ObjectID, email string) error
	MarkAllRead(ctx context.Context, email string) error
	// PurgeExpired deletes read notifications created before the cutoff.
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}

// ReceiptRepository defines the interface for receipt data operations.
// Receipts are immutable; there is no update.
type ReceiptRepository interface {
	Insert(ctx context.Context, receipt *models.Receipt) error
	FindByTxHash(ctx context.Context, txHash string) (*models.Receipt, error)
	FindByParticipant(ctx context.Context, address string) ([]*models.Receipt, error)
}

// TransactionRepository defines the interface for ledger entries
type TransactionRepository interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	FindByEmail(ctx context.Context, email string) ([]*models.Transaction, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}
