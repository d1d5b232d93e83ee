package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/wakqa-labs/wakqa-backend/internal/apperrors"
	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/repositories"
)

// Compile-time check to ensure TransactionServiceImpl implements TransactionService
var _ TransactionService = (*TransactionServiceImpl)(nil)

type TransactionServiceImpl struct {
	transactionRepo repositories.TransactionRepository
	userRepo        repositories.UserRepository
	tx              repositories.Transactor
}

// NewTransactionService creates a new TransactionService implementation
func NewTransactionService(transactionRepo repositories.TransactionRepository, userRepo repositories.UserRepository, tx repositories.Transactor) *TransactionServiceImpl {
	return &TransactionServiceImpl{
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		tx:              tx,
	}
}

// Create appends a ledger entry and applies its balance effect in one
// database transaction: an exchange credits wakAmount, a withdrawal debits
// it. An uncovered withdrawal rejects the whole operation.
func (s *TransactionServiceImpl) Create(ctx context.Context, email string, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	if _, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.NotFound, "user not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "failed to load user", err)
	}

	status := req.Status
	if status == "" {
		status = "completed"
	}
	transaction := &models.Transaction{
		UserEmail:       email,
		Type:            req.Type,
		EthAmount:       req.EthAmount,
		WakAmount:       req.WakAmount,
		TransactionHash: req.TransactionHash,
		Status:          status,
	}

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		switch req.Type {
		case models.TxTypeExchange:
			if err := s.userRepo.CreditBalance(txCtx, email, req.WakAmount); err != nil {
				return err
			}
		case models.TxTypeWithdraw:
			if err := s.userRepo.DebitBalance(txCtx, email, req.WakAmount); err != nil {
				return err
			}
		default:
			return apperrors.Ef(apperrors.Invalid, "unknown transaction type %q", req.Type)
		}
		return s.transactionRepo.Create(txCtx, transaction)
	})
	if err != nil {
		if apperrors.KindOf(err) != apperrors.Internal {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.Internal, "failed to record transaction", err)
	}

	slog.Info("Transaction recorded", "email", email, "type", req.Type, "wakAmount", req.WakAmount)
	return transaction, nil
}

// List returns the user's ledger entries newest first
func (s *TransactionServiceImpl) List(ctx context.Context, email string) ([]*models.Transaction, error) {
	transactions, err := s.transactionRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "failed to list transactions", err)
	}
	return transactions, nil
}
