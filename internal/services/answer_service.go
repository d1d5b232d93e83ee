package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/wakqa-labs/wakqa-backend/internal/apperrors"
	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/repositories"
	"github.com/wakqa-labs/wakqa-backend/internal/utils"
)

// Compile-time check to ensure AnswerServiceImpl implements AnswerService
var _ AnswerService = (*AnswerServiceImpl)(nil)

type AnswerServiceImpl struct {
	answerRepo          repositories.AnswerRepository
	questionRepo        repositories.QuestionRepository
	userRepo            repositories.UserRepository
	notificationService NotificationService
	tx                  repositories.Transactor
}

// NewAnswerService creates a new AnswerService implementation
func NewAnswerService(answerRepo repositories.AnswerRepository, questionRepo repositories.QuestionRepository, userRepo repositories.UserRepository, notificationService NotificationService, tx repositories.Transactor) *AnswerServiceImpl {
	return &AnswerServiceImpl{
		answerRepo:          answerRepo,
		questionRepo:        questionRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		tx:                  tx,
	}
}

// Create posts an answer to an open question.
func (s *AnswerServiceImpl) Create(ctx context.Context, email string, req *models.CreateAnswerRequest) (*models.Answer, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.NotFound, "user not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "failed to load user", err)
	}
	if user.WalletAddress == "" {
		return nil, apperrors.E(apperrors.Invalid, "a connected wallet is required to answer")
	}

	question, err := s.questionRepo.FindByQuestionID(ctx, req.QuestionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.NotFound, "question not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "failed to load question", err)
	}
	if question.Status == models.QuestionStatusSolved {
		return nil, apperrors.E(apperrors.AlreadyResolved, "question already resolved")
	}

	answer := &models.Answer{
		QuestionID:  question.QuestionID,
		Author:      user.WalletAddress,
		Content:     req.Content,
		ContentHash: utils.ContentHash(req.Content),
	}
	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "failed to create answer", err)
	}
	if err := s.userRepo.IncrementAnswerCount(ctx, email); err != nil {
		slog.Warn("Failed to bump answer count", "email", email, "error", err)
	}

	s.notifyQuestionAuthor(ctx, question, answer)
	return answer, nil
}

// ListByQuestion returns a question's answers oldest first.
func (s *AnswerServiceImpl) ListByQuestion(ctx context.Context, questionID string) ([]*models.Answer, error) {
	answers, err := s.answerRepo.FindByQuestion(ctx, questionID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "failed to list answers", err)
	}
	return answers, nil
}

// Accept marks an answer accepted, resolves the question and releases the
// escrowed reward to the answer author, all inside one database transaction.
// Only the question author may accept, and a solved question stays solved.
func (s *AnswerServiceImpl) Accept(ctx context.Context, email string, req *models.AcceptAnswerRequest) (*models.Answer, error) {
	caller, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.NotFound, "user not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "failed to load user", err)
	}

	question, err := s.questionRepo.FindByQuestionID(ctx, req.QuestionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.NotFound, "question not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "failed to load question", err)
	}
	if question.Author != caller.WalletAddress {
		return nil, apperrors.E(apperrors.Forbidden, "only the question author may accept an answer")
	}
	if question.Status == models.QuestionStatusSolved {
		return nil, apperrors.E(apperrors.AlreadyResolved, "question already resolved")
	}

	answer, err := s.answerRepo.FindByQuestionAndID(ctx, req.QuestionID, req.AnswerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.NotFound, "answer not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "failed to load answer", err)
	}

	reward := utils.NormalizeReward(question.Reward, question.RewardUnit)

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.answerRepo.MarkAccepted(txCtx, answer.ID); err != nil {
			return fmt.Errorf("failed to mark answer accepted: %w", err)
		}
		// The open-status guard inside MarkSolved makes a concurrent second
		// acceptance lose here and roll the whole transaction back.
		if err := s.questionRepo.MarkSolved(txCtx, question.QuestionID, answer.ID.Hex()); err != nil {
			return err
		}
		if reward > 0 {
			err := s.userRepo.CreditAcceptedReward(txCtx, answer.Author, reward)
			if errors.Is(err, mongo.ErrNoDocuments) {
				// The answer author never registered an account; the
				// acceptance still stands, the credit just has nowhere
				// to land.
				slog.Warn("Reward credit skipped, no account for wallet",
					"wallet", answer.Author, "questionId", question.QuestionID, "reward", reward)
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) != apperrors.Internal {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.Internal, "failed to accept answer", err)
	}

	answer.IsAccepted = true
	slog.Info("Answer accepted",
		"questionId", question.QuestionID, "answerId", answer.ID.Hex(),
		"answerAuthor", answer.Author, "reward", reward)

	s.notifyAnswerAuthor(ctx, question, answer, reward)
	return answer, nil
}

// notifyQuestionAuthor tells the question author about a new answer.
// Notification failures never fail the answer flow.
func (s *AnswerServiceImpl) notifyQuestionAuthor(ctx context.Context, question *models.Question, answer *models.Answer) {
	author, err := s.userRepo.FindByWallet(ctx, question.Author)
	if err != nil || author.Email == "" {
		return
	}
	err = s.notificationService.Notify(ctx, &models.Notification{
		UserEmail:  author.Email,
		Type:       "NEW_ANSWER",
		Title:      "New answer",
		Message:    fmt.Sprintf("Your question %q has a new answer", question.Title),
		QuestionID: question.QuestionID,
		Tags:       question.Tags,
	})
	if err != nil {
		slog.Warn("Failed to create notification", "email", author.Email, "error", err)
	}
}

// notifyAnswerAuthor tells the answer author their answer was accepted.
func (s *AnswerServiceImpl) notifyAnswerAuthor(ctx context.Context, question *models.Question, answer *models.Answer, reward float64) {
	author, err := s.userRepo.FindByWallet(ctx, answer.Author)
	if err != nil || author.Email == "" {
		return
	}
	err = s.notificationService.Notify(ctx, &models.Notification{
		UserEmail:  author.Email,
		Type:       "ANSWER_ACCEPTED",
		Title:      "Answer accepted",
		Message:    fmt.Sprintf("Your answer to %q was accepted for %.4f WAK", question.Title, reward),
		QuestionID: question.QuestionID,
		Tags:       question.Tags,
	})
	if err != nil {
		slog.Warn("Failed to create notification", "email", author.Email, "error", err)
	}
}
