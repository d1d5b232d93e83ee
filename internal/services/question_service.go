package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/wakqa-labs/wakqa-backend/internal/apperrors"
	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/repositories"
	"github.com/wakqa-labs/wakqa-backend/internal/utils"
)

// Compile-time check to ensure QuestionServiceImpl implements QuestionService
var _ QuestionService = (*QuestionServiceImpl)(nil)

type QuestionServiceImpl struct {
	questionRepo repositories.QuestionRepository
	answerRepo   repositories.AnswerRepository
	userRepo     repositories.UserRepository
	tx           repositories.Transactor
}

// NewQuestionService creates a new QuestionService implementation
func NewQuestionService(questionRepo repositories.QuestionRepository, answerRepo repositories.AnswerRepository, userRepo repositories.UserRepository, tx repositories.Transactor) *QuestionServiceImpl {
	return &QuestionServiceImpl{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		userRepo:     userRepo,
		tx:           tx,
	}
}

// Create persists a question and escrows its reward: the normalized reward is
// debited from the author's ledger balance in the same transaction as the
// insert. Insufficient balance rejects the whole operation.
func (s *QuestionServiceImpl) Create(ctx context.Context, email string, req *models.CreateQuestionRequest) (*models.Question, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.NotFound, "user not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "failed to load user", err)
	}
	if user.WalletAddress == "" {
		return nil, apperrors.E(apperrors.Invalid, "a connected wallet is required to ask a question")
	}

	unit := req.RewardUnit
	if unit == "" {
		// Untagged legacy clients; record what the heuristic decided so the
		// stored document is unambiguous from here on.
		unit = models.RewardUnitToken
		if req.Reward >= utils.WeiPerToken {
			unit = models.RewardUnitWei
		}
	}
	reward := utils.NormalizeReward(req.Reward, unit)

	question := &models.Question{
		QuestionID:  req.QuestionID,
		Author:      user.WalletAddress,
		Title:       req.Title,
		Content:     req.Content,
		ContentHash: utils.ContentHash(req.Content),
		Reward:      req.Reward,
		RewardUnit:  unit,
		Tags:        req.Tags,
		Status:      models.QuestionStatusOpen,
		TxHash:      req.TxHash,
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if reward > 0 {
			if err := s.userRepo.DebitBalance(txCtx, email, reward); err != nil {
				return err
			}
		}
		if err := s.questionRepo.Create(txCtx, question); err != nil {
			return err
		}
		return s.userRepo.IncrementQuestionCount(txCtx, email)
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.InsufficientBalance {
			return nil, err
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Ef(apperrors.Conflict, "question %s already exists", req.QuestionID)
		}
		return nil, apperrors.Wrap(apperrors.Internal, "failed to create question", err)
	}

	slog.Info("Question created", "questionId", question.QuestionID, "author", question.Author, "reward", reward)
	return question, nil
}

// GetByQuestionID returns a question with its live answer count.
func (s *QuestionServiceImpl) GetByQuestionID(ctx context.Context, questionID string) (*models.Question, error) {
	question, err := s.questionRepo.FindByQuestionID(ctx, questionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.NotFound, "question not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "failed to load question", err)
	}

	count, err := s.answerRepo.CountByQuestion(ctx, questionID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "failed to count answers", err)
	}
	question.AnswerCount = int(count)
	return question, nil
}

// List returns questions newest first with live answer counts.
func (s *QuestionServiceImpl) List(ctx context.Context, filter models.QuestionFilter, page, limit int) ([]*models.Question, error) {
	questions, err := s.questionRepo.FindAll(ctx, filter, page, limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "failed to list questions", err)
	}

	for _, q := range questions {
		count, err := s.answerRepo.CountByQuestion(ctx, q.QuestionID)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.Internal, "failed to count answers", err)
		}
		q.AnswerCount = int(count)
	}
	return questions, nil
}
