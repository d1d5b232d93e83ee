package services

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/wakqa-labs/wakqa-backend/internal/apperrors"
	"github.com/wakqa-labs/wakqa-backend/internal/config"
	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/repositories"
	"github.com/wakqa-labs/wakqa-backend/internal/utils"
	"github.com/wakqa-labs/wakqa-backend/pkg/chain"
)

// Compile-time check to ensure ReceiptServiceImpl implements ReceiptService
var _ ReceiptService = (*ReceiptServiceImpl)(nil)

// ReceiptServiceImpl reconciles an on-chain acceptance transaction with the
// off-chain question/answer state and persists the result as an immutable
// receipt. Every external dependency is best-effort: an unreachable RPC node
// yields a receipt with zeroed chain fields, a failing signer yields an
// unsigned receipt. Only the database insert is load-bearing.
type ReceiptServiceImpl struct {
	receiptRepo  repositories.ReceiptRepository
	questionRepo repositories.QuestionRepository
	answerRepo   repositories.AnswerRepository
	userRepo     repositories.UserRepository
	reader       chain.Reader
	attestor     Attestor
	cfg          *config.Config
}

// NewReceiptService creates a new ReceiptService implementation. reader and
// attestor may be nil, which disables chain lookups and signing respectively.
func NewReceiptService(receiptRepo repositories.ReceiptRepository, questionRepo repositories.QuestionRepository, answerRepo repositories.AnswerRepository, userRepo repositories.UserRepository, reader chain.Reader, attestor Attestor, cfg *config.Config) *ReceiptServiceImpl {
	return &ReceiptServiceImpl{
		receiptRepo:  receiptRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		userRepo:     userRepo,
		reader:       reader,
		attestor:     attestor,
		cfg:          cfg,
	}
}

// GetOrCreate returns the receipt for txHash, composing and persisting it on
// first sight. The unique txHash index makes the operation idempotent: a
// concurrent create loses the insert race and re-reads the winner's document.
func (s *ReceiptServiceImpl) GetOrCreate(ctx context.Context, txHash, questionID, answerID string) (*models.Receipt, error) {
	if txHash == "" {
		return nil, apperrors.E(apperrors.Invalid, "txHash is required")
	}

	existing, err := s.receiptRepo.FindByTxHash(ctx, txHash)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Wrap(apperrors.Internal, "failed to look up receipt", err)
	}

	receipt := s.compose(ctx, txHash, questionID, answerID)

	if err := s.receiptRepo.Insert(ctx, receipt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost the race; the other writer's receipt is the receipt.
			return s.receiptRepo.FindByTxHash(ctx, txHash)
		}
		return nil, apperrors.Wrap(apperrors.Internal, "failed to persist receipt", err)
	}

	slog.Info("Receipt created",
		"txHash", txHash, "questionId", receipt.QuestionID,
		"block", receipt.BlockNumber, "signed", receipt.Signature != "")
	return receipt, nil
}

// compose assembles the receipt from the chain settlement (if reachable), the
// stored question/answer documents (if present) and the caller's hints.
func (s *ReceiptServiceImpl) compose(ctx context.Context, txHash, questionID, answerID string) *models.Receipt {
	core := models.ReceiptCore{
		Network:       s.cfg.Chain.Network,
		ChainID:       s.cfg.Chain.ChainID,
		QAContract:    s.cfg.Chain.QAContract,
		TokenContract: s.cfg.Chain.TokenContract,
		TxHash:        txHash,
		TxStatus:      models.TxStatusSuccess,
		QuestionID:    questionID,
		AnswerID:      answerID,
		TokenSymbol:   s.cfg.Chain.TokenSymbol,
		TokenDecimals: s.cfg.Chain.TokenDecimals,
		Timestamp:     time.Now().UTC(),
	}
	receipt := &models.Receipt{}

	var eventRewardWei *big.Int
	if s.reader != nil {
		settlement, err := s.reader.Settlement(ctx, txHash)
		if err != nil {
			slog.Warn("Chain lookup failed, composing degraded receipt", "txHash", txHash, "error", err)
		} else {
			core.BlockNumber = settlement.BlockNumber
			core.BlockHash = settlement.BlockHash
			core.TxStatus = settlement.Status
			receipt.GasUsed = settlement.GasUsed
			receipt.EffectiveGasPrice = settlement.EffectiveGasPrice
			if !settlement.Timestamp.IsZero() {
				core.Timestamp = settlement.Timestamp
			}
			if ev := settlement.Event; ev != nil {
				if ev.QuestionID != "" {
					core.QuestionID = ev.QuestionID
				}
				if ev.AnswerID != "" {
					core.AnswerID = ev.AnswerID
				}
				core.AnswerAuthor = ev.AnswerAuthor
				eventRewardWei = ev.RewardWei
			}
		}
	}

	var question *models.Question
	if core.QuestionID != "" {
		q, err := s.questionRepo.FindByQuestionID(ctx, core.QuestionID)
		if err == nil {
			question = q
			core.QuestionAuthor = q.Author
			receipt.Tags = q.Tags
		}
	}
	if core.AnswerAuthor == "" && core.QuestionID != "" && core.AnswerID != "" {
		if a, err := s.answerRepo.FindByQuestionAndID(ctx, core.QuestionID, core.AnswerID); err == nil {
			core.AnswerAuthor = a.Author
		}
	}

	// Reward precedence: on-chain event value, then the stored question
	// reward, then zero. Always expressed in whole tokens.
	switch {
	case eventRewardWei != nil:
		f, _ := new(big.Float).Quo(
			new(big.Float).SetInt(eventRewardWei),
			big.NewFloat(utils.WeiPerToken),
		).Float64()
		core.Reward = f
	case question != nil:
		core.Reward = utils.NormalizeReward(question.Reward, question.RewardUnit)
	}

	receipt.ReceiptCore = core
	if s.cfg.Chain.ExplorerURL != "" {
		receipt.ExplorerURL = s.cfg.Chain.ExplorerURL + "/tx/" + txHash
	}
	receipt.Participants = participants(core.QuestionAuthor, core.AnswerAuthor)

	s.sign(receipt)
	return receipt
}

// sign attaches the platform signature over the serialized core record.
// Failures degrade to an unsigned receipt.
func (s *ReceiptServiceImpl) sign(receipt *models.Receipt) {
	if s.attestor == nil {
		return
	}
	payload, err := json.Marshal(receipt.ReceiptCore)
	if err != nil {
		slog.Warn("Failed to serialize receipt core for signing", "txHash", receipt.TxHash, "error", err)
		return
	}
	sig, signer, err := s.attestor.Sign(payload)
	if err != nil {
		slog.Warn("Failed to sign receipt, persisting unsigned", "txHash", receipt.TxHash, "error", err)
		return
	}
	receipt.Signature = sig
	receipt.Signer = signer
}

// ListForUser returns receipts the session user participated in.
func (s *ReceiptServiceImpl) ListForUser(ctx context.Context, email string) ([]*models.Receipt, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.NotFound, "user not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "failed to load user", err)
	}
	if user.WalletAddress == "" {
		return []*models.Receipt{}, nil
	}

	receipts, err := s.receiptRepo.FindByParticipant(ctx, user.WalletAddress)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "failed to list receipts", err)
	}
	return receipts, nil
}

func participants(addresses ...string) []string {
	seen := make(map[string]bool, len(addresses))
	out := make([]string, 0, len(addresses))
	for _, a := range addresses {
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}
