package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wakqa-labs/wakqa-backend/internal/apperrors"
	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/repositories"
	"github.com/wakqa-labs/wakqa-backend/pkg/chain"
)

// In-memory repository fakes mirroring the MongoDB implementations' error
// contracts: mongo.ErrNoDocuments for misses, apperrors kinds for guarded
// updates.

type fakeTransactor struct{}

func (fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*models.User
}

var _ repositories.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email != "" && u.Email == user.Email {
			return mongo.CommandError{Code: 11000}
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindByWallet(ctx context.Context, address string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.WalletAddress != "" && u.WalletAddress == address {
			cp := *u
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == user.ID {
			cp := *user
			r.users[i] = &cp
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) CreditBalance(ctx context.Context, email string, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u.TokenBalance += amount
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeUserRepo) DebitBalance(ctx context.Context, email string, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			if u.TokenBalance < amount {
				return apperrors.E(apperrors.InsufficientBalance, "insufficient token balance")
			}
			u.TokenBalance -= amount
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeUserRepo) CreditAcceptedReward(ctx context.Context, wallet string, reward float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.WalletAddress == wallet {
			u.TokenBalance += reward
			u.AcceptedAnswerCount++
			u.Reputation += 10
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeUserRepo) IncrementQuestionCount(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u.QuestionCount++
		}
	}
	return nil
}

func (r *fakeUserRepo) IncrementAnswerCount(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u.AnswerCount++
		}
	}
	return nil
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions []*models.Question
}

var _ repositories.QuestionRepository = (*fakeQuestionRepo)(nil)

func (r *fakeQuestionRepo) Create(ctx context.Context, question *models.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.questions {
		if q.QuestionID == question.QuestionID {
			return mongo.CommandError{Code: 11000}
		}
	}
	question.ID = primitive.NewObjectID()
	question.CreatedAt = time.Now()
	r.questions = append(r.questions, question)
	return nil
}

func (r *fakeQuestionRepo) FindByQuestionID(ctx context.Context, questionID string) (*models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.questions {
		if q.QuestionID == questionID {
			cp := *q
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeQuestionRepo) FindAll(ctx context.Context, filter models.QuestionFilter, page, limit int) ([]*models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Question{}
	for _, q := range r.questions {
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		if filter.Author != "" && q.Author != filter.Author {
			continue
		}
		if filter.Tag != "" && !contains(q.Tags, filter.Tag) {
			continue
		}
		cp := *q
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeQuestionRepo) MarkSolved(ctx context.Context, questionID, answerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.questions {
		if q.QuestionID == questionID {
			if q.Status != models.QuestionStatusOpen {
				return apperrors.E(apperrors.AlreadyResolved, "question already resolved")
			}
			q.Status = models.QuestionStatusSolved
			q.AcceptedAnswerID = answerID
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

type fakeAnswerRepo struct {
	mu      sync.Mutex
	answers []*models.Answer
	stats   []*models.AuthorStats // returned verbatim by AggregateAuthorStats
}

var _ repositories.AnswerRepository = (*fakeAnswerRepo)(nil)

func (r *fakeAnswerRepo) Create(ctx context.Context, answer *models.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	answer.ID = primitive.NewObjectID()
	answer.CreatedAt = time.Now()
	r.answers = append(r.answers, answer)
	return nil
}

func (r *fakeAnswerRepo) FindByQuestion(ctx context.Context, questionID string) ([]*models.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Answer{}
	for _, a := range r.answers {
		if a.QuestionID == questionID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAnswerRepo) FindByQuestionAndID(ctx context.Context, questionID, answerID string) (*models.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.answers {
		if a.QuestionID != questionID {
			continue
		}
		if a.ID.Hex() == answerID || (a.LegacyID != "" && a.LegacyID == answerID) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeAnswerRepo) MarkAccepted(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.answers {
		if a.ID == id {
			a.IsAccepted = true
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeAnswerRepo) CountByQuestion(ctx context.Context, questionID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.answers {
		if a.QuestionID == questionID {
			n++
		}
	}
	return n, nil
}

func (r *fakeAnswerRepo) AggregateAuthorStats(ctx context.Context, since time.Time) ([]*models.AuthorStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats, nil
}

type fakeBookmarkRepo struct {
	mu        sync.Mutex
	bookmarks []*models.Bookmark
}

var _ repositories.BookmarkRepository = (*fakeBookmarkRepo)(nil)

func (r *fakeBookmarkRepo) Add(ctx context.Context, bookmark *models.Bookmark) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookmarks {
		if b.QuestionID == bookmark.QuestionID && b.UserAddress == bookmark.UserAddress {
			return false, nil
		}
	}
	bookmark.ID = primitive.NewObjectID()
	bookmark.CreatedAt = time.Now()
	r.bookmarks = append(r.bookmarks, bookmark)
	return true, nil
}

func (r *fakeBookmarkRepo) Remove(ctx context.Context, questionID, userAddress string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.bookmarks {
		if b.QuestionID == questionID && b.UserAddress == userAddress {
			r.bookmarks = append(r.bookmarks[:i], r.bookmarks[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeBookmarkRepo) FindByUser(ctx context.Context, userAddress string) ([]*models.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Bookmark{}
	for _, b := range r.bookmarks {
		if b.UserAddress == userAddress {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
}

var _ repositories.NotificationRepository = (*fakeNotificationRepo)(nil)

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) FindByEmail(ctx context.Context, email string) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Notification{}
	for _, n := range r.notifications {
		if n.UserEmail == email {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id primitive.ObjectID, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id && n.UserEmail == email {
			n.IsRead = true
			n.ReadAt = time.Now()
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.UserEmail == email {
			n.IsRead = true
			n.ReadAt = time.Now()
		}
	}
	return nil
}

func (r *fakeNotificationRepo) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*models.Notification
	var purged int64
	for _, n := range r.notifications {
		if n.IsRead && n.CreatedAt.Before(before) {
			purged++
			continue
		}
		kept = append(kept, n)
	}
	r.notifications = kept
	return purged, nil
}

type fakeReceiptRepo struct {
	mu       sync.Mutex
	receipts []*models.Receipt
}

var _ repositories.ReceiptRepository = (*fakeReceiptRepo)(nil)

func (r *fakeReceiptRepo) Insert(ctx context.Context, receipt *models.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.receipts {
		if existing.TxHash == receipt.TxHash {
			return mongo.CommandError{Code: 11000}
		}
	}
	receipt.ID = primitive.NewObjectID()
	receipt.CreatedAt = time.Now()
	r.receipts = append(r.receipts, receipt)
	return nil
}

func (r *fakeReceiptRepo) FindByTxHash(ctx context.Context, txHash string) (*models.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, receipt := range r.receipts {
		if receipt.TxHash == txHash {
			cp := *receipt
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeReceiptRepo) FindByParticipant(ctx context.Context, address string) ([]*models.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Receipt{}
	for _, receipt := range r.receipts {
		for _, p := range receipt.Participants {
			if p == address {
				cp := *receipt
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

type fakeTransactionRepo struct {
	mu           sync.Mutex
	transactions []*models.Transaction
}

var _ repositories.TransactionRepository = (*fakeTransactionRepo)(nil)

func (r *fakeTransactionRepo) Create(ctx context.Context, transaction *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction.ID = primitive.NewObjectID()
	transaction.CreatedAt = time.Now()
	r.transactions = append(r.transactions, transaction)
	return nil
}

func (r *fakeTransactionRepo) FindByEmail(ctx context.Context, email string) ([]*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Transaction{}
	for _, t := range r.transactions {
		if t.UserEmail == email {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*models.Transaction
	var deleted int64
	for _, t := range r.transactions {
		if t.UserEmail == email {
			deleted++
			continue
		}
		kept = append(kept, t)
	}
	r.transactions = kept
	return deleted, nil
}

type fakeChainReader struct {
	settlement *chain.Settlement
	err        error
}

var _ chain.Reader = (*fakeChainReader)(nil)

func (r *fakeChainReader) Settlement(ctx context.Context, txHash string) (*chain.Settlement, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.settlement, nil
}

type fakeAttestor struct {
	err error
}

func (a *fakeAttestor) Sign(payload []byte) (string, string, error) {
	if a.err != nil {
		return "", "", a.err
	}
	return "0xsigned", "0xplatform", nil
}
