package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakqa-labs/wakqa-backend/internal/apperrors"
	"github.com/wakqa-labs/wakqa-backend/internal/models"
)

func newAnswerFixture() (*AnswerServiceImpl, *fakeUserRepo, *fakeQuestionRepo, *fakeAnswerRepo, *fakeNotificationRepo) {
	userRepo := &fakeUserRepo{}
	questionRepo := &fakeQuestionRepo{}
	answerRepo := &fakeAnswerRepo{}
	notificationRepo := &fakeNotificationRepo{}
	notificationService := NewNotificationService(notificationRepo)
	svc := NewAnswerService(answerRepo, questionRepo, userRepo, notificationService, fakeTransactor{})
	return svc, userRepo, questionRepo, answerRepo, notificationRepo
}

func seedUser(repo *fakeUserRepo, email, wallet string, balance float64) *models.User {
	user := &models.User{Email: email, UserName: email, WalletAddress: wallet, TokenBalance: balance}
	_ = repo.Create(context.Background(), user)
	return user
}

func TestCreateAnswer(t *testing.T) {
	svc, userRepo, questionRepo, _, notificationRepo := newAnswerFixture()
	ctx := context.Background()

	seedUser(userRepo, "asker@example.com", "0xaaa", 0)
	seedUser(userRepo, "helper@example.com", "0xbbb", 0)
	_ = questionRepo.Create(ctx, &models.Question{
		QuestionID: "q-1", Author: "0xaaa", Title: "How do escrows work?",
		Status: models.QuestionStatusOpen,
	})

	answer, err := svc.Create(ctx, "helper@example.com", &models.CreateAnswerRequest{
		QuestionID: "q-1",
		Content:    "The contract holds the reward until acceptance.",
	})
	require.NoError(t, err)
	assert.Equal(t, "q-1", answer.QuestionID)
	assert.Equal(t, "0xbbb", answer.Author)
	assert.False(t, answer.IsAccepted)
	assert.NotEmpty(t, answer.ContentHash)

	user, err := userRepo.FindByEmail(ctx, "helper@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, user.AnswerCount)

	// The question author got a NEW_ANSWER notification.
	notifications, err := notificationRepo.FindByEmail(ctx, "asker@example.com")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "NEW_ANSWER", notifications[0].Type)
}

func TestCreateAnswerRequiresWallet(t *testing.T) {
	svc, userRepo, questionRepo, _, _ := newAnswerFixture()
	ctx := context.Background()

	seedUser(userRepo, "nowallet@example.com", "", 0)
	_ = questionRepo.Create(ctx, &models.Question{QuestionID: "q-1", Author: "0xaaa", Status: models.QuestionStatusOpen})

	_, err := svc.Create(ctx, "nowallet@example.com", &models.CreateAnswerRequest{QuestionID: "q-1", Content: "hi"})
	assert.Equal(t, apperrors.Invalid, apperrors.KindOf(err))
}

func TestCreateAnswerOnSolvedQuestion(t *testing.T) {
	svc, userRepo, questionRepo, _, _ := newAnswerFixture()
	ctx := context.Background()

	seedUser(userRepo, "helper@example.com", "0xbbb", 0)
	_ = questionRepo.Create(ctx, &models.Question{QuestionID: "q-1", Author: "0xaaa", Status: models.QuestionStatusSolved})

	_, err := svc.Create(ctx, "helper@example.com", &models.CreateAnswerRequest{QuestionID: "q-1", Content: "too late"})
	assert.Equal(t, apperrors.AlreadyResolved, apperrors.KindOf(err))
}

func TestAcceptAnswerReleasesReward(t *testing.T) {
	svc, userRepo, questionRepo, answerRepo, notificationRepo := newAnswerFixture()
	ctx := context.Background()

	seedUser(userRepo, "asker@example.com", "0xaaa", 0)
	seedUser(userRepo, "helper@example.com", "0xbbb", 1)
	_ = questionRepo.Create(ctx, &models.Question{
		QuestionID: "q-1", Author: "0xaaa", Title: "Reward question",
		Reward: 5, RewardUnit: models.RewardUnitToken,
		Status: models.QuestionStatusOpen,
	})
	answer := &models.Answer{QuestionID: "q-1", Author: "0xbbb", Content: "answer"}
	_ = answerRepo.Create(ctx, answer)

	accepted, err := svc.Accept(ctx, "asker@example.com", &models.AcceptAnswerRequest{
		QuestionID: "q-1",
		AnswerID:   answer.ID.Hex(),
	})
	require.NoError(t, err)
	assert.True(t, accepted.IsAccepted)

	question, err := questionRepo.FindByQuestionID(ctx, "q-1")
	require.NoError(t, err)
	assert.Equal(t, models.QuestionStatusSolved, question.Status)
	assert.Equal(t, answer.ID.Hex(), question.AcceptedAnswerID)

	helper, err := userRepo.FindByEmail(ctx, "helper@example.com")
	require.NoError(t, err)
	assert.Equal(t, 6.0, helper.TokenBalance)
	assert.Equal(t, 1, helper.AcceptedAnswerCount)
	assert.Equal(t, 10, helper.Reputation)

	notifications, err := notificationRepo.FindByEmail(ctx, "helper@example.com")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "ANSWER_ACCEPTED", notifications[0].Type)
}

func TestAcceptAnswerRewardInWei(t *testing.T) {
	svc, userRepo, questionRepo, answerRepo, _ := newAnswerFixture()
	ctx := context.Background()

	seedUser(userRepo, "asker@example.com", "0xaaa", 0)
	seedUser(userRepo, "helper@example.com", "0xbbb", 0)
	_ = questionRepo.Create(ctx, &models.Question{
		QuestionID: "q-1", Author: "0xaaa",
		Reward: 5e18, RewardUnit: models.RewardUnitWei,
		Status: models.QuestionStatusOpen,
	})
	answer := &models.Answer{QuestionID: "q-1", Author: "0xbbb"}
	_ = answerRepo.Create(ctx, answer)

	_, err := svc.Accept(ctx, "asker@example.com", &models.AcceptAnswerRequest{
		QuestionID: "q-1", AnswerID: answer.ID.Hex(),
	})
	require.NoError(t, err)

	helper, err := userRepo.FindByEmail(ctx, "helper@example.com")
	require.NoError(t, err)
	assert.Equal(t, 5.0, helper.TokenBalance)
}

func TestAcceptAnswerOnlyAuthor(t *testing.T) {
	svc, userRepo, questionRepo, answerRepo, _ := newAnswerFixture()
	ctx := context.Background()

	seedUser(userRepo, "asker@example.com", "0xaaa", 0)
	seedUser(userRepo, "intruder@example.com", "0xccc", 0)
	_ = questionRepo.Create(ctx, &models.Question{QuestionID: "q-1", Author: "0xaaa", Status: models.QuestionStatusOpen})
	answer := &models.Answer{QuestionID: "q-1", Author: "0xbbb"}
	_ = answerRepo.Create(ctx, answer)

	_, err := svc.Accept(ctx, "intruder@example.com", &models.AcceptAnswerRequest{
		QuestionID: "q-1", AnswerID: answer.ID.Hex(),
	})
	assert.Equal(t, apperrors.Forbidden, apperrors.KindOf(err))
}

func TestAcceptAnswerTwice(t *testing.T) {
	svc, userRepo, questionRepo, answerRepo, _ := newAnswerFixture()
	ctx := context.Background()

	seedUser(userRepo, "asker@example.com", "0xaaa", 0)
	seedUser(userRepo, "helper@example.com", "0xbbb", 0)
	_ = questionRepo.Create(ctx, &models.Question{
		QuestionID: "q-1", Author: "0xaaa",
		Reward: 2, RewardUnit: models.RewardUnitToken,
		Status: models.QuestionStatusOpen,
	})
	answer := &models.Answer{QuestionID: "q-1", Author: "0xbbb"}
	_ = answerRepo.Create(ctx, answer)

	req := &models.AcceptAnswerRequest{QuestionID: "q-1", AnswerID: answer.ID.Hex()}
	_, err := svc.Accept(ctx, "asker@example.com", req)
	require.NoError(t, err)

	_, err = svc.Accept(ctx, "asker@example.com", req)
	assert.Equal(t, apperrors.AlreadyResolved, apperrors.KindOf(err))

	// The reward was released exactly once.
	helper, err := userRepo.FindByEmail(ctx, "helper@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2.0, helper.TokenBalance)
}

func TestAcceptAnswerUnknownAnswer(t *testing.T) {
	svc, userRepo, questionRepo, _, _ := newAnswerFixture()
	ctx := context.Background()

	seedUser(userRepo, "asker@example.com", "0xaaa", 0)
	_ = questionRepo.Create(ctx, &models.Question{QuestionID: "q-1", Author: "0xaaa", Status: models.QuestionStatusOpen})

	_, err := svc.Accept(ctx, "asker@example.com", &models.AcceptAnswerRequest{
		QuestionID: "q-1", AnswerID: "q-1_1700000000_abc123",
	})
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestAcceptAnswerLegacyID(t *testing.T) {
	svc, userRepo, questionRepo, answerRepo, _ := newAnswerFixture()
	ctx := context.Background()

	seedUser(userRepo, "asker@example.com", "0xaaa", 0)
	seedUser(userRepo, "helper@example.com", "0xbbb", 0)
	_ = questionRepo.Create(ctx, &models.Question{QuestionID: "q-1", Author: "0xaaa", Status: models.QuestionStatusOpen})
	answer := &models.Answer{QuestionID: "q-1", LegacyID: "q-1_1700000000_abc123", Author: "0xbbb"}
	_ = answerRepo.Create(ctx, answer)

	accepted, err := svc.Accept(ctx, "asker@example.com", &models.AcceptAnswerRequest{
		QuestionID: "q-1", AnswerID: "q-1_1700000000_abc123",
	})
	require.NoError(t, err)
	assert.Equal(t, answer.ID, accepted.ID)
}

func TestAcceptAnswerMissingRewardAccount(t *testing.T) {
	svc, userRepo, questionRepo, answerRepo, _ := newAnswerFixture()
	ctx := context.Background()

	seedUser(userRepo, "asker@example.com", "0xaaa", 0)
	// The answer author has no registered account.
	_ = questionRepo.Create(ctx, &models.Question{
		QuestionID: "q-1", Author: "0xaaa",
		Reward: 3, RewardUnit: models.RewardUnitToken,
		Status: models.QuestionStatusOpen,
	})
	answer := &models.Answer{QuestionID: "q-1", Author: "0xdead"}
	_ = answerRepo.Create(ctx, answer)

	accepted, err := svc.Accept(ctx, "asker@example.com", &models.AcceptAnswerRequest{
		QuestionID: "q-1", AnswerID: answer.ID.Hex(),
	})
	require.NoError(t, err)
	assert.True(t, accepted.IsAccepted)

	question, err := questionRepo.FindByQuestionID(ctx, "q-1")
	require.NoError(t, err)
	assert.Equal(t, models.QuestionStatusSolved, question.Status)
}
