package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakqa-labs/wakqa-backend/internal/apperrors"
	"github.com/wakqa-labs/wakqa-backend/internal/config"
	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/utils"
)

func authConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600},
	}
}

func newAuthFixture() (*AuthServiceImpl, *fakeUserRepo, *fakeTransactionRepo) {
	userRepo := &fakeUserRepo{}
	transactionRepo := &fakeTransactionRepo{}
	svc := NewAuthService(userRepo, transactionRepo, fakeTransactor{}, authConfig())
	return svc, userRepo, transactionRepo
}

func TestSignupAndSignin(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	user, token, err := svc.Signup(ctx, &models.SignupRequest{
		Email: "new@example.com", Password: "hunter22", UserName: "newbie",
	})
	require.NoError(t, err)
	assert.Equal(t, "newbie", user.UserName)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	email, err := utils.ValidateSessionToken(token, authConfig())
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", email)

	signed, _, err := svc.Signin(ctx, &models.SigninRequest{
		Email: "new@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, signed.ID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	req := &models.SignupRequest{Email: "dup@example.com", Password: "hunter22", UserName: "first"}
	_, _, err := svc.Signup(ctx, req)
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, req)
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err))
}

func TestSigninInvalidCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, &models.SignupRequest{
		Email: "known@example.com", Password: "hunter22", UserName: "known",
	})
	require.NoError(t, err)

	_, _, badPassword := svc.Signin(ctx, &models.SigninRequest{Email: "known@example.com", Password: "wrong"})
	_, _, badEmail := svc.Signin(ctx, &models.SigninRequest{Email: "unknown@example.com", Password: "hunter22"})

	// Unknown email and wrong password are indistinguishable.
	assert.Equal(t, apperrors.Unauthorized, apperrors.KindOf(badPassword))
	assert.Equal(t, apperrors.Unauthorized, apperrors.KindOf(badEmail))
	assert.Equal(t, badPassword.Error(), badEmail.Error())
}

func TestUpdateProfileConnectsWallet(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()
	ctx := context.Background()

	seedUser(userRepo, "user@example.com", "", 0)

	user, err := svc.UpdateProfile(ctx, "user@example.com", &models.UpdateProfileRequest{
		WalletAddress: "0xAbCd00000000000000000000000000000000EF12",
	})
	require.NoError(t, err)
	assert.Equal(t, "0xabcd00000000000000000000000000000000ef12", user.WalletAddress)
}

func TestUpdateProfileWalletConflict(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()
	ctx := context.Background()

	seedUser(userRepo, "owner@example.com", "0xaaa", 0)
	seedUser(userRepo, "thief@example.com", "", 0)

	_, err := svc.UpdateProfile(ctx, "thief@example.com", &models.UpdateProfileRequest{
		WalletAddress: "0xAAA",
	})
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err))
}

func TestAdjustBalance(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()
	ctx := context.Background()

	seedUser(userRepo, "user@example.com", "0xaaa", 5)

	user, err := svc.AdjustBalance(ctx, "user@example.com", &models.BalanceRequest{
		Operation: "credit", Amount: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 8.0, user.TokenBalance)

	user, err = svc.AdjustBalance(ctx, "user@example.com", &models.BalanceRequest{
		Operation: "debit", Amount: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 6.0, user.TokenBalance)

	_, err = svc.AdjustBalance(ctx, "user@example.com", &models.BalanceRequest{
		Operation: "debit", Amount: 100,
	})
	assert.Equal(t, apperrors.InsufficientBalance, apperrors.KindOf(err))
}

func TestDeleteAccountKeepsContent(t *testing.T) {
	svc, userRepo, transactionRepo := newAuthFixture()
	ctx := context.Background()

	seedUser(userRepo, "leaver@example.com", "0xaaa", 0)
	_ = transactionRepo.Create(ctx, &models.Transaction{UserEmail: "leaver@example.com", Type: models.TxTypeExchange, WakAmount: 1})
	_ = transactionRepo.Create(ctx, &models.Transaction{UserEmail: "other@example.com", Type: models.TxTypeExchange, WakAmount: 1})

	require.NoError(t, svc.DeleteAccount(ctx, "leaver@example.com"))

	_, err := userRepo.FindByEmail(ctx, "leaver@example.com")
	assert.Error(t, err)

	// Only the leaver's ledger entries went with the account.
	mine, err := transactionRepo.FindByEmail(ctx, "leaver@example.com")
	require.NoError(t, err)
	assert.Empty(t, mine)
	others, err := transactionRepo.FindByEmail(ctx, "other@example.com")
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestGetUserByWalletStripsCredentials(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()
	ctx := context.Background()

	user := seedUser(userRepo, "public@example.com", "0xaaa", 42)
	user.PasswordHash = "bcrypt-hash"
	_ = userRepo.Update(ctx, user)

	profile, err := svc.GetUserByWallet(ctx, "0xAAA")
	require.NoError(t, err)
	assert.Empty(t, profile.Email)
	assert.Empty(t, profile.PasswordHash)
	assert.Equal(t, "0xaaa", profile.WalletAddress)
}
