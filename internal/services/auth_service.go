package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"github.com/wakqa-labs/wakqa-backend/internal/apperrors"
	"github.com/wakqa-labs/wakqa-backend/internal/config"
	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/repositories"
	"github.com/wakqa-labs/wakqa-backend/internal/utils"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

type AuthServiceImpl struct {
	userRepo        repositories.UserRepository
	transactionRepo repositories.TransactionRepository
	tx              repositories.Transactor
	cfg             *config.Config
}

// NewAuthService creates a new AuthService implementation
func NewAuthService(userRepo repositories.UserRepository, transactionRepo repositories.TransactionRepository, tx repositories.Transactor, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		tx:              tx,
		cfg:             cfg,
	}
}

// Signup registers a new account and returns the user with a session token.
func (s *AuthServiceImpl) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, string, error) {
	_, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, "", apperrors.E(apperrors.Conflict, "an account with this email already exists")
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", apperrors.Wrap(apperrors.Internal, "failed to check existing account", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.Internal, "failed to hash password", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		UserName:     req.UserName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", apperrors.E(apperrors.Conflict, "an account with this email already exists")
		}
		return nil, "", apperrors.Wrap(apperrors.Internal, "failed to create account", err)
	}

	token, err := utils.GenerateSessionToken(user.Email, s.cfg)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.Internal, "failed to issue session token", err)
	}

	slog.Info("Account created", "email", user.Email)
	return user, token, nil
}

// Signin verifies credentials and returns the user with a session token.
func (s *AuthServiceImpl) Signin(ctx context.Context, req *models.SigninRequest) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Same answer for unknown email and bad password.
		return nil, "", apperrors.E(apperrors.Unauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", apperrors.E(apperrors.Unauthorized, "invalid credentials")
	}

	token, err := utils.GenerateSessionToken(user.Email, s.cfg)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.Internal, "failed to issue session token", err)
	}

	return user, token, nil
}

// GetUser loads the account behind a session.
func (s *AuthServiceImpl) GetUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.NotFound, "user not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "failed to load user", err)
	}
	return user, nil
}

// GetUserByWallet loads the public profile behind a wallet address.
func (s *AuthServiceImpl) GetUserByWallet(ctx context.Context, address string) (*models.User, error) {
	user, err := s.userRepo.FindByWallet(ctx, utils.NormalizeAddress(address))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.NotFound, "user not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "failed to load user", err)
	}
	return user.PublicProfile(), nil
}

// UpdateProfile updates userName and/or the connected wallet. A wallet
// already bound to a different account is rejected.
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, email string, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetUser(ctx, email)
	if err != nil {
		return nil, err
	}

	if req.UserName != "" {
		user.UserName = req.UserName
	}
	if req.WalletAddress != "" {
		wallet := utils.NormalizeAddress(req.WalletAddress)
		existing, err := s.userRepo.FindByWallet(ctx, wallet)
		if err == nil && existing.ID != user.ID {
			return nil, apperrors.E(apperrors.Conflict, "wallet address is connected to another account")
		}
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.Wrap(apperrors.Internal, "failed to check wallet address", err)
		}
		user.WalletAddress = wallet
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.E(apperrors.Conflict, "wallet address is connected to another account")
		}
		return nil, apperrors.Wrap(apperrors.Internal, "failed to update profile", err)
	}
	return user, nil
}

// AdjustBalance applies an explicit credit or debit to the reward ledger.
func (s *AuthServiceImpl) AdjustBalance(ctx context.Context, email string, req *models.BalanceRequest) (*models.User, error) {
	var err error
	switch req.Operation {
	case "credit":
		err = s.userRepo.CreditBalance(ctx, email, req.Amount)
	case "debit":
		err = s.userRepo.DebitBalance(ctx, email, req.Amount)
	default:
		return nil, apperrors.Ef(apperrors.Invalid, "unknown balance operation %q", req.Operation)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.NotFound, "user not found")
		}
		if apperrors.KindOf(err) != apperrors.Internal {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.Internal, "failed to adjust balance", err)
	}

	return s.GetUser(ctx, email)
}

// DeleteAccount removes the account and its ledger entries in one
// transaction. Authored questions and answers stay in place.
func (s *AuthServiceImpl) DeleteAccount(ctx context.Context, email string) error {
	user, err := s.GetUser(ctx, email)
	if err != nil {
		return err
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.transactionRepo.DeleteByEmail(txCtx, email); err != nil {
			return err
		}
		return s.userRepo.Delete(txCtx, user.ID)
	})
	if err != nil {
		return apperrors.Wrap(apperrors.Internal, "failed to delete account", err)
	}

	slog.Info("Account deleted", "email", email)
	return nil
}
