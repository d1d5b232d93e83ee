package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wakqa-labs/wakqa-backend/internal/apperrors"
	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/repositories"
)

// Compile-time check to ensure BookmarkServiceImpl implements BookmarkService
var _ BookmarkService = (*BookmarkServiceImpl)(nil)

type BookmarkServiceImpl struct {
	bookmarkRepo repositories.BookmarkRepository
	questionRepo repositories.QuestionRepository
	userRepo     repositories.UserRepository
}

// NewBookmarkService creates a new BookmarkService implementation
func NewBookmarkService(bookmarkRepo repositories.BookmarkRepository, questionRepo repositories.QuestionRepository, userRepo repositories.UserRepository) *BookmarkServiceImpl {
	return &BookmarkServiceImpl{
		bookmarkRepo: bookmarkRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
	}
}

// Add bookmarks a question for the session user. Bookmarking the same
// question twice succeeds without creating a second row.
func (s *BookmarkServiceImpl) Add(ctx context.Context, email, questionID string) error {
	wallet, err := s.wallet(ctx, email)
	if err != nil {
		return err
	}

	if _, err := s.questionRepo.FindByQuestionID(ctx, questionID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.E(apperrors.NotFound, "question not found")
		}
		return apperrors.Wrap(apperrors.Internal, "failed to load question", err)
	}

	_, err = s.bookmarkRepo.Add(ctx, &models.Bookmark{
		QuestionID:  questionID,
		UserAddress: wallet,
	})
	if err != nil {
		return apperrors.Wrap(apperrors.Internal, "failed to add bookmark", err)
	}
	return nil
}

// Remove deletes a bookmark
func (s *BookmarkServiceImpl) Remove(ctx context.Context, email, questionID string) error {
	wallet, err := s.wallet(ctx, email)
	if err != nil {
		return err
	}

	if err := s.bookmarkRepo.Remove(ctx, questionID, wallet); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.E(apperrors.NotFound, "bookmark not found")
		}
		return apperrors.Wrap(apperrors.Internal, "failed to remove bookmark", err)
	}
	return nil
}

// List returns the session user's bookmarks newest first
func (s *BookmarkServiceImpl) List(ctx context.Context, email string) ([]*models.Bookmark, error) {
	wallet, err := s.wallet(ctx, email)
	if err != nil {
		return nil, err
	}

	bookmarks, err := s.bookmarkRepo.FindByUser(ctx, wallet)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "failed to list bookmarks", err)
	}
	return bookmarks, nil
}

func (s *BookmarkServiceImpl) wallet(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", apperrors.E(apperrors.NotFound, "user not found")
		}
		return "", apperrors.Wrap(apperrors.Internal, "failed to load user", err)
	}
	if user.WalletAddress == "" {
		return "", apperrors.E(apperrors.Invalid, "a connected wallet is required for bookmarks")
	}
	return user.WalletAddress, nil
}
