package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/wakqa-labs/wakqa-backend/internal/apperrors"
	"github.com/wakqa-labs/wakqa-backend/internal/models"
	"github.com/wakqa-labs/wakqa-backend/internal/repositories"
)

// Compile-time check to ensure NotificationServiceImpl implements NotificationService
var _ NotificationService = (*NotificationServiceImpl)(nil)

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
	now              func() time.Time
}

// NewNotificationService creates a new NotificationService implementation
func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

// List returns the user's notifications, purging expired read ones first.
// The purge is opportunistic; its failure does not fail the read.
func (s *NotificationServiceImpl) List(ctx context.Context, email string) ([]*models.Notification, error) {
	cutoff := s.now().Add(-models.NotificationTTL)
	if _, err := s.notificationRepo.PurgeExpired(ctx, cutoff); err != nil {
		slog.Warn("Failed to purge expired notifications", "error", err)
	}

	notifications, err := s.notificationRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, "failed to list notifications", err)
	}
	return notifications, nil
}

// MarkRead marks one of the user's notifications read
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, email, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.E(apperrors.Invalid, "invalid notification id")
	}

	if err := s.notificationRepo.MarkRead(ctx, oid, email); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.E(apperrors.NotFound, "notification not found")
		}
		return apperrors.Wrap(apperrors.Internal, "failed to mark notification read", err)
	}
	return nil
}

// MarkAllRead marks all of the user's notifications read
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, email string) error {
	if err := s.notificationRepo.MarkAllRead(ctx, email); err != nil {
		return apperrors.Wrap(apperrors.Internal, "failed to mark notifications read", err)
	}
	return nil
}

// Notify persists a notification for a user
func (s *NotificationServiceImpl) Notify(ctx context.Context, notification *models.Notification) error {
	if notification.UserEmail == "" {
		return apperrors.E(apperrors.Invalid, "notification target email is required")
	}
	return s.notificationRepo.Create(ctx, notification)
}
