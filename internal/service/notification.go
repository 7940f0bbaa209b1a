package service

//go:generate mockgen -source=notification.go -destination=mocks/mock_notification_service.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/sirupsen/logrus"
)

const defaultNotificationLimit = 50

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
}

type notificationService struct {
	repo   NotificationRepository
	logger *logrus.Logger
}

func NewNotificationService(repo NotificationRepository, logger *logrus.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

// List возвращает последние уведомления пользователя, новые первыми
func (s *notificationService) List(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Notification, error) {
	if limit <= 0 || limit > defaultNotificationLimit {
		limit = defaultNotificationLimit
	}
	notifications, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to list notifications")
		return nil, fmt.Errorf("service: could not list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead отмечает уведомление прочитанным; чужое уведомление считается ненайденным
func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*models.Notification, error) {
	n, err := s.repo.MarkRead(ctx, notificationID, userID)
	if err != nil {
		return nil, fmt.Errorf("service: could not mark notification read: %w", err)
	}
	return n, nil
}

// MarkAllRead отмечает прочитанными указанные уведомления или все, если ids пуст
func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, userID, ids)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to mark notifications read")
		return 0, fmt.Errorf("service: could not mark notifications read: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"user_id": userID, "updated": updated}).Debug("Notifications marked read")
	return updated, nil
}
