// Package notify доставляет уведомления пользователям: через очередь Redis или напрямую в хранилище.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/shenikar/rescue_chain/internal/service"
)

// DirectSink пишет уведомление в хранилище синхронно, без очереди
type DirectSink struct {
	repo service.NotificationRepository
}

var _ service.Notifier = (*DirectSink)(nil)

func NewDirectSink(repo service.NotificationRepository) *DirectSink {
	return &DirectSink{repo: repo}
}

func (s *DirectSink) Notify(ctx context.Context, userID uuid.UUID, message string) error {
	n := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}
