package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/shenikar/rescue_chain/internal/service"
)

// NotificationStore хранит уведомления в порядке создания
type NotificationStore struct {
	mu    sync.Mutex
	items []*models.Notification
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{}
}

var _ service.NotificationRepository = (*NotificationStore)(nil)

func (s *NotificationStore) Create(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *n
	s.items = append(s.items, &c)
	return nil
}

func (s *NotificationStore) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*models.Notification, 0)
	for i := len(s.items) - 1; i >= 0 && (limit <= 0 || len(result) < limit); i-- {
		if s.items[i].UserID == userID {
			c := *s.items[i]
			result = append(result, &c)
		}
	}
	return result, nil
}

func (s *NotificationStore) MarkRead(_ context.Context, id, userID uuid.UUID) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.items {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			c := *n
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: notification %s", service.ErrNotFound, id)
}

func (s *NotificationStore) MarkAllRead(_ context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var updated int64
	for _, n := range s.items {
		if n.UserID != userID || n.Read {
			continue
		}
		if len(wanted) > 0 {
			if _, ok := wanted[n.ID]; !ok {
				continue
			}
		}
		n.Read = true
		updated++
	}
	return updated, nil
}
