package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/rescue_chain/internal/service"
)

const (
	notificationQueueKey = "notification_events"
)

// Event - сообщение в очереди уведомлений
type Event struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// QueueSink - реализация service.Notifier, публикующая уведомления в очередь Redis
type QueueSink struct {
	redisClient *redis.Client
}

var _ service.Notifier = (*QueueSink)(nil)

// NewQueueSink создает новый QueueSink
func NewQueueSink(client *redis.Client) *QueueSink {
	return &QueueSink{
		redisClient: client,
	}
}

// Notify публикует уведомление в очередь. Запись в бд выполняет Worker.
func (p *QueueSink) Notify(ctx context.Context, userID uuid.UUID, message string) error {
	event := Event{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	// LPUSH добавляет событие в левую часть списка, воркер забирает справа
	if err := p.redisClient.LPush(ctx, notificationQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification event to Redis: %w", err)
	}
	return nil
}
