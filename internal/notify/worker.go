package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/shenikar/rescue_chain/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	maxStoreAttempts = 3
	popRetryDelay    = time.Second
)

// Worker забирает уведомления из очереди Redis и сохраняет их в бд
type Worker struct {
	redisClient *redis.Client
	repo        service.NotificationRepository
	logger      *logrus.Logger
	baseDelay   time.Duration
}

// NewWorker создает новый Worker
func NewWorker(redisClient *redis.Client, repo service.NotificationRepository, logger *logrus.Logger) *Worker {
	return &Worker{
		redisClient: redisClient,
		repo:        repo,
		logger:      logger,
		baseDelay:   200 * time.Millisecond,
	}
}

// Run обрабатывает очередь до отмены контекста
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("Starting notification worker...")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping notification worker.")
			return nil
		default:
		}

		// BRPOP - блокирующее извлечение из правой части списка, 0 означает бесконечное ожидание
		result, err := w.redisClient.BRPop(ctx, 0, notificationQueueKey).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				continue
			}
			w.logger.WithError(err).Error("Failed to pop notification event from Redis")
			time.Sleep(popRetryDelay)
			continue
		}

		// result[0] - ключ, result[1] - значение
		if err := w.handle(ctx, result[1]); err != nil {
			w.logger.WithError(err).Error("Failed to process notification event")
		}
	}
}

// handle сохраняет одно событие с экспоненциальной задержкой между попытками
func (w *Worker) handle(ctx context.Context, payload string) error {
	var event Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return fmt.Errorf("failed to unmarshal notification event: %w", err)
	}

	log := w.logger.WithFields(logrus.Fields{"notification_id": event.ID, "user_id": event.UserID})
	log.Debug("Processing notification event...")

	notification := &models.Notification{
		ID:        event.ID,
		UserID:    event.UserID,
		Message:   event.Message,
		CreatedAt: event.CreatedAt,
	}

	delay := w.baseDelay
	var err error
	for i := 0; i < maxStoreAttempts; i++ {
		if err = w.repo.Create(ctx, notification); err == nil {
			log.Debug("Notification stored.")
			return nil
		}
		log.WithError(err).Warnf("Failed to store notification. Retrying in %v. Retries left: %d", delay, maxStoreAttempts-1-i)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2 // Экспоненциальная задержка
	}
	return fmt.Errorf("failed to store notification after %d attempts: %w", maxStoreAttempts, err)
}
