package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/rescue_chain/internal/models"
)

// staleMarker записывается вместо удаления ключа: запись меняет ключ и прерывает WATCH параллельного заполнения
const staleMarker = "stale"

// incidentCache - read-through кэш инцидентов в Redis
type incidentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func newIncidentCache(client *redis.Client, ttl time.Duration) *incidentCache {
	return &incidentCache{client: client, ttl: ttl}
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("incident:%s", id)
}

func (c *incidentCache) get(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	val, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}
	if string(val) == staleMarker {
		return nil, nil
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// set кладет снимок в кэш, только если currentVersion подтверждает, что он не устарел.
// Инвалидация между проверкой и записью прерывает транзакцию, и снимок отбрасывается.
func (c *incidentCache) set(ctx context.Context, incident *models.Incident, currentVersion func(ctx context.Context) (int, error)) error {
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	key := cacheKey(incident.ID)

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		version, err := currentVersion(ctx)
		if err != nil {
			return err
		}
		if version != incident.Version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, val, c.ttl)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

func (c *incidentCache) invalidate(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Set(ctx, cacheKey(id), staleMarker, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}
