// Package ratelimit - ограничение частоты запросов с фиксированным окном по ключу.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// Limiter сообщает, укладывается ли очередной запрос по ключу в лимит
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter делит окно между всеми экземплярами сервиса
type RedisLimiter struct {
	client *redis.Client
	rate   int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, rate int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, rate: rate, window: window}
}

// Allow увеличивает счетчик окна; TTL ставится только при создании ключа
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := fmt.Sprintf("%s%s:%d", keyPrefix, key, time.Now().UnixNano()/int64(l.window))

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.ExpireNX(ctx, windowKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to update rate limit window: %w", err)
	}
	return incr.Val() <= int64(l.rate), nil
}

// MemoryLimiter - лимитер в памяти процесса для режима без Redis
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int
	window   time.Duration
	now      func() time.Time
}

type visitor struct {
	count       int
	windowStart time.Time
}

func NewMemoryLimiter(rate int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
		now:      time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[key]
	if !ok || now.Sub(v.windowStart) >= l.window {
		l.visitors[key] = &visitor{count: 1, windowStart: now}
		l.cleanup(now)
		return true, nil
	}
	v.count++
	return v.count <= l.rate, nil
}

// cleanup удаляет истекшие окна. Вызывается под мьютексом.
func (l *MemoryLimiter) cleanup(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.windowStart) >= l.window {
			delete(l.visitors, key)
		}
	}
}
