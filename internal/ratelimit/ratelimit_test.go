package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryLimiter_AllowsUpToRate(t *testing.T) {
	l := NewMemoryLimiter(5, time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, err := l.Allow(ctx, "user-1")
		assert.NoError(t, err)
		assert.True(t, ok, "request %d should be allowed", i+1)
	}
	ok, _ := l.Allow(ctx, "user-1")
	assert.False(t, ok, "6th request should be denied")

	ok, _ = l.Allow(ctx, "user-2")
	assert.True(t, ok, "keys are limited independently")
}

func TestMemoryLimiter_ResetsAfterWindow(t *testing.T) {
	l := NewMemoryLimiter(2, time.Minute)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	l.Allow(ctx, "k")
	l.Allow(ctx, "k")
	ok, _ := l.Allow(ctx, "k")
	assert.False(t, ok)

	now = now.Add(time.Minute)
	ok, _ = l.Allow(ctx, "k")
	assert.True(t, ok)
}
