package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// WindowCounter counts hits per key in fixed windows.
type WindowCounter interface {
	// Hit records one hit and returns the hits so far in the current window,
	// this one included.
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

type memoryWindow struct {
	hits    int64
	resetAt time.Time
}

// MemoryCounter keeps windows in process. Each API instance then enforces
// its own budget.
type MemoryCounter struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
	now     func() time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{windows: map[string]*memoryWindow{}, now: time.Now}
}

func (m *MemoryCounter) Hit(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &memoryWindow{resetAt: now.Add(window)}
		m.windows[key] = w
	}
	w.hits++
	return w.hits, nil
}

// Cleanup drops windows that have closed.
func (m *MemoryCounter) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, key)
		}
	}
}

// RedisCounter shares windows between API instances. A window starts with
// the first hit on a key and ends when the key expires.
type RedisCounter struct {
	client *redis.Client
	prefix string
}

func NewRedisCounter(client *redis.Client, prefix string) *RedisCounter {
	return &RedisCounter{client: client, prefix: prefix}
}

func (r *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	redisKey := r.prefix + key
	hits, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count hit: %w", err)
	}
	if hits == 1 {
		if err := r.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			return 0, fmt.Errorf("failed to open window: %w", err)
		}
	}
	return hits, nil
}
