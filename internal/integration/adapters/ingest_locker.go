package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/personal-ledger/backend/internal/application/adapter"
)

const (
	ingestLockPrefix   = "ledger:ingest:"
	defaultIngestTTL   = 10 * time.Second
	ingestRetryBackoff = 25 * time.Millisecond
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another writer is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisIngestLocker holds duplicate-check keys in Redis so that several API
// instances share one lock space.
type redisIngestLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisIngestLocker creates an ingest locker backed by Redis.
func NewRedisIngestLocker(client *redis.Client, ttl time.Duration) adapter.IngestLocker {
	if ttl <= 0 {
		ttl = defaultIngestTTL
	}
	return &redisIngestLocker{
		client: client,
		ttl:    ttl,
	}
}

// Lock polls SET NX until the key is ours or ctx is done.
func (l *redisIngestLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := ingestLockPrefix + key
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire ingest lock: %w", err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(ingestRetryBackoff):
		}
	}

	unlock := func() {
		// The caller's ctx may already be cancelled; release must still happen.
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err(); err != nil {
			slog.Warn("Failed to release ingest lock", "key", redisKey, "error", err)
		}
	}
	return unlock, nil
}

// memoryIngestLocker is the single-process fallback used when Redis is disabled.
type memoryIngestLocker struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

// NewMemoryIngestLocker creates an in-process ingest locker.
func NewMemoryIngestLocker() adapter.IngestLocker {
	return &memoryIngestLocker{
		held: make(map[string]chan struct{}),
	}
}

// Lock waits for the holder of key to release it, then takes it.
func (l *memoryIngestLocker) Lock(ctx context.Context, key string) (func(), error) {
	for {
		l.mu.Lock()
		wait, busy := l.held[key]
		if !busy {
			done := make(chan struct{})
			l.held[key] = done
			l.mu.Unlock()

			var once sync.Once
			return func() {
				once.Do(func() {
					l.mu.Lock()
					delete(l.held, key)
					l.mu.Unlock()
					close(done)
				})
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-wait:
		}
	}
}
