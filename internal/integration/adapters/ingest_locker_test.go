package adapters

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/personal-ledger/backend/internal/application/adapter"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

// exerciseMutualExclusion runs several writers on one key and fails if two
// ever hold it at the same time.
func exerciseMutualExclusion(t *testing.T, locker adapter.IngestLocker) {
	t.Helper()

	var inside int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), "same-key")
			if err != nil {
				t.Errorf("expected no error, got %v", err)
				return
			}
			if n := atomic.AddInt32(&inside, 1); n != 1 {
				t.Errorf("expected a single holder, got %d", n)
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()
}

func TestRedisIngestLocker(t *testing.T) {
	// Test the key is stored with the prefix and a TTL, and removed on unlock.
	t.Run("lock sets and releases the key", func(t *testing.T) {
		server, client := newTestRedis(t)
		locker := NewRedisIngestLocker(client, 5*time.Second)

		unlock, err := locker.Lock(context.Background(), "k1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !server.Exists(ingestLockPrefix + "k1") {
			t.Fatal("expected the lock key to exist")
		}
		if ttl := server.TTL(ingestLockPrefix + "k1"); ttl != 5*time.Second {
			t.Errorf("expected ttl 5s, got %s", ttl)
		}

		unlock()
		if server.Exists(ingestLockPrefix + "k1") {
			t.Error("expected the lock key to be released")
		}
	})

	// Test concurrent holders are serialised.
	t.Run("mutual exclusion", func(t *testing.T) {
		_, client := newTestRedis(t)
		exerciseMutualExclusion(t, NewRedisIngestLocker(client, time.Second))
	})

	// Test a waiting caller gives up when its context ends.
	t.Run("context cancellation while waiting", func(t *testing.T) {
		_, client := newTestRedis(t)
		locker := NewRedisIngestLocker(client, time.Minute)

		unlock, err := locker.Lock(context.Background(), "busy")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
		defer cancel()
		if _, err := locker.Lock(ctx, "busy"); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected context.DeadlineExceeded, got %v", err)
		}
	})

	// Test a stale unlock does not remove a lock taken over after expiry.
	t.Run("unlock after expiry keeps the new holder", func(t *testing.T) {
		server, client := newTestRedis(t)
		locker := NewRedisIngestLocker(client, time.Second)

		staleUnlock, err := locker.Lock(context.Background(), "k2")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		server.FastForward(2 * time.Second)

		unlock, err := locker.Lock(context.Background(), "k2")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer unlock()

		staleUnlock()
		if !server.Exists(ingestLockPrefix + "k2") {
			t.Error("expected the new holder's key to survive a stale unlock")
		}
	})

	// Test a zero TTL falls back to the default.
	t.Run("zero ttl uses the default", func(t *testing.T) {
		server, client := newTestRedis(t)
		locker := NewRedisIngestLocker(client, 0)

		unlock, err := locker.Lock(context.Background(), "k3")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer unlock()

		if ttl := server.TTL(ingestLockPrefix + "k3"); ttl != defaultIngestTTL {
			t.Errorf("expected ttl %s, got %s", defaultIngestTTL, ttl)
		}
	})
}

func TestMemoryIngestLocker(t *testing.T) {
	// Test concurrent holders are serialised.
	t.Run("mutual exclusion", func(t *testing.T) {
		exerciseMutualExclusion(t, NewMemoryIngestLocker())
	})

	// Test different keys do not block each other.
	t.Run("independent keys", func(t *testing.T) {
		locker := NewMemoryIngestLocker()

		unlockA, err := locker.Lock(context.Background(), "a")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer unlockA()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		unlockB, err := locker.Lock(ctx, "b")
		if err != nil {
			t.Fatalf("expected key b to be free, got %v", err)
		}
		unlockB()
	})

	// Test a waiting caller gives up when its context ends.
	t.Run("context cancellation while waiting", func(t *testing.T) {
		locker := NewMemoryIngestLocker()

		unlock, err := locker.Lock(context.Background(), "busy")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()
		if _, err := locker.Lock(ctx, "busy"); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected context.DeadlineExceeded, got %v", err)
		}
	})

	// Test unlocking twice is harmless.
	t.Run("double unlock", func(t *testing.T) {
		locker := NewMemoryIngestLocker()

		unlock, err := locker.Lock(context.Background(), "k")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		unlock()
		unlock()

		again, err := locker.Lock(context.Background(), "k")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		again()
	})
}
