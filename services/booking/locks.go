package booking

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// PropertyLocker serializes availability re-check + write sequences per
// property. It is the mechanism that makes "exactly one of two concurrent
// overlapping requests wins" hold.
type PropertyLocker interface {
	// Lock blocks until the property lock is held or ctx is done. The
	// returned function releases the lock.
	Lock(ctx context.Context, propertyID string) (func(), error)
}

// localPropertyLocker is an in-process keyed mutex. Sufficient for a single
// node and for tests.
type localPropertyLocker struct {
	mu      sync.Mutex
	locks   map[string]*sync.Mutex
	holders map[string]int
}

// NewLocalPropertyLocker returns an in-process PropertyLocker.
func NewLocalPropertyLocker() PropertyLocker {
	return &localPropertyLocker{
		locks:   make(map[string]*sync.Mutex),
		holders: make(map[string]int),
	}
}

func (l *localPropertyLocker) Lock(ctx context.Context, propertyID string) (func(), error) {
	l.mu.Lock()
	m, exists := l.locks[propertyID]
	if !exists {
		m = &sync.Mutex{}
		l.locks[propertyID] = m
	}
	l.holders[propertyID]++
	l.mu.Unlock()

	m.Lock()
	released := false
	return func() {
		if released {
			return
		}
		released = true
		m.Unlock()
		l.mu.Lock()
		l.holders[propertyID]--
		if l.holders[propertyID] == 0 {
			delete(l.locks, propertyID)
			delete(l.holders, propertyID)
		}
		l.mu.Unlock()
	}, nil
}

// redisPropertyLocker is an advisory SETNX lock with a TTL, for multi-node
// deployments where an in-process mutex cannot serialize writers.
type redisPropertyLocker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
}

// NewRedisPropertyLocker returns a Redis-backed PropertyLocker.
func NewRedisPropertyLocker(client *redis.Client) PropertyLocker {
	return &redisPropertyLocker{
		client: client,
		ttl:    10 * time.Second,
		retry:  50 * time.Millisecond,
	}
}

// releaseScript deletes the lock key only if this holder still owns it.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (l *redisPropertyLocker) Lock(ctx context.Context, propertyID string) (func(), error) {
	key := "lock:property:" + propertyID
	token := uuid.New().String()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
	}, nil
}
