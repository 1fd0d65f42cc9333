package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"inspectra_web/internal/adapters/observability"
)

// memSweepThreshold caps the fallback map before an expiry sweep runs.
// Plain TTL expiry, not LRU.
const memSweepThreshold = 1000

// Tiered is a cache with a Redis primary tier and an in-process fallback.
// Any primary-tier error makes Redis absent for that one operation; nothing
// is retried and nothing is surfaced to the caller. A cache miss is never an
// error condition: absence only re-triggers computation upstream.
type Tiered struct {
	rdb *redis.Client // nil means memory-only
	mem *memoryStore
}

type Option func(*Tiered)

// WithClock overrides the time source of the fallback tier. Tests use it to
// advance past TTLs.
func WithClock(now func() time.Time) Option {
	return func(t *Tiered) { t.mem.now = now }
}

func New(addr, pass string, db int, opts ...Option) *Tiered {
	t := &Tiered{mem: newMemoryStore()}
	if addr != "" {
		t.rdb = redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *Tiered) Get(ctx context.Context, key string, dst any) (bool, error) {
	if t.rdb != nil {
		v, err := t.rdb.Get(ctx, key).Bytes()
		switch {
		case err == redis.Nil:
			observability.ObserveCache("redis", "miss")
			return false, nil
		case err == nil:
			if uerr := json.Unmarshal(v, dst); uerr != nil {
				observability.ObserveCache("redis", "miss")
				return false, nil
			}
			observability.ObserveCache("redis", "hit")
			return true, nil
		}
		// fall through to the memory tier on any Redis error
	}
	return t.mem.get(key, dst)
}

func (t *Tiered) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return nil // unserializable values are simply not cached
	}
	if t.rdb != nil {
		if err := t.rdb.Set(ctx, key, b, time.Duration(ttlSec)*time.Second).Err(); err == nil {
			observability.ObserveCache("redis", "set")
			return nil
		}
	}
	t.mem.set(key, b, ttlSec)
	return nil
}

func (t *Tiered) Del(ctx context.Context, key string) error {
	if t.rdb != nil {
		if err := t.rdb.Del(ctx, key).Err(); err == nil {
			observability.ObserveCache("redis", "del")
		}
	}
	t.mem.del(key)
	return nil
}

// ---- in-process fallback tier ----

type memEntry struct {
	value     []byte
	expiresAt time.Time
}

type memoryStore struct {
	mu    sync.Mutex
	items map[string]memEntry
	now   func() time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{items: make(map[string]memEntry), now: time.Now}
}

func (m *memoryStore) get(key string, dst any) (bool, error) {
	m.mu.Lock()
	e, ok := m.items[key]
	if ok && m.now().After(e.expiresAt) {
		delete(m.items, key) // lazy expiry
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	if err := json.Unmarshal(e.value, dst); err != nil {
		return false, nil
	}
	observability.ObserveCache("memory", "hit")
	return true, nil
}

func (m *memoryStore) set(key string, value []byte, ttlSec int) {
	m.mu.Lock()
	m.items[key] = memEntry{value: value, expiresAt: m.now().Add(time.Duration(ttlSec) * time.Second)}
	if len(m.items) > memSweepThreshold {
		now := m.now()
		for k, e := range m.items {
			if now.After(e.expiresAt) {
				delete(m.items, k)
			}
		}
	}
	m.mu.Unlock()
	observability.ObserveCache("memory", "set")
}

func (m *memoryStore) del(key string) {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	observability.ObserveCache("memory", "del")
}
