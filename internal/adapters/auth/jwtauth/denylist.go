package jwtauth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist guarda los jti revocados (logout / refresh) hasta que expiren.
type Denylist interface {
	Add(ctx context.Context, jti string, ttl time.Duration) error
	Contains(ctx context.Context, jti string) (bool, error)
}

// MemoryDenylist sirve para un solo proceso (dev / tests).
type MemoryDenylist struct {
	mu    sync.Mutex
	items map[string]time.Time
	now   func() time.Time
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{items: map[string]time.Time{}, now: time.Now}
}

func (d *MemoryDenylist) Add(_ context.Context, jti string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for k, until := range d.items {
		if !now.Before(until) {
			delete(d.items, k)
		}
	}
	d.items[jti] = now.Add(ttl)
	return nil
}

func (d *MemoryDenylist) Contains(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	until, ok := d.items[jti]
	if !ok {
		return false, nil
	}
	return d.now().Before(until), nil
}

const redisPrefix = "revoked:"

// RedisDenylist comparte la lista entre réplicas; las claves expiran solas.
type RedisDenylist struct {
	rdb redis.UniversalClient
}

func NewRedisDenylist(rdb redis.UniversalClient) *RedisDenylist {
	return &RedisDenylist{rdb: rdb}
}

func (d *RedisDenylist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	return d.rdb.Set(ctx, redisPrefix+jti, "1", ttl).Err()
}

func (d *RedisDenylist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := d.rdb.Exists(ctx, redisPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// OpenRedis crea el cliente y verifica la conexión.
func OpenRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
