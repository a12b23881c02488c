package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-adoption/internal/domain/pets"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix      = "pet-adoption:lock:pet:"
	defaultTTL     = 5 * time.Second
	defaultWait    = 500 * time.Millisecond
	retryInterval  = 25 * time.Millisecond
	releaseTimeout = time.Second
)

// Solo borra la key si el token sigue siendo el nuestro.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker implementa pets.Locker con SET NX PX. El TTL evita locks huérfanos
// si el proceso muere a mitad de una transición.
type Locker struct {
	client redis.UniversalClient
	ttl    time.Duration
	wait   time.Duration
}

func New(client redis.UniversalClient, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Locker{client: client, ttl: ttl, wait: defaultWait}
}

var _ pets.Locker = (*Locker)(nil)

// Lock reintenta hasta l.wait; si no consigue el lock devuelve pets.ErrLockBusy.
func (l *Locker) Lock(ctx context.Context, petID string) (func(), error) {
	key := keyPrefix + petID
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire pet lock: %w", err)
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}
		if time.Now().After(deadline) {
			return nil, pets.ErrLockBusy
		}

		t := time.NewTimer(retryInterval)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, errors.Join(pets.ErrLockBusy, ctx.Err())
		case <-t.C:
		}
	}
}

func (l *Locker) release(key, token string) {
	// contexto propio: el del request puede estar cancelado cuando se libera
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()
	_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
}

// Open crea un cliente desde REDIS_URL. URL vacía => (nil, nil), Redis no configurado.
func Open(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	c := redis.NewClient(opts)
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return c, nil
}
