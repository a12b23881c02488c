//go:build integration

package redislock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pet-adoption/internal/domain/pets"

	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func startRedis(t *testing.T) *Locker {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return New(client, 2*time.Second)
}

func TestLocker_ExclusivePerPet(t *testing.T) {
	l := startRedis(t)
	l.wait = 50 * time.Millisecond
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "p1")
	require.NoError(t, err)

	_, err = l.Lock(ctx, "p1")
	require.ErrorIs(t, err, pets.ErrLockBusy)

	// otra mascota no se bloquea
	unlock2, err := l.Lock(ctx, "p2")
	require.NoError(t, err)
	unlock2()

	unlock()
	unlock3, err := l.Lock(ctx, "p1")
	require.NoError(t, err)
	unlock3()
}

func TestLocker_SerializesCriticalSection(t *testing.T) {
	l := startRedis(t)
	l.wait = 5 * time.Second
	ctx := context.Background()

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "p1")
			if err != nil {
				return
			}
			n := inside.Add(1)
			for {
				m := maxInside.Load()
				if n <= m || maxInside.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inside.Add(-1)
			unlock()
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), maxInside.Load())
}
