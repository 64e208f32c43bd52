package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, "gec:"), mr
}

func TestRedis_LockUnlock(t *testing.T) {
	locker, mr := newRedisLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "courrier:c1", 5*time.Second)
	require.NoError(t, err)
	require.NotNil(t, unlock)

	assert.True(t, mr.Exists("gec:lock:courrier:c1"))
	assert.Equal(t, 5*time.Second, mr.TTL("gec:lock:courrier:c1"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("gec:lock:courrier:c1"))
}

func TestRedis_Contention(t *testing.T) {
	locker, _ := newRedisLocker(t)
	ctx := context.Background()

	unlock1, err := locker.Lock(ctx, "courrier:c1", 5*time.Second)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, "courrier:c1", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := locker.Lock(ctx, "courrier:c2", 5*time.Second)
	require.NoError(t, err, "different courriers do not contend")
	require.NoError(t, other(ctx))

	require.NoError(t, unlock1(ctx))

	unlock2, err := locker.Lock(ctx, "courrier:c1", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestRedis_WaitsForRelease(t *testing.T) {
	locker, _ := newRedisLocker(t)
	ctx := context.Background()

	unlock1, err := locker.Lock(ctx, "courrier:c1", 5*time.Second)
	require.NoError(t, err)

	acquired := make(chan error, 1)
	go func() {
		unlock2, err := locker.Lock(ctx, "courrier:c1", 5*time.Second)
		if err == nil {
			err = unlock2(ctx)
		}
		acquired <- err
	}()

	time.Sleep(150 * time.Millisecond)
	require.NoError(t, unlock1(ctx))

	select {
	case err := <-acquired:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("second writer never acquired the lock")
	}
}

func TestRedis_ExpiredLockIsNotReleasedByFormerOwner(t *testing.T) {
	locker, mr := newRedisLocker(t)
	ctx := context.Background()

	unlock1, err := locker.Lock(ctx, "courrier:c1", time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	unlock2, err := locker.Lock(ctx, "courrier:c1", 5*time.Second)
	require.NoError(t, err)

	require.NoError(t, unlock1(ctx))
	assert.True(t, mr.Exists("gec:lock:courrier:c1"), "the new owner keeps the lock")

	require.NoError(t, unlock2(ctx))
	assert.False(t, mr.Exists("gec:lock:courrier:c1"))
}

func TestRedis_BackendDown(t *testing.T) {
	locker, mr := newRedisLocker(t)
	mr.Close()

	_, err := locker.Lock(context.Background(), "courrier:c1", time.Second)

	assert.ErrorIs(t, err, ErrLockAcquire)
}
