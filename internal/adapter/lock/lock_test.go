package lock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/srgjo27/car_rental/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLockerAcquireAndRelease(t *testing.T) {
	db, mock := redismock.NewClientMock()
	locker := NewRedisLocker(db, 5*time.Second)
	locker.newToken = func() string { return "token-1" }

	mock.ExpectSetNX("lock:booking:42", "token-1", 5*time.Second).SetVal(true)
	mock.ExpectEval(releaseScript, []string{"lock:booking:42"}, "token-1").SetVal(int64(1))

	release, err := locker.Acquire(context.Background(), "booking:42")
	require.NoError(t, err)
	release()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLockerHeldElsewhere(t *testing.T) {
	db, mock := redismock.NewClientMock()
	locker := NewRedisLocker(db, 5*time.Second)
	locker.newToken = func() string { return "token-2" }

	mock.ExpectSetNX("lock:booking:42", "token-2", 5*time.Second).SetVal(false)

	release, err := locker.Acquire(context.Background(), "booking:42")
	assert.Nil(t, release)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLockerBackendDown(t *testing.T) {
	db, mock := redismock.NewClientMock()
	locker := NewRedisLocker(db, 5*time.Second)
	locker.newToken = func() string { return "token-3" }

	mock.ExpectSetNX("lock:booking:42", "token-3", 5*time.Second).SetErr(errors.New("connection refused"))

	_, err := locker.Acquire(context.Background(), "booking:42")
	assert.ErrorContains(t, err, "connection refused")
	assert.NotErrorIs(t, err, domain.ErrVersionConflict)
}

func TestKeyedMutexSerialises(t *testing.T) {
	km := NewKeyedMutex()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			release, err := km.Acquire(context.Background(), "booking:1")
			if !assert.NoError(t, err) {
				return
			}

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()

			release()
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, km.size())
}

func TestKeyedMutexHonoursContext(t *testing.T) {
	km := NewKeyedMutex()

	release, err := km.Acquire(context.Background(), "booking:1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = km.Acquire(ctx, "booking:1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := km.Acquire(context.Background(), "booking:2")
	require.NoError(t, err)
	other()

	release()
	assert.Eventually(t, func() bool { return km.size() == 0 }, time.Second, 5*time.Millisecond)
}
