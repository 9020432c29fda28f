package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/srgjo27/car_rental/internal/core/domain"
)

const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// RedisLocker serialises work on a key across API instances with SET NX PX.
// A held lock is reported as a conflict immediately; callers do not wait.
type RedisLocker struct {
	client   redis.Cmdable
	ttl      time.Duration
	prefix   string
	newToken func() string
}

func NewRedisLocker(client redis.Cmdable, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}

	return &RedisLocker{
		client:   client,
		ttl:      ttl,
		prefix:   "lock:",
		newToken: uuid.NewString,
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	k := l.prefix + key
	token := l.newToken()

	ok, err := l.client.SetNX(ctx, k, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", k, err)
	}

	if !ok {
		return nil, domain.Errorf(domain.ErrVersionConflict, "Another request is already processing this booking")
	}

	release := func() {
		// Detached from the request so a cancelled caller still frees the key.
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()

		if err := l.client.Eval(rctx, releaseScript, []string{k}, token).Err(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("key", k).Msg("failed to release lock")
		}
	}

	return release, nil
}
