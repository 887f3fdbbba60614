package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const redisKeyPrefix = "leads:ratelimit:"

// redisCmdable is the slice of the redis client the store needs. It keeps the
// store testable without a server.
type redisCmdable interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	PExpire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisStore is a Limiter backed by a shared redis fixed window, for
// deployments with more than one instance behind the load balancer.
type RedisStore struct {
	client   redisCmdable
	requests int64
	window   time.Duration
	log      logrus.FieldLogger
}

// NewRedisStore connects a limiter to redis using a URL of the form
// redis://[:password@]host:port[/db].
func NewRedisStore(redisURL string, requests int, window time.Duration, log logrus.FieldLogger) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return newRedisStore(redis.NewClient(opts), requests, window, log), nil
}

func newRedisStore(client redisCmdable, requests int, window time.Duration, log logrus.FieldLogger) *RedisStore {
	if requests < 1 {
		requests = 1
	}
	return &RedisStore{client: client, requests: int64(requests), window: window, log: log}
}

// Admit implements Limiter. INCR is atomic across instances; the expiry is
// only set when the key is created, so rejected retries never extend the
// window. Redis failures admit the request: losing rate limiting briefly is
// preferable to dropping leads.
func (s *RedisStore) Admit(ctx context.Context, key string, _ time.Time) bool {
	full := redisKeyPrefix + key
	count, err := s.client.Incr(ctx, full).Result()
	if err != nil {
		s.log.WithError(err).Warn("rate limit store unavailable, admitting request")
		return true
	}
	if count == 1 {
		if err := s.client.PExpire(ctx, full, s.window).Err(); err != nil {
			s.log.WithError(err).Warn("failed to set rate limit window expiry")
		}
	}
	return count <= s.requests
}

var _ Limiter = (*RedisStore)(nil)
