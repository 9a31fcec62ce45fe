package dedup

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/bookwell-app/booking-api/internal/domain/payment"
)

const (
	redisKeyPrefix   = "webhook:session:"
	placeholderValue = "processing"
)

// RedisCache shares dedup state across processes. The placeholder claim is
// a SETNX with TTL, so expiry keeps working even if a process dies before
// Complete or Forget.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Begin(ctx context.Context, sessionID string) (*payment.Outcome, bool, error) {
	key := redisKeyPrefix + sessionID

	// Two attempts: the entry can vanish between a failed SETNX and the
	// GET when another process forgets it after a failure.
	for range 2 {
		ok, err := c.rdb.SetNX(ctx, key, placeholderValue, c.ttl).Result()
		if err != nil {
			return nil, false, err
		}
		if ok {
			return nil, true, nil
		}

		val, err := c.rdb.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, false, err
		}

		if val == placeholderValue {
			return nil, false, nil
		}

		var out payment.Outcome
		if err := json.Unmarshal([]byte(val), &out); err != nil {
			return nil, false, err
		}
		return &out, false, nil
	}

	return nil, false, nil
}

func (c *RedisCache) Complete(ctx context.Context, sessionID string, out payment.Outcome) error {
	b, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, redisKeyPrefix+sessionID, b, c.ttl).Err()
}

func (c *RedisCache) Forget(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, redisKeyPrefix+sessionID).Err()
}

// Compile-time check
var _ Cache = (*RedisCache)(nil)
