package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "orderform:ratelimit:"

// incrScript increments the counter and starts the window on the first hit.
// The key outlives the period by one millisecond so the reset instant still counts against the window.
var incrScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {count, ttl}
`)

// RedisFixedWindow shares windows between replicas through Redis.
type RedisFixedWindow struct {
	client redis.Scripter
	max    int
	period time.Duration
}

func NewRedisFixedWindow(client redis.Scripter, max int, period time.Duration) *RedisFixedWindow {
	return &RedisFixedWindow{client: client, max: max, period: period}
}

func (l *RedisFixedWindow) Allow(ctx context.Context, key string) (Decision, error) {
	res, err := incrScript.Run(ctx, l.client, []string{redisKeyPrefix + NormalizeKey(key)}, l.period.Milliseconds()+1).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit: %w", err)
	}
	if len(res) != 2 {
		return Decision{}, fmt.Errorf("rate limit: unexpected script reply %v", res)
	}

	count, ttl := int(res[0]), time.Duration(res[1])*time.Millisecond
	if ttl < 0 || ttl > l.period {
		ttl = l.period
	}
	if count > l.max {
		return Decision{Allowed: false, RetryAfter: ttl}, nil
	}
	return Decision{Allowed: true, Remaining: l.max - count}, nil
}
