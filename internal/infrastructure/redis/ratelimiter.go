package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Fixed-window counter: first hit in a window creates the key with a
// TTL, later hits only increment. Runs as a script so the INCR and the
// PEXPIRE are atomic under concurrent logins.
var fixedWindowScript = goredis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// FixedWindowLimiter rate-limits by key (ip, email) per route.
type FixedWindowLimiter struct {
	client *goredis.Client
	limit  int64
	window time.Duration
}

func NewFixedWindowLimiter(client *goredis.Client, limit int64, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{client: client, limit: limit, window: window}
}

// Allow reports whether this hit is within the limit. Redis errors
// fail open: an unavailable limiter must not take login down with it.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) bool {
	count, err := fixedWindowScript.Run(ctx, l.client,
		[]string{"ratelimit:" + key},
		l.window.Milliseconds(),
	).Int64()
	if err != nil {
		return true
	}
	return count <= l.limit
}
