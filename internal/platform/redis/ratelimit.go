// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/artistry/internal/platform/constants"
)

// RateLimiter is a fixed-window counter shared by all API instances.
//
// Each client gets one key per window, "artistry:ratelimit:<client>:<window index>".
// The key is incremented on every request and expires with its window, so
// no sweeping is needed.
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter allows limit requests per window for each client.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = constants.RateLimitWindow
	}
	return &RateLimiter{client: client, limit: int64(limit), window: window, now: time.Now}
}

// Allow implements middleware.Limiter.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	now := l.now()
	index := now.UnixNano() / int64(l.window)
	windowKey := fmt.Sprintf("%s%s:%d", constants.RedisPrefixRateLimit, key, index)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, windowKey)
		pipe.Expire(ctx, windowKey, l.window)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("redis: rate limit %s: %w", key, err)
	}

	if incr.Val() > l.limit {
		windowEnd := time.Unix(0, (index+1)*int64(l.window))
		return false, windowEnd.Sub(now), nil
	}

	return true, 0, nil
}
