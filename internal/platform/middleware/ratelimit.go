// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/artistry/internal/platform/apperr"
	"github.com/taibuivan/artistry/internal/platform/constants"
	"github.com/taibuivan/artistry/internal/platform/ctxutil"
	"github.com/taibuivan/artistry/internal/platform/respond"
)

// Limiter decides whether the client identified by key may proceed.
// retryAfter is only meaningful when allowed is false.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// RateLimit rejects requests once the client exhausts its allowance. Clients
// are keyed by [ClientKey].
//
// A limiter error lets the request through: the limiter protects the API,
// it must not take it down.
func RateLimit(limiter Limiter, trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			allowed, retryAfter, err := limiter.Allow(ctx, ClientKey(request, trustProxy))
			if err != nil {
				ctxutil.GetLogger(ctx).WarnContext(ctx, "rate_limiter_unavailable", slog.Any("error", err))
				next.ServeHTTP(writer, request)
				return
			}

			if !allowed {
				seconds := int(math.Ceil(retryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(seconds))
				respond.Error(writer, request, apperr.RateLimited(seconds))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # In-Memory Token Bucket

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per client in process memory.
// It is the limiter used when no shared store is configured.
type MemoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitClient
	rps     rate.Limit
	burst   int
	now     func() time.Time
}

// NewMemoryLimiter starts a limiter and its idle-client sweeper. The sweeper
// stops when ctx is cancelled.
func NewMemoryLimiter(ctx context.Context, rps float64, burst int) *MemoryLimiter {
	limiter := &MemoryLimiter{
		clients: make(map[string]*rateLimitClient),
		rps:     rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}

	go limiter.sweep(ctx)

	return limiter
}

// Allow implements [Limiter]. It never returns an error.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	client, found := l.clients[key]
	if !found {
		client = &rateLimitClient{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = client
	}
	client.lastSeen = now

	reservation := client.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Second, nil
	}

	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay, nil
	}

	return true, 0, nil
}

func (l *MemoryLimiter) sweep(ctx context.Context) {
	ticker := time.NewTicker(constants.RateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evictIdle(l.now())
		case <-ctx.Done():
			return
		}
	}
}

// evictIdle drops clients unseen for longer than the client TTL.
func (l *MemoryLimiter) evictIdle(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, client := range l.clients {
		if now.Sub(client.lastSeen) > constants.RateLimitClientTTL {
			delete(l.clients, key)
		}
	}
}
