// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared across the Artistry API:
server timing, rate limiting windows, token issuing and header names.

Values an operator may want to tune (port, token lifetime, limiter rates)
live in [config.Config] instead.
*/
package constants

import "time"

// # Metadata

const (
	// AppName tags every log line.
	AppName = "artistry-api"

	// Banner is returned by GET / so that a bare probe can identify the service.
	Banner = "Artist Management System Backend"
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle,
	// database work included.
	GlobalRequestTimeout = 30 * time.Second

	// StartupTimeout bounds connecting to PostgreSQL and Redis at boot.
	StartupTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests may run after SIGTERM.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// RateLimitCleanupInterval is how often idle clients are swept from the
	// in-memory limiter.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute

	// RateLimitWindow is the fixed window used by the Redis-backed limiter.
	RateLimitWindow = 1 * time.Second
)

// # Authentication

const (
	// AuthIssuer is the 'iss' claim of every access token.
	AuthIssuer = "artistry.app"

	// BearerScheme is the Authorization header scheme accepted by the access guard.
	BearerScheme = "bearer"
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderRetryAfter    = "Retry-After"
)

// # Readiness Fields

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Redis Prefixes

const (
	RedisPrefixRateLimit = "artistry:ratelimit:"
)
