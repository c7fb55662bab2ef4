// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// The unexported key type keeps these values from colliding with string keys
// set by other packages on the same [context.Context].
package ctxkey

type key string

const (
	// KeyRequestID holds the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyClaims holds the verified bearer token claims ([sec.AuthClaims]).
	KeyClaims key = "claims"

	// KeyLogger holds the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
