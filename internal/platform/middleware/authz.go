// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/artistry/internal/platform/apperr"
	"github.com/taibuivan/artistry/internal/platform/constants"
	"github.com/taibuivan/artistry/internal/platform/ctxutil"
	"github.com/taibuivan/artistry/internal/platform/respond"
	"github.com/taibuivan/artistry/internal/platform/sec"
)

// Decision is the access guard's verdict on one Authorization header.
type Decision int

const (
	Allow Decision = iota
	DenyMissing
	DenyInvalid
	DenyExpired
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyMissing:
		return "deny_missing"
	case DenyInvalid:
		return "deny_invalid"
	case DenyExpired:
		return "deny_expired"
	}
	return "unknown"
}

// Inspect classifies an Authorization header value.
//
// # Grammar
//
// "Bearer <token>" with a case-insensitive scheme. An absent header or an
// empty token is DenyMissing; any other scheme, or a token that fails
// verification, is DenyInvalid; a correctly signed but expired token is
// DenyExpired. Claims are returned only with Allow.
func Inspect(header string, verifier sec.TokenVerifier) (*sec.AuthClaims, Decision) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, DenyMissing
	}

	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, constants.BearerScheme) {
		return nil, DenyInvalid
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, DenyMissing
	}

	claims, err := verifier.VerifyToken(token)
	switch {
	case err == nil:
		return claims, Allow
	case errors.Is(err, sec.ErrTokenExpired):
		return nil, DenyExpired
	default:
		return nil, DenyInvalid
	}
}

// Authenticate guards every route mounted behind it. Allowed requests carry
// their claims in the context; the rest are answered here:
//
//	DenyMissing → 401 "Missing token"
//	DenyInvalid → 401 "Invalid token"
//	DenyExpired → 403 "Token expired"
func Authenticate(verifier sec.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims, decision := Inspect(request.Header.Get(constants.HeaderAuthorization), verifier)

			switch decision {
			case Allow:
				ctx := ctxutil.WithClaims(request.Context(), claims)
				next.ServeHTTP(writer, request.WithContext(ctx))
				return
			case DenyMissing:
				respond.Error(writer, request, apperr.Unauthorized("Missing token"))
			case DenyExpired:
				respond.Error(writer, request, apperr.Forbidden("Token expired"))
			default:
				respond.Error(writer, request, apperr.Unauthorized("Invalid token"))
			}

			ctxutil.GetLogger(request.Context()).InfoContext(request.Context(), "access_denied",
				slog.String("decision", decision.String()),
			)
		})
	}
}
