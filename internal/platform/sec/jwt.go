// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides the credential primitives: password hashing and
// bearer token issuance and verification.
//
// # Tokens
//
// Access tokens are HS256 JWTs signed with the shared SECRET_KEY. They carry
// the administrator's email, the account id as subject and a random jti, and
// expire one TokenTTL after issuance. Nothing is stored server side.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired means the token was well formed and correctly signed
	// but its exp claim is in the past.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenInvalid covers every other verification failure: bad signature,
	// unexpected algorithm, wrong issuer or a malformed token.
	ErrTokenInvalid = errors.New("sec: invalid token")
)

// AuthClaims is the payload embedded inside an access token.
type AuthClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
}

// TokenVerifier is what the access guard depends on.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*AuthClaims, error)
}

// TokenService signs and verifies access tokens.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a [TokenService].
type Option func(*TokenService)

// WithClock replaces time.Now for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService creates a TokenService for the given shared secret.
func NewTokenService(secret, issuer string, ttl time.Duration, opts ...Option) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: empty signing secret")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("sec: token ttl must be positive, got %s", ttl)
	}

	service := &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// GenerateAccessToken issues a signed token for the account identified by
// subject and email.
func (service *TokenService) GenerateAccessToken(subject, email string) (string, error) {
	issuedAt := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(service.ttl)),
			ID:        uuid.NewString(),
		},
		Email: email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken checks the signature, algorithm, issuer and expiry of
// tokenString. The returned error is always [ErrTokenExpired] or
// [ErrTokenInvalid], wrapping the parser's reason.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return service.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
