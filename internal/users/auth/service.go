// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements administrator registration and login.

Registration stores a new row in the "admin" table through the account
service; login checks the password and issues a bearer token that unlocks
every protected route.

Architecture:

  - Service: Orchestrates Register and Login.
  - Handler: The public /admin endpoints.

Tokens are stateless HS256 JWTs; there is no session store or refresh flow.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/taibuivan/artistry/internal/platform/apperr"
	"github.com/taibuivan/artistry/internal/users/account"
)

// # Contracts

// TokenIssuer signs access tokens. [sec.TokenService] satisfies it.
type TokenIssuer interface {
	GenerateAccessToken(subject, email string) (string, error)
}

// AdminStore is the subset of [account.Service] the auth flow needs.
type AdminStore interface {
	Create(ctx context.Context, input account.CreateInput) (int64, error)
	VerifyCredentials(ctx context.Context, email, password string) (*account.Account, error)
}

// Service implements the administrator authentication use cases.
type Service struct {
	admins AdminStore
	tokens TokenIssuer
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(admins AdminStore, tokens TokenIssuer, logger *slog.Logger) *Service {
	return &Service{admins: admins, tokens: tokens, logger: logger}
}

// LoginInput holds the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}

/*
Register enrolls a new administrator.

Returns:
  - int64: The new administrator's id
  - error: Conflict when the email is taken, or storage failures
*/
func (service *Service) Register(ctx context.Context, input account.CreateInput) (int64, error) {
	id, err := service.admins.Create(ctx, input)
	if err != nil {
		return 0, err
	}

	service.logger.InfoContext(ctx, "admin_registered", slog.Int64("admin_id", id))
	return id, nil
}

/*
Login verifies the credentials and issues an access token.

Returns:
  - string: A signed bearer token
  - error: [account.ErrInvalidCredentials] on any mismatch
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (string, error) {
	admin, err := service.admins.VerifyCredentials(ctx, input.Email, input.Password)
	if err != nil {
		return "", err
	}

	token, err := service.tokens.GenerateAccessToken(strconv.FormatInt(admin.ID, 10), admin.Email)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("auth_service_sign_failed: %w", err))
	}

	service.logger.InfoContext(ctx, "admin_logged_in", slog.Int64("admin_id", admin.ID))
	return token, nil
}
