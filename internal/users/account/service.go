// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/artistry/internal/platform/apperr"
	"github.com/taibuivan/artistry/internal/platform/database/schema"
	"github.com/taibuivan/artistry/internal/platform/sec"
	"github.com/taibuivan/artistry/pkg/pagination"
)

// ErrInvalidCredentials is the single answer to a failed login, whatever
// the reason, so the response does not reveal which emails are registered.
var ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")

// # Service Layer

// Service orchestrates account operations for one table.
//
// Request shape is validated by the HTTP layer; the service owns password
// hashing, credential checks and the domain event log.
type Service struct {
	repository Repository
	kind       schema.Kind
	logger     *slog.Logger
}

// NewService constructs a [Service] for accounts of kind.
func NewService(repository Repository, kind schema.Kind, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		kind:       kind,
		logger:     logger.With(slog.String("account_kind", string(kind))),
	}
}

// CreateInput carries a new account with its plain-text password.
type CreateInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
	DOB       string
	Gender    string
	Address   string
}

// List returns one page of accounts and the total count.
func (service *Service) List(ctx context.Context, page pagination.Params) ([]*Account, int64, error) {
	return service.repository.List(ctx, page)
}

/*
Create hashes the password and stores a new account.

Returns:
  - int64: The generated id
  - error: apperr.Conflict on a duplicate email, or storage failures
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (int64, error) {
	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return 0, apperr.Internal(fmt.Errorf("account_service_hash_failed: %w", err))
	}

	id, err := service.repository.Create(ctx, &Account{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		DOB:          input.DOB,
		Gender:       input.Gender,
		Address:      input.Address,
	})
	if err != nil {
		return 0, err
	}

	service.logger.InfoContext(ctx, "account_created", slog.Int64("account_id", id))
	return id, nil
}

// Get returns one account.
func (service *Service) Get(ctx context.Context, id int64) (*Account, error) {
	return service.repository.Get(ctx, id)
}

// Update applies a sparse patch.
func (service *Service) Update(ctx context.Context, id int64, patch Patch) (*Account, error) {
	account, err := service.repository.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "account_updated", slog.Int64("account_id", id))
	return account, nil
}

// Delete removes one account.
func (service *Service) Delete(ctx context.Context, id int64) error {
	if err := service.repository.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "account_deleted", slog.Int64("account_id", id))
	return nil
}

/*
VerifyCredentials returns the account whose email and password match.

Returns:
  - *Account: The matching account, password hash included
  - error: [ErrInvalidCredentials] for an unknown email or a wrong password
*/
func (service *Service) VerifyCredentials(ctx context.Context, email, password string) (*Account, error) {
	account, err := service.repository.FindByEmail(ctx, email)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		service.logger.InfoContext(ctx, "login_password_mismatch", slog.Int64("account_id", account.ID))
		return nil, ErrInvalidCredentials
	}

	return account, nil
}
