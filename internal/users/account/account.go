// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages person records: administrators and regular users.

Both live in tables of identical shape ("admin" and "users"), so a single
repository implementation is parameterised by [schema.Kind]. Administrators
are only reachable through register and login; regular users get the full
CRUD surface over HTTP.

# Architecture

  - Entities: Account, Patch (sparse update).
  - Storage: PostgresRepository, one instance per table.
  - Security: Password hashes are stored but never serialised.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/artistry/internal/platform/database/schema"
	"github.com/taibuivan/artistry/pkg/pagination"
)

// # Domain Entities

// Account is one administrator or user row.
type Account struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	DOB          string    `json:"dob"` // YYYY-MM-DD
	Gender       string    `json:"gender"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Patch is a sparse update. A nil field is left untouched; email and
// password cannot be changed through it.
type Patch struct {
	FirstName *string
	LastName  *string
	Phone     *string
	DOB       *string
	Gender    *string
	Address   *string
}

// # Field Names

const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldPhone     = "phone"
	FieldDOB       = "dob"
	FieldGender    = "gender"
	FieldAddress   = "address"
)

// Column widths, mirrored from the table definitions.
const (
	MaxNameLen     = 255
	MaxEmailLen    = 255
	MaxAddressLen  = 255
	MaxPhoneLen    = 20
	MaxPasswordLen = 500
	MinPasswordLen = 8
)

// Label is the human name of the records held in kind's table, used in
// client-facing messages.
func Label(kind schema.Kind) string {
	if kind == schema.KindAdmin {
		return "Admin"
	}
	return "User"
}

// # Repository Contract

// Repository persists accounts of one kind.
type Repository interface {
	// List returns one page ordered by id and the total row count.
	List(ctx context.Context, page pagination.Params) ([]*Account, int64, error)

	// Create inserts account (whose PasswordHash is already set) and returns its id.
	Create(ctx context.Context, account *Account) (int64, error)

	// Get returns the public fields of one account.
	Get(ctx context.Context, id int64) (*Account, error)

	// Update applies patch and returns the stored result.
	Update(ctx context.Context, id int64, patch Patch) (*Account, error)

	// Delete removes one account.
	Delete(ctx context.Context, id int64) error

	// FindByEmail returns the account including its password hash.
	FindByEmail(ctx context.Context, email string) (*Account, error)
}
