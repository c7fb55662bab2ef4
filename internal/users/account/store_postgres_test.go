// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artistry/internal/platform/apperr"
	"github.com/taibuivan/artistry/internal/platform/database/schema"
	"github.com/taibuivan/artistry/internal/users/account"
	"github.com/taibuivan/artistry/pkg/pagination"
	"github.com/taibuivan/artistry/pkg/pointer"
)

var (
	publicCols = []string{"id", "first_name", "last_name", "email", "phone", "dob", "gender", "address", "created_at", "updated_at"}
	stamp      = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
)

func newRepo(t *testing.T, kind schema.Kind) (*account.PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return account.NewPostgresRepository(mock, kind), mock
}

func expectProvision(mock pgxmock.PgxPoolIface, table string) {
	mock.ExpectExec("CREATE TYPE gender").WillReturnResult(pgxmock.NewResult("DO", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + table).WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
}

func sampleRow(rows *pgxmock.Rows, id int64) *pgxmock.Rows {
	return rows.AddRow(id, "Nina", "Simone", "nina@example.com", "5551234", "1933-02-21", "f", "Tryon, NC", stamp, stamp)
}

/*
TestCreate_CommitsInsert verifies provisioning precedes a single-transaction insert.
*/
func TestCreate_CommitsInsert(t *testing.T) {
	repo, mock := newRepo(t, schema.KindUser)

	expectProvision(mock, "users")
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Nina", "Simone", "nina@example.com", "hash", "5551234", "1933-02-21", "f", "Tryon, NC").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectCommit()

	id, err := repo.Create(context.Background(), &account.Account{
		FirstName: "Nina", LastName: "Simone", Email: "nina@example.com", PasswordHash: "hash",
		Phone: "5551234", DOB: "1933-02-21", Gender: "f", Address: "Tryon, NC",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestCreate_DuplicateEmail verifies the unique violation is a 409 and the transaction rolls back.
*/
func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newRepo(t, schema.KindAdmin)

	expectProvision(mock, "admin")
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO admin").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "admin_email_key"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), &account.Account{Email: "taken@example.com"})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
	assert.Equal(t, "Admin with the email already exists!", ae.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestCreate_ProvisionFailure verifies nothing is inserted when the DDL fails.
*/
func TestCreate_ProvisionFailure(t *testing.T) {
	repo, mock := newRepo(t, schema.KindUser)

	mock.ExpectExec("CREATE TYPE gender").WillReturnError(&pgconn.PgError{Code: "42501"})

	_, err := repo.Create(context.Background(), &account.Account{})

	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestList_Page verifies ordering, paging arguments and the total.
*/
func TestList_Page(t *testing.T) {
	repo, mock := newRepo(t, schema.KindUser)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(12)))
	mock.ExpectQuery("FROM users").
		WithArgs(10, 10).
		WillReturnRows(sampleRow(sampleRow(pgxmock.NewRows(publicCols), 11), 12))

	accounts, total, err := repo.List(context.Background(), pagination.Params{Page: 2, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, accounts, 2)
	assert.Equal(t, int64(11), accounts[0].ID)
	assert.Equal(t, "1933-02-21", accounts[0].DOB)
	assert.Empty(t, accounts[0].PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestList_Unprovisioned verifies a missing table reads as an empty list.
*/
func TestList_Unprovisioned(t *testing.T) {
	repo, mock := newRepo(t, schema.KindUser)

	mock.ExpectQuery("SELECT COUNT").WillReturnError(&pgconn.PgError{Code: "42P01"})

	accounts, total, err := repo.List(context.Background(), pagination.Params{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Empty(t, accounts)
	assert.NotNil(t, accounts)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestGet_NotFound covers both a missing row and a missing table.
*/
func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepo(t, schema.KindUser)

	mock.ExpectQuery("FROM users WHERE id").WithArgs(int64(404)).
		WillReturnRows(pgxmock.NewRows(publicCols))
	mock.ExpectQuery("FROM users WHERE id").WithArgs(int64(405)).
		WillReturnError(&pgconn.PgError{Code: "42P01"})

	for _, id := range []int64{404, 405} {
		_, err := repo.Get(context.Background(), id)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "User not found", ae.Message)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestUpdate_Sparse verifies the patch commits and returns the stored row.
*/
func TestUpdate_Sparse(t *testing.T) {
	repo, mock := newRepo(t, schema.KindUser)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE users").
		WillReturnRows(sampleRow(pgxmock.NewRows(publicCols), 3))
	mock.ExpectCommit()

	updated, err := repo.Update(context.Background(), 3, account.Patch{Address: pointer.To("Tryon, NC")})

	require.NoError(t, err)
	assert.Equal(t, "Tryon, NC", updated.Address)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestUpdate_Missing verifies an unmatched id is a 404 and nothing is inserted.
*/
func TestUpdate_Missing(t *testing.T) {
	repo, mock := newRepo(t, schema.KindUser)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE users").WillReturnRows(pgxmock.NewRows(publicCols))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 99, account.Patch{})

	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestDelete covers the success and not-found paths.
*/
func TestDelete(t *testing.T) {
	repo, mock := newRepo(t, schema.KindUser)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM users").WithArgs(int64(3)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM users").WithArgs(int64(4)).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	require.NoError(t, repo.Delete(context.Background(), 3))

	err := repo.Delete(context.Background(), 4)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "User with ID 4 doesn't exist", ae.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestFindByEmail_LoadsHash verifies the credential lookup includes the hash.
*/
func TestFindByEmail_LoadsHash(t *testing.T) {
	repo, mock := newRepo(t, schema.KindAdmin)

	cols := append(append([]string{}, publicCols...), "password")
	mock.ExpectQuery("FROM admin WHERE email").WithArgs("nina@example.com").
		WillReturnRows(pgxmock.NewRows(cols).AddRow(
			int64(1), "Nina", "Simone", "nina@example.com", "5551234", "1933-02-21", "f", "Tryon, NC", stamp, stamp, "$2a$10$hash",
		))

	found, err := repo.FindByEmail(context.Background(), "nina@example.com")

	require.NoError(t, err)
	assert.Equal(t, "$2a$10$hash", found.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestNewPostgresRepository_RejectsCatalogKinds verifies only account kinds are accepted.
*/
func TestNewPostgresRepository_RejectsCatalogKinds(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	assert.Panics(t, func() { account.NewPostgresRepository(mock, schema.KindSong) })
}
