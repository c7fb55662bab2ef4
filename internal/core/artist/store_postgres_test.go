// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artistry/internal/core/artist"
	"github.com/taibuivan/artistry/internal/platform/apperr"
	"github.com/taibuivan/artistry/pkg/pagination"
)

var (
	artistCols  = []string{"id", "name", "dob", "gender", "address", "first_release_year", "no_of_albums_released", "created_at", "updated_at"}
	summaryCols = append(append([]string{}, artistCols...), "songs")
	stamp       = time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
)

func newRepo(t *testing.T) (*artist.PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return artist.NewPostgresRepository(mock), mock
}

func TestList_WithSongCounts(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery("LEFT JOIN songs").WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows(summaryCols).
			AddRow(int64(1), "Nina Simone", "1933-02-21", "f", "Tryon, NC", 1958, 40, stamp, stamp, int64(3)))

	artists, total, err := repo.List(context.Background(), pagination.Params{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, artists, 1)
	assert.Equal(t, int64(3), artists[0].Songs)
	assert.Equal(t, 1958, artists[0].FirstReleaseYear)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_SongsNotProvisioned(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery("LEFT JOIN songs").WillReturnError(&pgconn.PgError{Code: "42P01"})
	mock.ExpectQuery("0::bigint FROM artists").WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows(summaryCols).
			AddRow(int64(1), "Nina Simone", "1933-02-21", "f", "Tryon, NC", 1958, 40, stamp, stamp, int64(0)))

	artists, _, err := repo.List(context.Background(), pagination.Params{Page: 1, Limit: 10})

	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Zero(t, artists[0].Songs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_ArtistsNotProvisioned(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT COUNT").WillReturnError(&pgconn.PgError{Code: "42P01"})

	artists, total, err := repo.List(context.Background(), pagination.Params{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Empty(t, artists)
	assert.Zero(t, total)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("CREATE TYPE gender").WillReturnResult(pgxmock.NewResult("DO", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS artists").WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO artists").
		WithArgs("Nina Simone", "1933-02-21", "f", "Tryon, NC", 1958, 40).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	id, err := repo.Create(context.Background(), &artist.Artist{
		Name: "Nina Simone", DOB: "1933-02-21", Gender: "f", Address: "Tryon, NC",
		FirstReleaseYear: 1958, NoOfAlbumsReleased: 40,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_InsertFailureRollsBack(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("CREATE TYPE gender").WillReturnResult(pgxmock.NewResult("DO", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS artists").WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO artists").WillReturnError(&pgconn.PgError{Code: "22007"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), &artist.Artist{})

	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExists(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT EXISTS").WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").WithArgs(int64(2)).
		WillReturnError(&pgconn.PgError{Code: "42P01"})

	ok, err := repo.Exists(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExists_OutsideKeyRange(t *testing.T) {
	repo, mock := newRepo(t)

	for _, id := range []int64{0, 2147483648, 3000000000} {
		ok, err := repo.Exists(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, ok, "id %d", id)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE artists").
		WillReturnRows(pgxmock.NewRows(artistCols).
			AddRow(int64(1), "Nina Simone", "1933-02-21", "f", "Paris", 1958, 41, stamp, stamp))
	mock.ExpectCommit()

	albums := 41
	updated, err := repo.Update(context.Background(), 1, artist.Patch{NoOfAlbumsReleased: &albums})

	require.NoError(t, err)
	assert.Equal(t, 41, updated.NoOfAlbumsReleased)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_CascadesInOneStatement(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM artists WHERE id").WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM artists").WithArgs(int64(8)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 8)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Artist with ID 8 doesn't exist", ae.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}
