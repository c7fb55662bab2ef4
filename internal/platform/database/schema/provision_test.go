// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_DependencyOrder(t *testing.T) {
	tests := []struct {
		kind Kind
		want []string
	}{
		{KindAdmin, []string{"type gender", "table admin"}},
		{KindUser, []string{"type gender", "table users"}},
		{KindArtist, []string{"type gender", "table artists"}},
		{KindSong, []string{"type gender", "table artists", "type genre", "table songs"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			steps, err := plan(tt.kind)
			require.NoError(t, err)

			names := make([]string, len(steps))
			for i, step := range steps {
				names[i] = step.name
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestPlan_UnknownKind(t *testing.T) {
	_, err := plan(Kind("labels"))
	assert.ErrorContains(t, err, "unknown entity kind")
}

func TestDDL_Shape(t *testing.T) {
	gender := enumDDL(Gender).sql
	assert.Contains(t, gender, "typname = 'gender'")
	assert.Contains(t, gender, "CREATE TYPE gender AS ENUM ('m', 'f', 'o')")

	users := accountDDL(Users).sql
	assert.Contains(t, users, "CREATE TABLE IF NOT EXISTS users")
	assert.Contains(t, users, "email VARCHAR(255) UNIQUE NOT NULL")
	assert.Contains(t, users, "gender gender NOT NULL")

	songs := songDDL().sql
	assert.Contains(t, songs, "genre genre NOT NULL")
	assert.Contains(t, songs, "artist_id INTEGER NOT NULL REFERENCES artists(id) ON DELETE CASCADE")
	assert.False(t, strings.Contains(songs, "%!"), "unfilled format verb in songs DDL")
	assert.False(t, strings.Contains(users, "%!"), "unfilled format verb in users DDL")
}

func TestEnsure_CreatesInOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TYPE gender").WillReturnResult(pgxmock.NewResult("DO", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS artists").WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec("CREATE TYPE genre").WillReturnResult(pgxmock.NewResult("DO", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS songs").WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, NewProvisioner(mock).Ensure(context.Background(), KindSong))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsure_IgnoresConcurrentCreation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// A concurrent request won the race for the enum and the table.
	mock.ExpectExec("CREATE TYPE gender").WillReturnError(&pgconn.PgError{Code: "42710"})
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS admin").WillReturnError(&pgconn.PgError{Code: "23505"})

	require.NoError(t, NewProvisioner(mock).Ensure(context.Background(), KindAdmin))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsure_PropagatesBackendFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	backendErr := errors.New("connection reset")
	mock.ExpectExec("CREATE TYPE gender").WillReturnResult(pgxmock.NewResult("DO", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(backendErr)

	err = NewProvisioner(mock).Ensure(context.Background(), KindUser)

	require.ErrorIs(t, err, backendErr)
	assert.Contains(t, err.Error(), "table users")
	assert.NoError(t, mock.ExpectationsWereMet())
}
