// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package song

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/artistry/internal/platform/apperr"
	"github.com/taibuivan/artistry/internal/platform/database/schema"
	"github.com/taibuivan/artistry/internal/platform/dberr"
	"github.com/taibuivan/artistry/internal/platform/postgres"
	"github.com/taibuivan/artistry/pkg/pagination"
)

// PostgresRepository implements [Repository] over the songs table.
type PostgresRepository struct {
	db          postgres.Pool
	provisioner *schema.Provisioner
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(db postgres.Pool) *PostgresRepository {
	return &PostgresRepository{db: db, provisioner: schema.NewProvisioner(db)}
}

var selectColumns = fmt.Sprintf("%s, %s, %s, %s::text, %s, %s, %s",
	schema.Songs.ID, schema.Songs.Title, schema.Songs.AlbumName, schema.Songs.Genre,
	schema.Songs.ArtistID, schema.Songs.CreatedAt, schema.Songs.UpdatedAt,
)

func scanSong(row pgx.Row, s *Song) error {
	return row.Scan(&s.ID, &s.Title, &s.AlbumName, &s.Genre, &s.ArtistID, &s.CreatedAt, &s.UpdatedAt)
}

func collect(rows pgx.Rows, capacity int) ([]*Song, error) {
	defer rows.Close()

	songs := make([]*Song, 0, capacity)
	for rows.Next() {
		s := &Song{}
		if err := scanSong(rows, s); err != nil {
			return nil, err
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

// List returns an empty page until the first song is written.
func (repository *PostgresRepository) List(ctx context.Context, page pagination.Params) ([]*Song, int64, error) {
	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.Songs.Table)
	if err := repository.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		if dberr.IsUndefinedTable(err) {
			return []*Song{}, 0, nil
		}
		return nil, 0, dberr.Wrap(err, "count_songs")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY %s
		LIMIT $1 OFFSET $2`,
		selectColumns, schema.Songs.Table, schema.Songs.ID,
	)

	rows, err := repository.db.Query(ctx, query, page.Limit, page.Offset())
	if err != nil {
		if dberr.IsUndefinedTable(err) {
			return []*Song{}, 0, nil
		}
		return nil, 0, dberr.Wrap(err, "list_songs")
	}

	songs, err := collect(rows, page.Limit)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "scan_songs")
	}
	return songs, total, nil
}

// ListByArtist does not check that the artist exists; the caller does.
func (repository *PostgresRepository) ListByArtist(ctx context.Context, artistID int64) ([]*Song, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		selectColumns, schema.Songs.Table, schema.Songs.ArtistID, schema.Songs.ID)

	rows, err := repository.db.Query(ctx, query, artistID)
	if err != nil {
		if dberr.IsUndefinedTable(err) {
			return []*Song{}, nil
		}
		return nil, dberr.Wrap(err, "list_artist_songs")
	}

	songs, err := collect(rows, 0)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_artist_songs")
	}
	return songs, nil
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Song, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, schema.Songs.Table, schema.Songs.ID)

	s := &Song{}
	if err := scanSong(repository.db.QueryRow(ctx, query, id), s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || dberr.IsUndefinedTable(err) {
			return nil, apperr.NotFound("Song")
		}
		return nil, dberr.Wrap(err, "get_song")
	}
	return s, nil
}

/*
Create provisions the genre type and songs table (and, transitively, the
artists table) and inserts the song.

A foreign key violation means the artist was deleted after the caller checked
it; it is reported like any other unknown artist.
*/
func (repository *PostgresRepository) Create(ctx context.Context, s *Song) (int64, error) {
	if err := repository.provisioner.Ensure(ctx, schema.KindSong); err != nil {
		return 0, apperr.Internal(err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3::%s, $4)
		RETURNING %s`,
		schema.Songs.Table, schema.Songs.Title, schema.Songs.AlbumName, schema.Songs.Genre, schema.Songs.ArtistID,
		schema.Genre.Name, schema.Songs.ID,
	)

	var id int64
	err := postgres.WithTransaction(ctx, repository.db, func(ctx context.Context, tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, s.Title, s.AlbumName, s.Genre, s.ArtistID).Scan(&id)
	})
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return 0, unknownArtist(s.ArtistID)
		}
		return 0, dberr.Wrap(err, "create_song")
	}

	s.ID = id
	return id, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, id int64, patch Patch) (*Song, error) {
	t := schema.Songs
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = COALESCE($1, %s),
		    %s = COALESCE($2, %s),
		    %s = COALESCE($3::%s, %s),
		    %s = CURRENT_TIMESTAMP
		WHERE %s = $4
		RETURNING %s`,
		t.Table,
		t.Title, t.Title,
		t.AlbumName, t.AlbumName,
		t.Genre, schema.Genre.Name, t.Genre,
		t.UpdatedAt,
		t.ID,
		selectColumns,
	)

	s := &Song{}
	err := postgres.WithTransaction(ctx, repository.db, func(ctx context.Context, tx pgx.Tx) error {
		return scanSong(tx.QueryRow(ctx, query, patch.Title, patch.AlbumName, patch.Genre, id), s)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || dberr.IsUndefinedTable(err) {
			return nil, apperr.NotFound("Song")
		}
		return nil, dberr.Wrap(err, "update_song")
	}
	return s, nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Songs.Table, schema.Songs.ID)

	err := postgres.WithTransaction(ctx, repository.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || dberr.IsUndefinedTable(err) {
			return apperr.NotFoundf("Song with ID %d doesn't exist", id)
		}
		return dberr.Wrap(err, "delete_song")
	}
	return nil
}
