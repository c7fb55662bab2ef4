// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/artistry/internal/platform/apperr"
	"github.com/taibuivan/artistry/internal/platform/database/schema"
	"github.com/taibuivan/artistry/internal/platform/dberr"
	"github.com/taibuivan/artistry/internal/platform/postgres"
	"github.com/taibuivan/artistry/pkg/convert"
	"github.com/taibuivan/artistry/pkg/pagination"
)

type PostgresRepository struct {
	db          postgres.Pool
	provisioner *schema.Provisioner
}

func NewPostgresRepository(db postgres.Pool) *PostgresRepository {
	return &PostgresRepository{db: db, provisioner: schema.NewProvisioner(db)}
}

// columns renders the artist projection, qualified with alias when set.
func columns(alias string) string {
	a := schema.Artists
	q := func(col string) string {
		if alias == "" {
			return col
		}
		return alias + "." + col
	}
	return fmt.Sprintf("%s, %s, to_char(%s, 'YYYY-MM-DD'), %s::text, %s, %s, %s, %s, %s",
		q(a.ID), q(a.Name), q(a.DOB), q(a.Gender), q(a.Address),
		q(a.FirstReleaseYear), q(a.NoOfAlbumsReleased), q(a.CreatedAt), q(a.UpdatedAt))
}

func scanArtist(row pgx.Row, a *Artist, extra ...any) error {
	dest := []any{
		&a.ID, &a.Name, &a.DOB, &a.Gender, &a.Address,
		&a.FirstReleaseYear, &a.NoOfAlbumsReleased, &a.CreatedAt, &a.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

/*
List returns one page of artists with their song counts.

Before the first artist is created the page is empty. Before the first song
is created every count is 0.
*/
func (repository *PostgresRepository) List(ctx context.Context, page pagination.Params) ([]*Summary, int64, error) {
	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.Artists.Table)
	if err := repository.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		if dberr.IsUndefinedTable(err) {
			return []*Summary{}, 0, nil
		}
		return nil, 0, dberr.Wrap(err, "count_artists")
	}

	joined := fmt.Sprintf(`
		SELECT %s, COUNT(s.%s)
		FROM %s a
		LEFT JOIN %s s ON s.%s = a.%s
		GROUP BY a.%s
		ORDER BY a.%s
		LIMIT $1 OFFSET $2`,
		columns("a"), schema.Songs.ID,
		schema.Artists.Table,
		schema.Songs.Table, schema.Songs.ArtistID, schema.Artists.ID,
		schema.Artists.ID,
		schema.Artists.ID,
	)

	rows, err := repository.db.Query(ctx, joined, page.Limit, page.Offset())
	if dberr.IsUndefinedTable(err) {
		// songs is not provisioned yet.
		plain := fmt.Sprintf(`SELECT %s, 0::bigint FROM %s ORDER BY %s LIMIT $1 OFFSET $2`,
			columns(""), schema.Artists.Table, schema.Artists.ID)
		rows, err = repository.db.Query(ctx, plain, page.Limit, page.Offset())
	}
	if err != nil {
		if dberr.IsUndefinedTable(err) {
			return []*Summary{}, 0, nil
		}
		return nil, 0, dberr.Wrap(err, "list_artists")
	}
	defer rows.Close()

	summaries := make([]*Summary, 0, page.Limit)
	for rows.Next() {
		s := &Summary{}
		if err := scanArtist(rows, &s.Artist, &s.Songs); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_artist")
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_artists")
	}

	return summaries, total, nil
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Artist, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, columns(""), schema.Artists.Table, schema.Artists.ID)

	a := &Artist{}
	if err := scanArtist(repository.db.QueryRow(ctx, query, id), a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || dberr.IsUndefinedTable(err) {
			return nil, apperr.NotFound("Artist")
		}
		return nil, dberr.Wrap(err, "get_artist")
	}
	return a, nil
}

// Exists treats a missing artists table as an empty one. An id outside the
// SERIAL range names no artist and is answered without a query.
func (repository *PostgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if id < 1 || id > convert.MaxID {
		return false, nil
	}

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.Artists.Table, schema.Artists.ID)

	var exists bool
	if err := repository.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		if dberr.IsUndefinedTable(err) {
			return false, nil
		}
		return false, dberr.Wrap(err, "artist_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, a *Artist) (int64, error) {
	if err := repository.provisioner.Ensure(ctx, schema.KindArtist); err != nil {
		return 0, apperr.Internal(err)
	}

	t := schema.Artists
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2::date, $3::%s, $4, $5, $6)
		RETURNING %s`,
		t.Table, t.Name, t.DOB, t.Gender, t.Address, t.FirstReleaseYear, t.NoOfAlbumsReleased,
		schema.Gender.Name, t.ID,
	)

	var id int64
	err := postgres.WithTransaction(ctx, repository.db, func(ctx context.Context, tx pgx.Tx) error {
		return tx.QueryRow(ctx, query,
			a.Name, a.DOB, a.Gender, a.Address, a.FirstReleaseYear, a.NoOfAlbumsReleased,
		).Scan(&id)
	})
	if err != nil {
		return 0, dberr.Wrap(err, "create_artist")
	}

	a.ID = id
	return id, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, id int64, patch Patch) (*Artist, error) {
	t := schema.Artists
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = COALESCE($1, %s),
		    %s = COALESCE($2::date, %s),
		    %s = COALESCE($3::%s, %s),
		    %s = COALESCE($4, %s),
		    %s = COALESCE($5, %s),
		    %s = COALESCE($6, %s),
		    %s = CURRENT_TIMESTAMP
		WHERE %s = $7
		RETURNING %s`,
		t.Table,
		t.Name, t.Name,
		t.DOB, t.DOB,
		t.Gender, schema.Gender.Name, t.Gender,
		t.Address, t.Address,
		t.FirstReleaseYear, t.FirstReleaseYear,
		t.NoOfAlbumsReleased, t.NoOfAlbumsReleased,
		t.UpdatedAt,
		t.ID,
		columns(""),
	)

	a := &Artist{}
	err := postgres.WithTransaction(ctx, repository.db, func(ctx context.Context, tx pgx.Tx) error {
		return scanArtist(tx.QueryRow(ctx, query,
			patch.Name, patch.DOB, patch.Gender, patch.Address,
			patch.FirstReleaseYear, patch.NoOfAlbumsReleased, id,
		), a)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || dberr.IsUndefinedTable(err) {
			return nil, apperr.NotFound("Artist")
		}
		return nil, dberr.Wrap(err, "update_artist")
	}
	return a, nil
}

// Delete also removes the artist's songs through ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Artists.Table, schema.Artists.ID)

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
			return apperr.NotFoundf("Artist with ID %d doesn't exist", id)
		}
		return dberr.Wrap(err, "delete_artist")
	}
	return nil
}
