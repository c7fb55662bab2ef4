// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

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

// PostgresRepository implements [Repository] over the "admin" or "users" table.
//
// # Write Path
//
// Every mutation provisions the table first (outside the transaction) and
// then runs inside [postgres.WithTransaction], so a failed statement never
// leaves a partial change behind.
type PostgresRepository struct {
	db          postgres.Pool
	provisioner *schema.Provisioner
	table       schema.AccountTable
	label       string
}

// NewPostgresRepository returns the repository for kind, which must be
// [schema.KindAdmin] or [schema.KindUser].
func NewPostgresRepository(db postgres.Pool, kind schema.Kind) *PostgresRepository {
	table, ok := schema.AccountFor(kind)
	if !ok {
		panic(fmt.Sprintf("account: %q is not an account kind", kind))
	}

	return &PostgresRepository{
		db:          db,
		provisioner: schema.NewProvisioner(db),
		table:       table,
		label:       Label(kind),
	}
}

// publicColumns is the projection shared by every read. Dates and enums are
// rendered as text so they scan into plain strings.
func (repository *PostgresRepository) publicColumns() string {
	t := repository.table
	return fmt.Sprintf("%s, %s, %s, %s, %s, to_char(%s, 'YYYY-MM-DD'), %s::text, %s, %s, %s",
		t.ID, t.FirstName, t.LastName, t.Email, t.Phone, t.DOB, t.Gender, t.Address, t.CreatedAt, t.UpdatedAt)
}

func scanAccount(row pgx.Row, account *Account) error {
	return row.Scan(
		&account.ID, &account.FirstName, &account.LastName, &account.Email, &account.Phone,
		&account.DOB, &account.Gender, &account.Address, &account.CreatedAt, &account.UpdatedAt,
	)
}

// # Reads

// List returns an empty page when the table has never been written to.
func (repository *PostgresRepository) List(ctx context.Context, page pagination.Params) ([]*Account, int64, error) {
	t := repository.table

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, t.Table)
	if err := repository.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		if dberr.IsUndefinedTable(err) {
			return []*Account{}, 0, nil
		}
		return nil, 0, dberr.Wrap(err, "count_"+t.Table)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY %s
		LIMIT $1 OFFSET $2`,
		repository.publicColumns(), t.Table, t.ID,
	)

	rows, err := repository.db.Query(ctx, query, page.Limit, page.Offset())
	if err != nil {
		if dberr.IsUndefinedTable(err) {
			return []*Account{}, 0, nil
		}
		return nil, 0, dberr.Wrap(err, "list_"+t.Table)
	}
	defer rows.Close()

	accounts := make([]*Account, 0, page.Limit)
	for rows.Next() {
		account := &Account{}
		if err := scanAccount(rows, account); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_"+t.Table)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_"+t.Table)
	}

	return accounts, total, nil
}

// Get returns 404 for a missing row and for a table that does not exist yet.
func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Account, error) {
	t := repository.table
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, repository.publicColumns(), t.Table, t.ID)

	account := &Account{}
	if err := scanAccount(repository.db.QueryRow(ctx, query, id), account); err != nil {
		return nil, repository.readError(err, "get_"+t.Table)
	}

	return account, nil
}

// FindByEmail also loads the password hash, for credential checks only.
func (repository *PostgresRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	t := repository.table
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		repository.publicColumns(), t.Password, t.Table, t.Email)

	account := &Account{}
	err := repository.db.QueryRow(ctx, query, email).Scan(
		&account.ID, &account.FirstName, &account.LastName, &account.Email, &account.Phone,
		&account.DOB, &account.Gender, &account.Address, &account.CreatedAt, &account.UpdatedAt,
		&account.PasswordHash,
	)
	if err != nil {
		return nil, repository.readError(err, "find_"+t.Table+"_by_email")
	}

	return account, nil
}

func (repository *PostgresRepository) readError(err error, action string) error {
	if errors.Is(err, pgx.ErrNoRows) || dberr.IsUndefinedTable(err) {
		return apperr.NotFound(repository.label)
	}
	return dberr.Wrap(err, action)
}

// # Writes

// Create provisions the table on first use and inserts account.
func (repository *PostgresRepository) Create(ctx context.Context, account *Account) (int64, error) {
	t := repository.table

	if err := repository.provisioner.Ensure(ctx, t.Kind); err != nil {
		return 0, apperr.Internal(err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7::%s, $8)
		RETURNING %s`,
		t.Table, t.FirstName, t.LastName, t.Email, t.Password, t.Phone, t.DOB, t.Gender, t.Address,
		schema.Gender.Name, t.ID,
	)

	var id int64
	err := postgres.WithTransaction(ctx, repository.db, func(ctx context.Context, tx pgx.Tx) error {
		return tx.QueryRow(ctx, query,
			account.FirstName, account.LastName, account.Email, account.PasswordHash,
			account.Phone, account.DOB, account.Gender, account.Address,
		).Scan(&id)
	})
	if err != nil {
		if dberr.IsUniqueViolation(err, t.EmailKey) {
			return 0, apperr.Conflict(repository.label + " with the email already exists!")
		}
		return 0, dberr.Wrap(err, "create_"+t.Table)
	}

	account.ID = id
	return id, nil
}

// Update never inserts: an id that matches nothing is a 404.
func (repository *PostgresRepository) Update(ctx context.Context, id int64, patch Patch) (*Account, error) {
	t := repository.table
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = COALESCE($1, %s),
		    %s = COALESCE($2, %s),
		    %s = COALESCE($3, %s),
		    %s = COALESCE($4::date, %s),
		    %s = COALESCE($5::%s, %s),
		    %s = COALESCE($6, %s),
		    %s = CURRENT_TIMESTAMP
		WHERE %s = $7
		RETURNING %s`,
		t.Table,
		t.FirstName, t.FirstName,
		t.LastName, t.LastName,
		t.Phone, t.Phone,
		t.DOB, t.DOB,
		t.Gender, schema.Gender.Name, t.Gender,
		t.Address, t.Address,
		t.UpdatedAt,
		t.ID,
		repository.publicColumns(),
	)

	account := &Account{}
	err := postgres.WithTransaction(ctx, repository.db, func(ctx context.Context, tx pgx.Tx) error {
		return scanAccount(tx.QueryRow(ctx, query,
			patch.FirstName, patch.LastName, patch.Phone, patch.DOB, patch.Gender, patch.Address, id,
		), account)
	})
	if err != nil {
		return nil, repository.readError(err, "update_"+t.Table)
	}

	return account, nil
}

// Delete reports 404 when nothing matched.
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	t := repository.table
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

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
			return apperr.NotFoundf("%s with ID %d doesn't exist", repository.label, id)
		}
		return dberr.Wrap(err, "delete_"+t.Table)
	}

	return nil
}
