// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/artistry/internal/platform/ctxutil"
)

// TxFunc is the unit of work executed inside a transaction. Statements run
// in the order the function issues them.
type TxFunc func(ctx context.Context, tx pgx.Tx) error

// Beginner opens transactions. [*pgxpool.Pool] and [Pool] satisfy it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTransaction runs fn inside a single transaction on one pooled connection.
//
// # Flow
//  1. Begin acquires a connection from the pool.
//  2. fn runs; its statements are never interleaved with another call's.
//  3. Success commits. An error rolls back and the original error is returned.
//     A panic rolls back and is re-raised.
//
// The connection returns to the pool when Commit or Rollback finishes, on
// every exit path.
func WithTransaction(ctx context.Context, db Beginner, fn TxFunc) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin transaction: %w", err)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			rollback(ctx, tx)
			panic(recovered)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		rollback(ctx, tx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit transaction: %w", err)
	}

	return nil
}

// rollback aborts tx even when the request context is already cancelled.
func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "transaction_rollback_failed", slog.Any("error", err))
	}
}
