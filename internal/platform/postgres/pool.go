// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres owns the PostgreSQL connection pool and the transaction
// executor every Artistry repository writes through.
//
// Repositories depend on the narrow [DBTX] and [Pool] interfaces rather than
// on *pgxpool.Pool, so the same code runs against the pool, a transaction or
// pgxmock in tests.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/artistry/internal/platform/constants"
)

// Pool sizing. Every write holds one connection for a short transaction
// (provisioning DDL runs before it, outside the transaction), and reads are
// single statements, so a small pool serves the four-table workload.
const (
	// maxConns stays well under PostgreSQL's default max_connections (100)
	// so several API replicas can share one server.
	maxConns = 25
	// minConns keeps two warm connections. Idle replicas should not pin
	// more than that on a shared server.
	minConns = 2
	// maxConnLifetime recycles connections so failovers and pgbouncer
	// restarts are picked up within the hour.
	maxConnLifetime = 60 * time.Minute
	maxConnIdleTime = 10 * time.Minute
	// healthCheckPeriod is how often pgxpool drops dead idle connections.
	healthCheckPeriod = 1 * time.Minute
	// connectTimeout bounds dialing one connection, also at startup.
	connectTimeout = 5 * time.Second
	// pingTimeout keeps /ready within its own 2s budget.
	pingTimeout = 2 * time.Second
)

// DBTX is the query surface shared by [*pgxpool.Pool] and [pgx.Tx].
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool is a [DBTX] that can also open transactions. Each Begin acquires one
// pooled connection which is handed back when the transaction ends.
type Pool interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// NewPool connects to dsn (libpq keyword string or postgres:// URL) and
// pings the server before returning. The caller must Close the pool.
func NewPool(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = minConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	// No statement may outlive the request deadline that issued it.
	poolConfig.AfterConnect = func(ctx context.Context, connection *pgx.Conn) error {
		timeoutQuery := fmt.Sprintf("SET statement_timeout = '%ds'", int(constants.GlobalRequestTimeout.Seconds()))
		_, err := connection.Exec(ctx, timeoutQuery)
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	// pgxpool connects lazily; fail at startup instead of on the first request.
	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	stats := pool.Stat()
	logger.Info("postgres_pool_connected",
		slog.Int("max_conns", int(stats.MaxConns())),
		slog.Int("total_conns", int(stats.TotalConns())),
	)

	return pool, nil
}

// Pinger is satisfied by [*pgxpool.Pool].
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping backs the /ready probe. It acquires a connection and round-trips to
// the server within pingTimeout.
func Ping(ctx context.Context, pool Pinger) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}

	return nil
}
