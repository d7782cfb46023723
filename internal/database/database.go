// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/tomtom215/postpulse/internal/config"
	"github.com/tomtom215/postpulse/internal/logging"
	"github.com/tomtom215/postpulse/internal/metrics"
	"github.com/tomtom215/postpulse/internal/validation"
)

// Tables holds the configured table names.
type Tables struct {
	Posts     string
	Sentiment string
	Logs      string
}

// DB is the persistence gateway. It wraps a database/sql pool for one of the
// supported dialects and exposes append-only writes plus the MAX(id) queries
// used for watermarks and local id assignment.
type DB struct {
	conn         *sql.DB
	dialect      dialect
	sb           sq.StatementBuilderType
	tables       Tables
	queryTimeout time.Duration
}

// New opens the database described by cfg, verifies connectivity and, when
// cfg.CreateTables is set, creates any missing tables.
func New(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	d, err := dialectFor(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	if d.name == config.DialectDuckDB && !duckdbCompiled {
		return nil, fmt.Errorf("%w: duckdb support not compiled in (built with noduckdb)", ErrUnsupportedDialect)
	}

	// Ensure parent directory exists for file databases
	if cfg.IsFileDatabase() && cfg.DSN == "" && cfg.Path != "" && cfg.Path != ":memory:" {
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	conn, err := sql.Open(d.driver, buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", d.name, err)
	}

	db := &DB{
		conn:    conn,
		dialect: d,
		sb:      d.builder(),
		tables: Tables{
			Posts:     cfg.PostsTable,
			Sentiment: cfg.SentimentTable,
			Logs:      cfg.LogsTable,
		},
		queryTimeout: cfg.QueryTimeout,
	}
	db.configureConnectionPool(cfg)

	if err := db.Ping(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to %s database: %w", d.name, err)
	}

	if cfg.CreateTables {
		if err := db.CreateTables(ctx); err != nil {
			closeQuietly(conn)
			return nil, err
		}
	}

	logging.Info().
		Str("dialect", d.name).
		Str("dsn", logging.RedactDSN(buildDSN(cfg))).
		Str("posts_table", cfg.PostsTable).
		Msg("Database connected")

	return db, nil
}

// configureConnectionPool applies pool limits. SQLite gets a single
// connection since it allows one writer at a time.
func (db *DB) configureConnectionPool(cfg *config.DatabaseConfig) {
	if db.dialect.name == config.DialectSQLite {
		db.conn.SetMaxOpenConns(1)
		return
	}
	if cfg.MaxOpenConns > 0 {
		db.conn.SetMaxOpenConns(cfg.MaxOpenConns)
		db.conn.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

// Close closes the connection pool.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Ping verifies the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()
	return db.conn.PingContext(ctx)
}

// Conn returns the underlying SQL database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Dialect returns the dialect name.
func (db *DB) Dialect() string {
	return db.dialect.name
}

// Tables returns the configured table names.
func (db *DB) Tables() Tables {
	return db.tables
}

// withTimeout bounds ctx by the configured query timeout.
func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, db.queryTimeout)
}

// inTx runs fn inside a transaction, committing on success.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			logging.Warn().Err(rbErr).Msg("Failed to roll back transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// checkIdentifiers rejects names that would not be safe to interpolate.
func checkIdentifiers(names ...string) error {
	for _, n := range names {
		if !validation.IsSQLIdentifier(n) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, n)
		}
	}
	return nil
}

// observe records operation duration and outcome. Use with a named error return:
//
//	defer observe("append", table, time.Now(), &err)
func observe(operation, table string, start time.Time, err *error) {
	metrics.RecordDBQuery(operation, table, time.Since(start), *err)
}
