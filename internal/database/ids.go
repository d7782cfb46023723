// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// queryRower is satisfied by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// MaxID returns the largest id in table. It returns ErrEmptyTable when the
// table has no rows or MAX(id) does not hold a number.
func (db *DB) MaxID(ctx context.Context, table string) (id int64, err error) {
	defer observe("max_id", table, time.Now(), &err)

	if err := checkIdentifiers(table); err != nil {
		return 0, err
	}

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	return db.maxID(ctx, db.conn, table, false)
}

// NextID returns the id the next appended row of table should get:
// MAX(id)+1, or 0 when the table is empty or MAX(id) is not numeric.
//
// NextID is a plain read. Writers that assign ids use the locked
// transaction in appendAssigningIDs instead.
func (db *DB) NextID(ctx context.Context, table string) (int64, error) {
	id, err := db.MaxID(ctx, table)
	if errors.Is(err, ErrEmptyTable) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id + 1, nil
}

// nextIDTx reads MAX(id)+1 inside tx, holding the dialect's write lock on
// table until the transaction ends.
func (db *DB) nextIDTx(ctx context.Context, tx *sql.Tx, table string) (int64, error) {
	if stmt := db.dialect.lockTableSQL(table); stmt != "" {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return 0, fmt.Errorf("failed to lock table %s: %w", table, err)
		}
	}

	id, err := db.maxID(ctx, tx, table, true)
	if errors.Is(err, ErrEmptyTable) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id + 1, nil
}

func (db *DB) maxID(ctx context.Context, runner queryRower, table string, forUpdate bool) (int64, error) {
	query, args, err := db.dialect.maxIDQuery(table, forUpdate).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build max id query: %w", err)
	}

	var raw interface{}
	if err := runner.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		return 0, fmt.Errorf("failed to query max id of %s: %w", table, err)
	}

	id, ok := toInt64(raw)
	if !ok {
		return 0, ErrEmptyTable
	}
	return id, nil
}

// toInt64 converts a scanned integer column to int64. Drivers return integers,
// floats, or text depending on dialect and column type.
func toInt64(raw interface{}) (int64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case []byte:
		return parseInt64String(string(v))
	case string:
		return parseInt64String(v)
	default:
		return 0, false
	}
}

func parseInt64String(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return toInt64(f)
	}
	return 0, false
}
