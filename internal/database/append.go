// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/postpulse/internal/logging"
	"github.com/tomtom215/postpulse/internal/metrics"
)

// Append inserts rows into table. There is no upsert and no deduplication.
// Rows are written with multi-row INSERT statements sized under the
// dialect's bind-parameter limit, all inside one transaction.
func (db *DB) Append(ctx context.Context, table string, columns []string, rows [][]interface{}) (err error) {
	if len(rows) == 0 {
		return nil
	}
	defer observe("append", table, time.Now(), &err)

	if err := db.checkAppend(table, columns, rows); err != nil {
		return err
	}

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	if err := db.inTx(ctx, func(tx *sql.Tx) error {
		return db.appendTx(ctx, tx, table, columns, rows)
	}); err != nil {
		return err
	}

	metrics.RecordRowsWritten(table, len(rows))
	return nil
}

// appendAssigningIDs inserts rows whose first column is "id". Inside one
// transaction it locks table, reads MAX(id)+1 and numbers the rows from
// there, so concurrent writers cannot hand out the same id. It returns the
// first id assigned.
func (db *DB) appendAssigningIDs(ctx context.Context, table string, columns []string, rows [][]interface{}) (first int64, err error) {
	if len(rows) == 0 {
		return 0, nil
	}
	defer observe("append_with_ids", table, time.Now(), &err)

	if len(columns) == 0 || columns[0] != "id" {
		return 0, fmt.Errorf("append with ids: first column must be id")
	}
	if err := db.checkAppend(table, columns, rows); err != nil {
		return 0, err
	}

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	err = db.inTx(ctx, func(tx *sql.Tx) error {
		next, err := db.nextIDTx(ctx, tx, table)
		if err != nil {
			return err
		}
		for i := range rows {
			rows[i][0] = next + int64(i)
		}
		first = next
		return db.appendTx(ctx, tx, table, columns, rows)
	})
	if err != nil {
		return 0, err
	}

	metrics.RecordRowsWritten(table, len(rows))
	return first, nil
}

func (db *DB) checkAppend(table string, columns []string, rows [][]interface{}) error {
	if err := checkIdentifiers(table); err != nil {
		return err
	}
	if err := checkIdentifiers(columns...); err != nil {
		return err
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrColumnMismatch, i, len(row), len(columns))
		}
	}
	return nil
}

// appendTx writes rows in chunks inside tx.
func (db *DB) appendTx(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]interface{}) error {
	per := db.dialect.rowsPerStatement(len(columns))

	for start := 0; start < len(rows); start += per {
		end := start + per
		if end > len(rows) {
			end = len(rows)
		}

		ins := db.sb.Insert(table).Columns(columns...)
		for _, row := range rows[start:end] {
			ins = ins.Values(row...)
		}

		query, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert into %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}

		logging.Ctx(ctx).Debug().
			Str("table", table).
			Int("rows", end-start).
			Msg("Appended rows")
	}
	return nil
}
