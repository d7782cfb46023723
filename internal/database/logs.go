// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package database

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/tomtom215/postpulse/internal/config"
	"github.com/tomtom215/postpulse/internal/models"
)

// logColumns is the column order of the logs table.
var logColumns = []string{
	"id",
	"log_type",
	"log_message",
	"created_at",
}

// AppendLog writes one run log row. The id is MAX(id)+1 of the logs table,
// assigned in the same transaction as the insert. The stored entry is
// returned with its id.
func (db *DB) AppendLog(ctx context.Context, entry models.LogEntry) (models.LogEntry, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	entry.CreatedAt = models.NaiveUTC(entry.CreatedAt)

	rows := [][]interface{}{{int64(0), string(entry.LogType), entry.Message, db.encodeTime(entry.CreatedAt)}}

	id, err := db.appendAssigningIDs(ctx, db.tables.Logs, logColumns, rows)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("append log: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// ListLogs returns up to limit of the most recent run log rows, newest
// first. A limit of zero or less returns every row.
func (db *DB) ListLogs(ctx context.Context, limit int) (out []models.LogEntry, err error) {
	defer observe("list_logs", db.tables.Logs, time.Now(), &err)

	q := db.sb.Select(logColumns...).From(db.tables.Logs).OrderBy("id DESC")
	if limit > 0 {
		q = db.limit(q, limit)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build logs query: %w", err)
	}

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer closeWithLog(rows, nil, "log rows")

	for rows.Next() {
		var (
			e         models.LogEntry
			logType   string
			createdAt interface{}
		)
		if err := rows.Scan(&e.ID, &logType, &e.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan log row: %w", err)
		}
		e.LogType = models.LogType(logType)
		if e.CreatedAt, err = decodeTime(createdAt); err != nil {
			return nil, fmt.Errorf("log %d created_at: %w", e.ID, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate log rows: %w", err)
	}
	return out, nil
}

// limit appends a row limit in the dialect's syntax. SQL Server has no
// LIMIT and needs OFFSET/FETCH after ORDER BY.
func (db *DB) limit(q sq.SelectBuilder, n int) sq.SelectBuilder {
	if db.dialect.name == config.DialectMSSQL {
		return q.Suffix(fmt.Sprintf("OFFSET 0 ROWS FETCH NEXT %d ROWS ONLY", n))
	}
	return q.Limit(uint64(n))
}
