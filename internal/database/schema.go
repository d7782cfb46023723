// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/postpulse/internal/config"
	"github.com/tomtom215/postpulse/internal/logging"
)

// columnTypes maps the logical column kinds to dialect types.
type columnTypes struct {
	bigint    string
	smallint  string
	float     string
	timestamp string
	shortText string
	longText  string
}

func (d dialect) columnTypes() columnTypes {
	switch d.name {
	case config.DialectMSSQL:
		return columnTypes{"BIGINT", "SMALLINT", "FLOAT", "DATETIME2", "NVARCHAR(255)", "NVARCHAR(MAX)"}
	case config.DialectMySQL:
		return columnTypes{"BIGINT", "SMALLINT", "DOUBLE", "DATETIME(6)", "VARCHAR(255)", "TEXT"}
	case config.DialectPostgres:
		return columnTypes{"BIGINT", "SMALLINT", "DOUBLE PRECISION", "TIMESTAMP", "VARCHAR(255)", "TEXT"}
	case config.DialectDuckDB:
		return columnTypes{"BIGINT", "SMALLINT", "DOUBLE", "TIMESTAMP", "VARCHAR", "VARCHAR"}
	default: // sqlite
		return columnTypes{"INTEGER", "INTEGER", "REAL", "TIMESTAMP", "TEXT", "TEXT"}
	}
}

// schemaStatements returns the CREATE TABLE statements, posts first
// because sentiment references it.
func (db *DB) schemaStatements() []string {
	ct := db.dialect.columnTypes()
	t := db.tables

	posts := fmt.Sprintf(`(
	id %[1]s NOT NULL PRIMARY KEY,
	created_at %[2]s,
	text %[3]s,
	possibly_sensitive %[4]s NOT NULL,
	hashtags %[3]s,
	user_id %[1]s,
	user_name %[5]s,
	screen_name %[5]s,
	verified %[4]s NOT NULL
)`, ct.bigint, ct.timestamp, ct.longText, ct.smallint, ct.shortText)

	sentiment := fmt.Sprintf(`(
	id %[1]s NOT NULL PRIMARY KEY,
	sentiment %[2]s NOT NULL,
	positive %[3]s NOT NULL,
	neutral %[3]s NOT NULL,
	negative %[3]s NOT NULL,
	post_id %[1]s NOT NULL REFERENCES %[4]s (id)
)`, ct.bigint, ct.shortText, ct.float, t.Posts)

	logs := fmt.Sprintf(`(
	id %[1]s NOT NULL PRIMARY KEY,
	log_type %[2]s NOT NULL,
	log_message %[3]s,
	created_at %[4]s NOT NULL
)`, ct.bigint, ct.shortText, ct.longText, ct.timestamp)

	return []string{
		db.createTableSQL(t.Posts, posts),
		db.createTableSQL(t.Sentiment, sentiment),
		db.createTableSQL(t.Logs, logs),
	}
}

func (db *DB) createTableSQL(table, body string) string {
	if db.dialect.name == config.DialectMSSQL {
		return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NULL CREATE TABLE %s %s", table, table, body)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s %s", table, body)
}

// CreateTables creates the posts, sentiment and logs tables if they do not
// exist. Existing tables are left untouched; there is no migration.
func (db *DB) CreateTables(ctx context.Context) error {
	if err := checkIdentifiers(db.tables.Posts, db.tables.Sentiment, db.tables.Logs); err != nil {
		return err
	}

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	for _, stmt := range db.schemaStatements() {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			name := strings.SplitN(strings.TrimSpace(stmt), "(", 2)[0]
			return fmt.Errorf("failed to create table (%s): %w", strings.TrimSpace(name), err)
		}
	}

	logging.Info().
		Str("posts", db.tables.Posts).
		Str("sentiment", db.tables.Sentiment).
		Str("logs", db.tables.Logs).
		Msg("Tables ensured")
	return nil
}
