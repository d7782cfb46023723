// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

/*
Package database is the persistence gateway for PostPulse.

It wraps a database/sql pool for one of five dialects and exposes
append-only writes to three tables: posts, sentiment and logs. Statements
are built with Masterminds/squirrel using each dialect's placeholder style.

# Dialects

	sqlite    modernc.org/sqlite          ?      _txlock=immediate
	postgres  github.com/jackc/pgx/v5     $1     LOCK TABLE ... SHARE ROW EXCLUSIVE
	mysql     github.com/go-sql-driver    ?      SELECT ... FOR UPDATE
	mssql     github.com/microsoft/go-mssqldb  @p1  WITH (TABLOCKX, HOLDLOCK)
	duckdb    github.com/duckdb/duckdb-go/v2   ?  optimistic (build tag !noduckdb)

# Identifiers

Posts carry the id assigned by the search service. Sentiment and log rows
get local ids: MAX(id)+1, or 0 for an empty table. The read of MAX(id) and
the insert run in one transaction under the lock listed above, so two
writers never receive the same id.

# Encoding

Tri-state booleans are stored as 0 (false), 1 (true) and 2 (unknown).
Timestamps are stored as naive UTC wall-clock values with no offset.

# Usage

	db, err := database.New(ctx, &cfg.Database)
	if err != nil {
	    return err
	}
	defer db.Close()

	n, err := db.StorePosts(ctx, posts)
	watermark, ok, err := db.MaxPostID(ctx)
*/
package database
