// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package database

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/tomtom215/postpulse/internal/config"
)

// dialect holds the per-database differences the gateway cares about.
type dialect struct {
	name        string
	driver      string // database/sql driver name
	placeholder sq.PlaceholderFormat
	maxParams   int // bind parameters allowed in one statement
}

var dialects = map[string]dialect{
	config.DialectSQLite:   {name: config.DialectSQLite, driver: "sqlite", placeholder: sq.Question, maxParams: 32766},
	config.DialectPostgres: {name: config.DialectPostgres, driver: "pgx", placeholder: sq.Dollar, maxParams: 65535},
	config.DialectMySQL:    {name: config.DialectMySQL, driver: "mysql", placeholder: sq.Question, maxParams: 65535},
	config.DialectMSSQL:    {name: config.DialectMSSQL, driver: "sqlserver", placeholder: sq.AtP, maxParams: 2100},
	config.DialectDuckDB:   {name: config.DialectDuckDB, driver: "duckdb", placeholder: sq.Question, maxParams: 65535},
}

func dialectFor(name string) (dialect, error) {
	d, ok := dialects[name]
	if !ok {
		return dialect{}, fmt.Errorf("%w: %q", ErrUnsupportedDialect, name)
	}
	return d, nil
}

// builder returns a squirrel statement builder with the dialect's placeholders.
func (d dialect) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.placeholder)
}

// rowsPerStatement returns how many rows of width columns fit in one INSERT.
func (d dialect) rowsPerStatement(columns int) int {
	if columns <= 0 {
		return 1
	}
	// SQL Server counts every parameter against 2100, keep a margin
	limit := d.maxParams
	if d.name == config.DialectMSSQL {
		limit = 2000
	}
	n := limit / columns
	if n < 1 {
		return 1
	}
	// SQL Server also caps a VALUES list at 1000 rows
	if d.name == config.DialectMSSQL && n > 1000 {
		n = 1000
	}
	return n
}

// lockTableSQL returns a statement that takes a write lock on table for the
// rest of the transaction, or "" when the dialect locks through the MAX(id)
// query itself or not at all.
func (d dialect) lockTableSQL(table string) string {
	if d.name == config.DialectPostgres {
		return "LOCK TABLE " + table + " IN SHARE ROW EXCLUSIVE MODE"
	}
	return ""
}

// maxIDQuery builds SELECT MAX(id) for table. Inside a transaction with
// forUpdate set, the read also blocks concurrent writers until commit.
//
//   - mssql: table hint TABLOCKX, HOLDLOCK
//   - mysql: FOR UPDATE
//   - sqlite: the transaction itself is BEGIN IMMEDIATE (_txlock=immediate)
//   - postgres: LOCK TABLE is issued first
//   - duckdb: optimistic; conflicting writers fail at commit
func (d dialect) maxIDQuery(table string, forUpdate bool) sq.SelectBuilder {
	from := table
	if forUpdate && d.name == config.DialectMSSQL {
		from = table + " WITH (TABLOCKX, HOLDLOCK)"
	}
	q := d.builder().Select("MAX(id)").From(from)
	if forUpdate && d.name == config.DialectMySQL {
		q = q.Suffix("FOR UPDATE")
	}
	return q
}
