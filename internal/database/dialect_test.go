// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package database

import (
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/postpulse/internal/config"
)

func mustDialect(t *testing.T, name string) dialect {
	t.Helper()
	d, err := dialectFor(name)
	if err != nil {
		t.Fatalf("dialectFor(%q): %v", name, err)
	}
	return d
}

func TestDialectFor_Unknown(t *testing.T) {
	_, err := dialectFor("oracle")
	if !errors.Is(err, ErrUnsupportedDialect) {
		t.Errorf("dialectFor(oracle) error = %v, want ErrUnsupportedDialect", err)
	}
}

func TestDialect_Placeholders(t *testing.T) {
	tests := []struct {
		dialect string
		want    string
	}{
		{config.DialectSQLite, "INSERT INTO logs (id,log_type) VALUES (?,?)"},
		{config.DialectMySQL, "INSERT INTO logs (id,log_type) VALUES (?,?)"},
		{config.DialectDuckDB, "INSERT INTO logs (id,log_type) VALUES (?,?)"},
		{config.DialectPostgres, "INSERT INTO logs (id,log_type) VALUES ($1,$2)"},
		{config.DialectMSSQL, "INSERT INTO logs (id,log_type) VALUES (@p1,@p2)"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			d := mustDialect(t, tt.dialect)
			got, _, err := d.builder().Insert("logs").Columns("id", "log_type").Values(1, "INFO").ToSql()
			if err != nil {
				t.Fatalf("ToSql: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDialect_MaxIDQuery(t *testing.T) {
	tests := []struct {
		dialect   string
		forUpdate bool
		want      string
	}{
		{config.DialectSQLite, true, "SELECT MAX(id) FROM sentiment"},
		{config.DialectPostgres, true, "SELECT MAX(id) FROM sentiment"},
		{config.DialectMySQL, false, "SELECT MAX(id) FROM sentiment"},
		{config.DialectMySQL, true, "SELECT MAX(id) FROM sentiment FOR UPDATE"},
		{config.DialectMSSQL, false, "SELECT MAX(id) FROM sentiment"},
		{config.DialectMSSQL, true, "SELECT MAX(id) FROM sentiment WITH (TABLOCKX, HOLDLOCK)"},
	}

	for _, tt := range tests {
		d := mustDialect(t, tt.dialect)
		got, _, err := d.maxIDQuery("sentiment", tt.forUpdate).ToSql()
		if err != nil {
			t.Fatalf("ToSql: %v", err)
		}
		if got != tt.want {
			t.Errorf("%s forUpdate=%v: got %q, want %q", tt.dialect, tt.forUpdate, got, tt.want)
		}
	}
}

func TestDialect_LockTableSQL(t *testing.T) {
	if got := mustDialect(t, config.DialectPostgres).lockTableSQL("logs"); got != "LOCK TABLE logs IN SHARE ROW EXCLUSIVE MODE" {
		t.Errorf("postgres lock = %q", got)
	}
	for _, name := range []string{config.DialectSQLite, config.DialectMySQL, config.DialectMSSQL, config.DialectDuckDB} {
		if got := mustDialect(t, name).lockTableSQL("logs"); got != "" {
			t.Errorf("%s lock = %q, want empty", name, got)
		}
	}
}

func TestDialect_RowsPerStatement(t *testing.T) {
	tests := []struct {
		dialect string
		columns int
		want    int
	}{
		{config.DialectMSSQL, 9, 222},
		{config.DialectMSSQL, 1, 1000},
		{config.DialectPostgres, 9, 7281},
		{config.DialectSQLite, 6, 5461},
		{config.DialectSQLite, 0, 1},
	}

	for _, tt := range tests {
		if got := mustDialect(t, tt.dialect).rowsPerStatement(tt.columns); got != tt.want {
			t.Errorf("%s rowsPerStatement(%d) = %d, want %d", tt.dialect, tt.columns, got, tt.want)
		}
	}
}

func TestDialect_CreateTableSQL(t *testing.T) {
	mssql := &DB{dialect: mustDialect(t, config.DialectMSSQL)}
	if got := mssql.createTableSQL("logs", "(id BIGINT)"); !strings.HasPrefix(got, "IF OBJECT_ID(N'logs', N'U') IS NULL CREATE TABLE logs") {
		t.Errorf("mssql create = %q", got)
	}

	pg := &DB{dialect: mustDialect(t, config.DialectPostgres)}
	if got := pg.createTableSQL("logs", "(id BIGINT)"); got != "CREATE TABLE IF NOT EXISTS logs (id BIGINT)" {
		t.Errorf("postgres create = %q", got)
	}
}

func TestDB_Limit(t *testing.T) {
	mssql := &DB{dialect: mustDialect(t, config.DialectMSSQL)}
	mssql.sb = mssql.dialect.builder()
	got, _, err := mssql.limit(mssql.sb.Select("id").From("logs").OrderBy("id DESC"), 5).ToSql()
	if err != nil {
		t.Fatal(err)
	}
	if got != "SELECT id FROM logs ORDER BY id DESC OFFSET 0 ROWS FETCH NEXT 5 ROWS ONLY" {
		t.Errorf("mssql limit = %q", got)
	}

	lite := &DB{dialect: mustDialect(t, config.DialectSQLite)}
	lite.sb = lite.dialect.builder()
	got, _, err = lite.limit(lite.sb.Select("id").From("logs").OrderBy("id DESC"), 5).ToSql()
	if err != nil {
		t.Fatal(err)
	}
	if got != "SELECT id FROM logs ORDER BY id DESC LIMIT 5" {
		t.Errorf("sqlite limit = %q", got)
	}
}
