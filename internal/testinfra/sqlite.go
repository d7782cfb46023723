// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package testinfra

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/postpulse/internal/config"
)

// SQLiteConfig returns a database config for a fresh SQLite file in a
// per-test temporary directory, with table creation enabled.
//
// A file is used rather than :memory: so that every pooled connection sees
// the same database.
func SQLiteConfig(t testing.TB) *config.DatabaseConfig {
	t.Helper()

	return &config.DatabaseConfig{
		Dialect:        config.DialectSQLite,
		Path:           filepath.Join(t.TempDir(), "postpulse.db"),
		PostsTable:     "posts",
		SentimentTable: "sentiment",
		LogsTable:      "logs",
		CreateTables:   true,
		QueryTimeout:   10 * time.Second,
	}
}
