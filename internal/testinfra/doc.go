// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

// Package testinfra provides shared test fixtures.
//
// Available without build tags:
//   - SQLiteConfig: a gateway config for a fresh SQLite file under t.TempDir()
//   - MockAPIServer: an httptest server that records requests, standing in
//     for the search API, Azure Text Analytics and the Anthropic API
//
// Behind the integration build tag, testcontainers-go starts real database
// servers so the gateway can be exercised against the dialects used in
// production:
//
//	func TestGateway_Postgres(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, pg)
//
//	    db, err := database.New(ctx, pg.Config())
//	    // ...
//	}
//
// Run them with:
//
//	go test -tags integration ./internal/database/...
//
// Tests are skipped gracefully if Docker is unavailable.
package testinfra
