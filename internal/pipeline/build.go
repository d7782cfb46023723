// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package pipeline

import (
	"context"
	"fmt"

	"github.com/tomtom215/postpulse/internal/audit"
	"github.com/tomtom215/postpulse/internal/config"
	"github.com/tomtom215/postpulse/internal/database"
	"github.com/tomtom215/postpulse/internal/logging"
	"github.com/tomtom215/postpulse/internal/search"
	"github.com/tomtom215/postpulse/internal/sentiment"
)

// Pipeline bundles a Runner with the database it owns.
type Pipeline struct {
	*Runner
	DB *database.DB
}

// New connects to the database and constructs every component from cfg.
// The caller must Close the returned Pipeline.
func New(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	db, err := database.New(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var analyzer SentimentAnalyzer
	if cfg.Sentiment.Enabled {
		provider, err := sentiment.NewProvider(&cfg.Sentiment)
		if err != nil {
			closeQuietly(db)
			return nil, fmt.Errorf("failed to create sentiment provider: %w", err)
		}
		analyzer = sentiment.NewAnalyzer(provider, db, &cfg.Sentiment)
	}

	runner := NewRunner(
		search.NewClient(&cfg.Twitter, &cfg.Search, db),
		db,
		analyzer,
		audit.NewLogger(db),
		Options{
			Query:                cfg.Search.Query,
			FilterSinceLastFetch: cfg.Search.FilterSinceLastFetch,
		},
	)

	logging.Info().
		Str("dialect", cfg.Database.Dialect).
		Bool("sentiment", cfg.Sentiment.Enabled).
		Str("provider", cfg.Sentiment.Provider).
		Msg("Pipeline initialized")

	return &Pipeline{Runner: runner, DB: db}, nil
}

// Close releases the database connection.
func (p *Pipeline) Close() error {
	return p.DB.Close()
}

func closeQuietly(db *database.DB) {
	if err := db.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close database")
	}
}
