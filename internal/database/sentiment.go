// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/postpulse/internal/models"
)

// sentimentColumns is the column order of the sentiment table.
var sentimentColumns = []string{
	"id",
	"sentiment",
	"positive",
	"neutral",
	"negative",
	"post_id",
}

// AppendSentiment stores results with contiguous ids starting at the next
// free id of the sentiment table. Id assignment and the insert share one
// locked transaction. The returned slice carries the assigned ids; the
// input is not modified. An empty input writes nothing.
func (db *DB) AppendSentiment(ctx context.Context, results []models.SentimentResult) ([]models.SentimentResult, error) {
	if len(results) == 0 {
		return nil, nil
	}

	rows := make([][]interface{}, len(results))
	for i := range results {
		r := &results[i]
		rows[i] = []interface{}{int64(0), r.Sentiment, r.Positive, r.Neutral, r.Negative, r.PostID}
	}

	first, err := db.appendAssigningIDs(ctx, db.tables.Sentiment, sentimentColumns, rows)
	if err != nil {
		return nil, fmt.Errorf("append sentiment: %w", err)
	}

	stored := make([]models.SentimentResult, len(results))
	for i := range results {
		stored[i] = results[i]
		stored[i].ID = first + int64(i)
	}
	return stored, nil
}

// ListSentiment returns every sentiment row ordered by id.
func (db *DB) ListSentiment(ctx context.Context) (out []models.SentimentResult, err error) {
	defer observe("list_sentiment", db.tables.Sentiment, time.Now(), &err)

	query, args, err := db.sb.Select(sentimentColumns...).
		From(db.tables.Sentiment).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sentiment query: %w", err)
	}

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sentiment: %w", err)
	}
	defer closeWithLog(rows, nil, "sentiment rows")

	for rows.Next() {
		var r models.SentimentResult
		if err := rows.Scan(&r.ID, &r.Sentiment, &r.Positive, &r.Neutral, &r.Negative, &r.PostID); err != nil {
			return nil, fmt.Errorf("failed to scan sentiment row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sentiment rows: %w", err)
	}
	return out, nil
}
