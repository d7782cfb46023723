// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/tomtom215/postpulse/internal/models"
)

// ErrNotFound is returned by single-row reads that match nothing.
var ErrNotFound = errors.New("not found")

// postColumns is the column order of the posts table.
var postColumns = []string{
	"id",
	"created_at",
	"text",
	"possibly_sensitive",
	"hashtags",
	"user_id",
	"user_name",
	"screen_name",
	"verified",
}

// StorePosts appends posts to the posts table and returns the number written.
// Tri-state booleans are written as 0, 1 or 2 and timestamps as naive UTC.
// An empty slice issues no statement.
func (db *DB) StorePosts(ctx context.Context, posts []models.Post) (int, error) {
	if len(posts) == 0 {
		return 0, nil
	}

	rows := make([][]interface{}, len(posts))
	for i := range posts {
		rows[i] = db.encodePost(&posts[i])
	}

	if err := db.Append(ctx, db.tables.Posts, postColumns, rows); err != nil {
		return 0, fmt.Errorf("store posts: %w", err)
	}
	return len(posts), nil
}

func (db *DB) encodePost(p *models.Post) []interface{} {
	return []interface{}{
		p.ID,
		db.encodeTime(p.CreatedAt),
		p.Text,
		triStateValue(p.PossiblySensitive),
		p.Hashtags,
		p.UserID,
		p.UserName,
		p.ScreenName,
		triStateValue(p.Verified),
	}
}

// MaxPostID returns the incremental-fetch watermark: the largest stored
// post id. ok is false when the posts table is empty.
func (db *DB) MaxPostID(ctx context.Context) (id int64, ok bool, err error) {
	id, err = db.MaxID(ctx, db.tables.Posts)
	if errors.Is(err, ErrEmptyTable) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// GetPost reads one post back by id.
func (db *DB) GetPost(ctx context.Context, id int64) (post *models.Post, err error) {
	defer observe("get_post", db.tables.Posts, time.Now(), &err)

	query, args, err := db.sb.Select(postColumns...).
		From(db.tables.Posts).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build post query: %w", err)
	}

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var (
		p                         models.Post
		createdAt, sens, verified interface{}
	)
	err = db.conn.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &createdAt, &p.Text, &sens, &p.Hashtags,
		&p.UserID, &p.UserName, &p.ScreenName, &verified,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read post %d: %w", id, err)
	}

	if p.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, fmt.Errorf("post %d created_at: %w", id, err)
	}
	p.PossiblySensitive = decodeTriState(sens)
	p.Verified = decodeTriState(verified)

	return &p, nil
}

// CountRows returns the number of rows in table.
func (db *DB) CountRows(ctx context.Context, table string) (n int64, err error) {
	defer observe("count", table, time.Now(), &err)

	if err := checkIdentifiers(table); err != nil {
		return 0, err
	}

	query, args, err := db.sb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	if err := db.conn.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}
