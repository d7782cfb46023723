// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package search

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/postpulse/internal/logging"
	"github.com/tomtom215/postpulse/internal/metrics"
	"github.com/tomtom215/postpulse/internal/models"
)

// createdAtLayout is the timestamp format of v1.1 payloads,
// e.g. "Wed Oct 10 20:19:24 +0000 2018".
const createdAtLayout = time.RubyDate

// searchResponse is the subset of GET search/tweets.json that is consumed.
type searchResponse struct {
	Statuses       []status       `json:"statuses"`
	SearchMetadata searchMetadata `json:"search_metadata"`
}

type searchMetadata struct {
	MaxID   int64  `json:"max_id"`
	SinceID int64  `json:"since_id"`
	Count   int    `json:"count"`
	Query   string `json:"query"`
}

// status is one raw search result. Optional booleans are pointers so an
// absent field can be told apart from false.
type status struct {
	ID                int64    `json:"id"`
	CreatedAt         string   `json:"created_at"`
	Text              string   `json:"text"`
	PossiblySensitive *bool    `json:"possibly_sensitive"`
	Entities          entities `json:"entities"`
	User              user     `json:"user"`
}

type entities struct {
	Hashtags []hashtag `json:"hashtags"`
}

type hashtag struct {
	Text string `json:"text"`
}

type user struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ScreenName string `json:"screen_name"`
	Verified   *bool  `json:"verified"`
}

// errorResponse is the body of a failed v1.1 call.
type errorResponse struct {
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// normalize converts one raw status into a Post.
func normalize(s *status) (models.Post, error) {
	createdAt, err := time.Parse(createdAtLayout, s.CreatedAt)
	if err != nil {
		return models.Post{}, fmt.Errorf("status %d: invalid created_at %q: %w", s.ID, s.CreatedAt, err)
	}

	tags := make([]string, 0, len(s.Entities.Hashtags))
	for _, h := range s.Entities.Hashtags {
		tags = append(tags, h.Text)
	}

	return models.Post{
		ID:                s.ID,
		CreatedAt:         models.NaiveUTC(createdAt),
		Text:              s.Text,
		PossiblySensitive: models.TriStateFromPtr(s.PossiblySensitive),
		Hashtags:          models.JoinHashtags(tags),
		UserID:            s.User.ID,
		UserName:          s.User.Name,
		ScreenName:        s.User.ScreenName,
		Verified:          models.TriStateFromPtr(s.User.Verified),
	}, nil
}

// normalizeAll converts every status, keeping API order. A status that
// cannot be converted is dropped with a warning; the rest are kept.
func normalizeAll(ctx context.Context, statuses []status) []models.Post {
	posts := make([]models.Post, 0, len(statuses))
	for i := range statuses {
		p, err := normalize(&statuses[i])
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int64("post_id", statuses[i].ID).Msg("Dropping malformed status")
			metrics.RecordPostsDropped(1)
			continue
		}
		posts = append(posts, p)
	}
	return posts
}
