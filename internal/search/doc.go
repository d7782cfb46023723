// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

/*
Package search fetches posts from the v1.1 standard search API and
normalizes them into models.Post.

Requests are signed with OAuth 1.0a user context (dghubble/oauth1) and run
under a circuit breaker. The fixed parameters lang, result_type and count
come from configuration.

# Incremental Fetch

With filterSinceLastFetch set, the client asks its WatermarkSource (the
persistence gateway) for the largest stored post id and sends it as
since_id. An empty posts table sends no since_id.

	client := search.NewClient(&cfg.Twitter, &cfg.Search, db)
	posts, err := client.Search(ctx, "verkiezingen", true)

# Normalization

Each status keeps created_at, id, possibly_sensitive and text. Hashtag texts
are joined with "||". The user's id, name, screen_name and verified flag are
flattened onto the post. possibly_sensitive and verified are decoded as
optional booleans so a missing field becomes models.TriUnknown.

# Errors

  - ErrQueryTooLong: the query exceeds 500 characters; no request is made
  - *APIError: the API answered with a non-2xx status
  - transport failures and breaker rejections are wrapped with %w
*/
package search
