// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

/*
Package models defines the records that flow through the PostPulse pipeline.

Key Components:

  - Post: a normalized search result, identified by the external post id
  - TriState: a boolean that may be unknown, stored as 0, 1 or 2
  - SentimentResult: one analyzed post, with a locally assigned id
  - LogEntry: one row of the operational logs table

All records are append-only. A Post is never updated after it is stored,
and SentimentResult and LogEntry ids are assigned by the persistence layer
at insert time.

Hashtags are flattened into a single string joined with HashtagSeparator.
The separator is not escaped, so a hashtag that contains "||" splits into
two entries when read back with Post.HashtagList.
*/
package models
