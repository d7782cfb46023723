// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package sentiment

import "github.com/tomtom215/postpulse/internal/models"

// OutcomeStatus says what happened to one post during analysis.
type OutcomeStatus string

const (
	// StatusOK means the post was analyzed and its result stored.
	StatusOK OutcomeStatus = "ok"
	// StatusSkipped means the provider rejected the document; nothing was stored.
	StatusSkipped OutcomeStatus = "skipped"
)

// Outcome is the per-post result of an analysis run.
type Outcome struct {
	PostID int64                   `json:"post_id"`
	Status OutcomeStatus           `json:"status"`
	Result *models.SentimentResult `json:"result,omitempty"`
	Reason string                  `json:"reason,omitempty"`
}

// Ok builds a successful outcome.
func Ok(r models.SentimentResult) Outcome {
	return Outcome{PostID: r.PostID, Status: StatusOK, Result: &r}
}

// Skipped builds an outcome for a post that produced no result.
func Skipped(postID int64, reason string) Outcome {
	return Outcome{PostID: postID, Status: StatusSkipped, Reason: reason}
}

// IsOK reports whether the post was analyzed.
func (o Outcome) IsOK() bool {
	return o.Status == StatusOK
}

// Report summarizes one Analyze call. Outcomes are in input order; Stored
// holds the written rows with their assigned ids.
type Report struct {
	Outcomes []Outcome                `json:"outcomes"`
	Stored   []models.SentimentResult `json:"-"`
	Batches  int                      `json:"batches"`
}

// OKCount returns the number of analyzed posts.
func (r *Report) OKCount() int {
	n := 0
	for i := range r.Outcomes {
		if r.Outcomes[i].IsOK() {
			n++
		}
	}
	return n
}

// SkippedCount returns the number of posts that produced no result.
func (r *Report) SkippedCount() int {
	return len(r.Outcomes) - r.OKCount()
}
