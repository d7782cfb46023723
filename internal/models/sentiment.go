// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package models

import "fmt"

// Sentiment labels returned by the analysis providers.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
	SentimentMixed    = "mixed"
)

// ValidSentiment reports whether label is one of the known sentiment labels.
func ValidSentiment(label string) bool {
	switch label {
	case SentimentPositive, SentimentNeutral, SentimentNegative, SentimentMixed:
		return true
	default:
		return false
	}
}

// SentimentResult is one analyzed post. ID is assigned locally when the
// result is stored; PostID references posts.id.
type SentimentResult struct {
	ID        int64   `json:"id"`
	Sentiment string  `json:"sentiment"`
	Positive  float64 `json:"positive"`
	Neutral   float64 `json:"neutral"`
	Negative  float64 `json:"negative"`
	PostID    int64   `json:"post_id"`
}

// Validate checks the label and that each confidence score lies in [0,1].
func (r *SentimentResult) Validate() error {
	if !ValidSentiment(r.Sentiment) {
		return fmt.Errorf("unknown sentiment label %q", r.Sentiment)
	}
	for name, score := range map[string]float64{
		"positive": r.Positive,
		"neutral":  r.Neutral,
		"negative": r.Negative,
	} {
		if score < 0 || score > 1 {
			return fmt.Errorf("%s score %v out of range [0,1]", name, score)
		}
	}
	return nil
}
