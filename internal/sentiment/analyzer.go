// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package sentiment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tomtom215/postpulse/internal/config"
	"github.com/tomtom215/postpulse/internal/logging"
	"github.com/tomtom215/postpulse/internal/metrics"
	"github.com/tomtom215/postpulse/internal/models"
)

// MaxBatchSize is the most documents a provider accepts per call.
const MaxBatchSize = 10

// Store persists analyzed results, assigning contiguous ids.
type Store interface {
	AppendSentiment(ctx context.Context, results []models.SentimentResult) ([]models.SentimentResult, error)
}

// Analyzer splits posts into chunks, sends each chunk to the provider in
// order and stores every successful result with one bulk append.
type Analyzer struct {
	provider  Provider
	store     Store
	batchSize int
	language  string
}

// NewAnalyzer creates an analyzer. Batch sizes outside 1..10 fall back to 10.
func NewAnalyzer(provider Provider, store Store, cfg *config.SentimentConfig) *Analyzer {
	size := cfg.BatchSize
	if size <= 0 || size > MaxBatchSize {
		size = MaxBatchSize
	}
	return &Analyzer{
		provider:  provider,
		store:     store,
		batchSize: size,
		language:  cfg.Language,
	}
}

// Analyze runs sentiment analysis over posts and stores the results.
//
// Each post yields one Outcome. Documents the provider reports as errors,
// or answers with an invalid result, are Skipped and never stored. When
// every post is skipped nothing is written and no error is returned. A
// failed provider call aborts the run before anything is written.
func (a *Analyzer) Analyze(ctx context.Context, posts []models.Post) (*Report, error) {
	report := &Report{Outcomes: make([]Outcome, 0, len(posts))}
	if len(posts) == 0 {
		return report, nil
	}

	numBatches := (len(posts) + a.batchSize - 1) / a.batchSize
	var results []models.SentimentResult

	for i := 0; i < len(posts); i += a.batchSize {
		batchIdx := i / a.batchSize
		end := min(i+a.batchSize, len(posts))
		batch := posts[i:end]

		outcomes, err := a.analyzeBatch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze batch %d/%d: %w", batchIdx+1, numBatches, err)
		}
		report.Batches++

		for _, o := range outcomes {
			if o.IsOK() {
				results = append(results, *o.Result)
			}
			report.Outcomes = append(report.Outcomes, o)
		}
	}

	metrics.RecordSentimentOutcomes(report.OKCount(), report.SkippedCount())

	if len(results) == 0 {
		logging.Ctx(ctx).Warn().
			Int("posts", len(posts)).
			Msg("Every document was skipped, nothing stored")
		return report, nil
	}

	stored, err := a.store.AppendSentiment(ctx, results)
	if err != nil {
		return nil, err
	}
	report.Stored = stored

	// Point Ok outcomes at the stored rows, which carry the assigned ids.
	next := 0
	for i := range report.Outcomes {
		if report.Outcomes[i].IsOK() {
			report.Outcomes[i].Result = &report.Stored[next]
			next++
		}
	}

	logging.Ctx(ctx).Debug().
		Int("stored", len(stored)).
		Int("skipped", report.SkippedCount()).
		Int("batches", report.Batches).
		Msg("Sentiment stored")

	return report, nil
}

// analyzeBatch sends one chunk and maps each response element back to its
// post by position.
func (a *Analyzer) analyzeBatch(ctx context.Context, batch []models.Post) ([]Outcome, error) {
	docs := make([]Document, len(batch))
	for i := range batch {
		docs[i] = Document{
			ID:       strconv.Itoa(i),
			Language: a.language,
			Text:     batch[i].Text,
		}
	}

	metrics.RecordSentimentBatch(len(docs))

	res, err := a.provider.Analyze(ctx, docs)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]DocumentResult, len(res.Documents))
	for _, d := range res.Documents {
		byID[d.ID] = d
	}
	failed := make(map[string]DocumentError, len(res.Errors))
	for _, e := range res.Errors {
		failed[e.ID] = e
	}

	outcomes := make([]Outcome, len(batch))
	for i := range batch {
		post := &batch[i]
		id := docs[i].ID

		if e, ok := failed[id]; ok {
			outcomes[i] = a.skip(ctx, post.ID, describe(e))
			continue
		}

		d, ok := byID[id]
		if !ok {
			outcomes[i] = a.skip(ctx, post.ID, "no result returned")
			continue
		}

		r := models.SentimentResult{
			Sentiment: d.Sentiment,
			Positive:  d.Positive,
			Neutral:   d.Neutral,
			Negative:  d.Negative,
			PostID:    post.ID,
		}
		if err := r.Validate(); err != nil {
			outcomes[i] = a.skip(ctx, post.ID, "invalid result: "+err.Error())
			continue
		}
		outcomes[i] = Ok(r)
	}
	return outcomes, nil
}

func (a *Analyzer) skip(ctx context.Context, postID int64, reason string) Outcome {
	logging.Ctx(ctx).Warn().
		Str("provider", a.provider.Name()).
		Int64("post_id", postID).
		Str("reason", reason).
		Msg("Sentiment skipped for post")
	return Skipped(postID, reason)
}

func describe(e DocumentError) string {
	switch {
	case e.Code != "" && e.Message != "":
		return e.Code + ": " + e.Message
	case e.Message != "":
		return e.Message
	case e.Code != "":
		return e.Code
	default:
		return "document error"
	}
}
