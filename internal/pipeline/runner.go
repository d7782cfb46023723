// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/postpulse/internal/logging"
	"github.com/tomtom215/postpulse/internal/metrics"
	"github.com/tomtom215/postpulse/internal/models"
	"github.com/tomtom215/postpulse/internal/search"
	"github.com/tomtom215/postpulse/internal/sentiment"
)

// Run log messages written on success.
const (
	msgPostsSaved        = "Posts saved to database"
	msgSentimentAnalyzed = "Sentiment analyzed"
)

// ErrAlreadyRunning is returned by TryRun while another run is in progress.
var ErrAlreadyRunning = errors.New("pipeline run already in progress")

// PostStore persists fetched posts.
type PostStore interface {
	StorePosts(ctx context.Context, posts []models.Post) (int, error)
}

// SentimentAnalyzer analyzes and stores the sentiment of posts.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, posts []models.Post) (*sentiment.Report, error)
}

// RunLogger writes the run log rows.
type RunLogger interface {
	Info(ctx context.Context, message string) error
	Error(ctx context.Context, message string) error
}

// Options controls a Runner.
type Options struct {
	Query                string
	FilterSinceLastFetch bool
}

// Runner executes the fetch, persist and analyze stages in order.
// Runs are serialized; a Runner is safe for concurrent use.
type Runner struct {
	searcher search.Searcher
	store    PostStore
	analyzer SentimentAnalyzer // nil when sentiment is disabled
	runLog   RunLogger
	opts     Options

	runMu sync.Mutex // serializes runs
	mu    sync.RWMutex
	last  *Report
}

// NewRunner creates a Runner. analyzer may be nil, in which case the
// analyze stage is always skipped.
func NewRunner(searcher search.Searcher, store PostStore, analyzer SentimentAnalyzer, runLog RunLogger, opts Options) *Runner {
	return &Runner{
		searcher: searcher,
		store:    store,
		analyzer: analyzer,
		runLog:   runLog,
		opts:     opts,
	}
}

// Run executes one pipeline run and returns its report. Stage failures are
// recorded in the report and the run log, not returned.
func (r *Runner) Run(ctx context.Context) *Report {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	return r.run(ctx)
}

// TryRun is like Run but returns ErrAlreadyRunning instead of waiting when a
// run is in progress.
func (r *Runner) TryRun(ctx context.Context) (*Report, error) {
	if !r.runMu.TryLock() {
		return nil, ErrAlreadyRunning
	}
	defer r.runMu.Unlock()
	return r.run(ctx), nil
}

// LastReport returns the report of the most recent finished run, or nil.
func (r *Runner) LastReport() *Report {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last
}

func (r *Runner) run(ctx context.Context) *Report {
	if logging.RunIDFromContext(ctx) == "" {
		ctx = logging.ContextWithNewRunID(ctx)
	}

	report := &Report{
		RunID:     logging.RunIDFromContext(ctx),
		Query:     r.opts.Query,
		StartedAt: time.Now().UTC(),
	}

	metrics.TrackRunning(true)
	defer metrics.TrackRunning(false)

	logging.Ctx(ctx).Info().
		Str("query", logging.Truncate(r.opts.Query, 80)).
		Bool("filter_since_last_fetch", r.opts.FilterSinceLastFetch).
		Msg("Pipeline run started")

	posts := r.fetch(ctx, report)
	switch {
	case posts == nil:
		report.Stages = append(report.Stages,
			skippedStage(StagePersist, "fetch failed"),
			skippedStage(StageAnalyze, "fetch failed"))
	case len(posts) == 0:
		report.Stages = append(report.Stages,
			skippedStage(StagePersist, "no posts"),
			skippedStage(StageAnalyze, "no posts"))
	case !r.persist(ctx, report, posts):
		report.Stages = append(report.Stages, skippedStage(StageAnalyze, "persist failed"))
	default:
		r.analyze(ctx, report, posts)
	}

	report.Duration = time.Since(report.StartedAt)
	metrics.RecordRun(report.Status(), report.Duration)

	event := logging.Ctx(ctx).Info()
	if report.Failed() {
		event = logging.Ctx(ctx).Warn()
	}
	event.Str("status", report.Status()).
		Dur("duration", report.Duration).
		Int("log_errors", len(report.LogErrors)).
		Msg("Pipeline run finished")

	r.mu.Lock()
	r.last = report
	r.mu.Unlock()

	return report
}

// fetch runs the search stage. It returns nil when the stage failed and a
// non-nil, possibly empty, slice otherwise.
func (r *Runner) fetch(ctx context.Context, report *Report) []models.Post {
	ctx = logging.ContextWithStage(ctx, StageFetch)
	start := time.Now()

	posts, err := r.searcher.Search(ctx, r.opts.Query, r.opts.FilterSinceLastFetch)
	if err != nil {
		r.fail(ctx, report, StageFetch, err, time.Since(start))
		return nil
	}
	if posts == nil {
		posts = []models.Post{}
	}

	metrics.RecordPostsFetched(len(posts))
	r.succeed(ctx, report, okStage(StageFetch, len(posts), time.Since(start)),
		fmt.Sprintf("Number of posts: %d", len(posts)))
	return posts
}

func (r *Runner) persist(ctx context.Context, report *Report, posts []models.Post) bool {
	ctx = logging.ContextWithStage(ctx, StagePersist)
	start := time.Now()

	n, err := r.store.StorePosts(ctx, posts)
	if err != nil {
		r.fail(ctx, report, StagePersist, err, time.Since(start))
		return false
	}

	metrics.RecordPostsStored(n)
	r.succeed(ctx, report, okStage(StagePersist, n, time.Since(start)), msgPostsSaved)
	return true
}

func (r *Runner) analyze(ctx context.Context, report *Report, posts []models.Post) {
	ctx = logging.ContextWithStage(ctx, StageAnalyze)

	if r.analyzer == nil {
		report.Stages = append(report.Stages, skippedStage(StageAnalyze, "sentiment disabled"))
		logging.Ctx(ctx).Debug().Msg("Sentiment stage disabled")
		return
	}

	start := time.Now()
	sr, err := r.analyzer.Analyze(ctx, posts)
	if err != nil {
		r.fail(ctx, report, StageAnalyze, err, time.Since(start))
		return
	}

	report.Sentiment = sr
	r.succeed(ctx, report, okStage(StageAnalyze, len(sr.Stored), time.Since(start)), msgSentimentAnalyzed)
}

// succeed records a finished stage and writes its INFO row.
func (r *Runner) succeed(ctx context.Context, report *Report, result StageResult, message string) {
	report.Stages = append(report.Stages, result)
	metrics.RecordStage(result.Stage, string(result.Status), result.Duration)

	logging.Ctx(ctx).Debug().
		Int("count", result.Count).
		Dur("duration", result.Duration).
		Msg("Stage completed")

	r.writeLog(ctx, report, r.runLog.Info, message)
}

// fail records a failed stage and writes its ERROR row.
func (r *Runner) fail(ctx context.Context, report *Report, stage string, err error, d time.Duration) {
	report.Stages = append(report.Stages, failedStage(stage, err, d))
	metrics.RecordStage(stage, string(StatusFailed), d)

	logging.Ctx(ctx).Error().Err(err).Dur("duration", d).Msg("Stage failed")

	r.writeLog(ctx, report, r.runLog.Error, err.Error())
}

func (r *Runner) writeLog(ctx context.Context, report *Report, write func(context.Context, string) error, message string) {
	if err := write(ctx, message); err != nil {
		report.LogErrors = append(report.LogErrors, err.Error())
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to write run log row")
	}
}
