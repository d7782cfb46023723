// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline Metrics
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postpulse_pipeline_runs_total",
			Help: "Total number of pipeline runs by outcome",
		},
		[]string{"status"}, // "ok", "failed"
	)

	PipelineRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "postpulse_pipeline_run_duration_seconds",
			Help:    "Duration of complete pipeline runs in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "postpulse_pipeline_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage", "status"}, // stage: "fetch", "persist", "analyze"; status: "ok", "failed", "skipped"
	)

	PipelineLastRunTimestamp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "postpulse_pipeline_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last pipeline run by outcome",
		},
		[]string{"status"},
	)

	PipelineRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "postpulse_pipeline_running",
			Help: "1 while a pipeline run is in progress",
		},
	)

	// Post Metrics
	PostsFetchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "postpulse_posts_fetched_total",
			Help: "Total number of posts returned by the search API",
		},
	)

	PostsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "postpulse_posts_dropped_total",
			Help: "Total number of search results dropped because they could not be normalized",
		},
	)

	PostsStoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "postpulse_posts_stored_total",
			Help: "Total number of post rows written",
		},
	)

	// Sentiment Metrics
	SentimentOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postpulse_sentiment_outcomes_total",
			Help: "Total number of analyzed documents by outcome",
		},
		[]string{"outcome"}, // "ok", "skipped"
	)

	SentimentBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "postpulse_sentiment_batch_size",
			Help:    "Number of documents sent per provider call",
			Buckets: []float64{1, 2, 3, 5, 8, 10},
		},
	)

	// Run Log Metrics
	LogRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postpulse_log_rows_total",
			Help: "Total number of rows written to the run log table",
		},
		[]string{"log_type"}, // "INFO", "ERROR"
	)

	LogWriteErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "postpulse_log_write_errors_total",
			Help: "Total number of failed run log writes",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "postpulse_db_query_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets, // 0.005s, 0.01s, 0.025s, 0.05s, 0.1s, 0.25s, 0.5s, 1s, 2.5s, 5s, 10s
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postpulse_db_query_errors_total",
			Help: "Total number of database operation errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBRowsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postpulse_db_rows_written_total",
			Help: "Total number of rows appended per table",
		},
		[]string{"table"},
	)

	// External API Metrics
	ExternalRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postpulse_external_requests_total",
			Help: "Total number of requests to external services",
		},
		[]string{"service", "status"}, // service: "search", "azure", "anthropic"
	)

	ExternalRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "postpulse_external_request_duration_seconds",
			Help:    "Duration of external service requests in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// HTTP API Metrics (daemon mode)
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"method", "endpoint"},
	)
)

// RecordDBQuery records a database operation duration and, on failure, its error class.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, errorType(err)).Inc()
	}
}

// RecordRowsWritten adds n appended rows for table.
func RecordRowsWritten(table string, n int) {
	if n > 0 {
		DBRowsWritten.WithLabelValues(table).Add(float64(n))
	}
}

// RecordStage records the duration and outcome of one pipeline stage.
func RecordStage(stage, status string, duration time.Duration) {
	PipelineStageDuration.WithLabelValues(stage, status).Observe(duration.Seconds())
}

// RecordRun records a finished pipeline run.
func RecordRun(status string, duration time.Duration) {
	PipelineRunsTotal.WithLabelValues(status).Inc()
	PipelineRunDuration.Observe(duration.Seconds())
	PipelineLastRunTimestamp.WithLabelValues(status).SetToCurrentTime()
}

// TrackRunning marks a pipeline run as started (true) or finished (false).
func TrackRunning(running bool) {
	if running {
		PipelineRunning.Set(1)
		return
	}
	PipelineRunning.Set(0)
}

// RecordPostsFetched adds n fetched posts.
func RecordPostsFetched(n int) {
	PostsFetchedTotal.Add(float64(n))
}

// RecordPostsDropped adds n search results that failed normalization.
func RecordPostsDropped(n int) {
	PostsDroppedTotal.Add(float64(n))
}

// RecordPostsStored adds n stored posts.
func RecordPostsStored(n int) {
	PostsStoredTotal.Add(float64(n))
}

// RecordSentimentOutcomes adds the per-document outcome counts of one analysis.
func RecordSentimentOutcomes(ok, skipped int) {
	SentimentOutcomesTotal.WithLabelValues("ok").Add(float64(ok))
	SentimentOutcomesTotal.WithLabelValues("skipped").Add(float64(skipped))
}

// RecordSentimentBatch records the size of one provider call.
func RecordSentimentBatch(size int) {
	SentimentBatchSize.Observe(float64(size))
}

// RecordLogRow records a run log write attempt.
func RecordLogRow(logType string, err error) {
	if err != nil {
		LogWriteErrorsTotal.Inc()
		return
	}
	LogRowsTotal.WithLabelValues(logType).Inc()
}

// RecordExternalRequest records one call to an external service.
// status is the HTTP status code, or "error" when no response arrived.
func RecordExternalRequest(service, status string, duration time.Duration) {
	ExternalRequestsTotal.WithLabelValues(service, status).Inc()
	ExternalRequestDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordAPIRequest records a daemon-mode HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// errorType maps an error to a bounded label value.
func errorType(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
