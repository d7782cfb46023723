// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and are
served at /metrics in daemon mode:

	curl http://localhost:9464/metrics

# Available Metrics

Pipeline Metrics:
  - postpulse_pipeline_runs_total: Runs by status (counter)
  - postpulse_pipeline_run_duration_seconds: Run latency (histogram)
  - postpulse_pipeline_stage_duration_seconds: Stage latency (histogram)
    Labels: stage (fetch, persist, analyze), status (ok, failed, skipped)
  - postpulse_pipeline_last_run_timestamp_seconds: Last run time (gauge)
  - postpulse_pipeline_running: 1 while a run is active (gauge)

Data Metrics:
  - postpulse_posts_fetched_total, postpulse_posts_stored_total (counters)
  - postpulse_sentiment_outcomes_total: Labels: outcome (ok, skipped)
  - postpulse_sentiment_batch_size: Documents per provider call (histogram)
  - postpulse_log_rows_total: Labels: log_type (INFO, ERROR)
  - postpulse_log_write_errors_total (counter)

Database Metrics:
  - postpulse_db_query_duration_seconds: Labels: operation, table
  - postpulse_db_query_errors_total: Labels: operation, table, error_type
  - postpulse_db_rows_written_total: Labels: table

External Service Metrics:
  - postpulse_external_requests_total: Labels: service, status
  - postpulse_external_request_duration_seconds: Labels: service

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Labels: name, result (success, failure, rejected)
  - circuit_breaker_consecutive_failures
  - circuit_breaker_state_transitions_total: Labels: name, from_state, to_state

# Usage

	start := time.Now()
	_, err := db.StorePosts(ctx, posts)
	metrics.RecordDBQuery("insert", "posts", time.Since(start), err)
*/
package metrics
