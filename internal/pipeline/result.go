// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package pipeline

import (
	"time"

	"github.com/tomtom215/postpulse/internal/sentiment"
)

// Stage names used in results, metrics and the process log.
const (
	StageFetch   = "fetch"
	StagePersist = "persist"
	StageAnalyze = "analyze"
)

// StageStatus is the outcome of one stage.
type StageStatus string

const (
	StatusOK      StageStatus = "ok"
	StatusFailed  StageStatus = "failed"
	StatusSkipped StageStatus = "skipped"
)

// StageResult describes how a single stage ended.
//
// Count is the number of items the stage handled: posts fetched, rows
// stored, or sentiment rows written. Reason explains a skipped stage.
type StageResult struct {
	Stage    string        `json:"stage"`
	Status   StageStatus   `json:"status"`
	Count    int           `json:"count"`
	Reason   string        `json:"reason,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
	Err      error         `json:"-"`
}

func okStage(stage string, count int, d time.Duration) StageResult {
	return StageResult{Stage: stage, Status: StatusOK, Count: count, Duration: d}
}

func failedStage(stage string, err error, d time.Duration) StageResult {
	return StageResult{Stage: stage, Status: StatusFailed, Error: err.Error(), Err: err, Duration: d}
}

func skippedStage(stage, reason string) StageResult {
	return StageResult{Stage: stage, Status: StatusSkipped, Reason: reason}
}

// Report aggregates the stage results of one run.
type Report struct {
	RunID     string            `json:"run_id"`
	Query     string            `json:"query"`
	StartedAt time.Time         `json:"started_at"`
	Duration  time.Duration     `json:"duration_ns"`
	Stages    []StageResult     `json:"stages"`
	Sentiment *sentiment.Report `json:"sentiment,omitempty"`

	// LogErrors holds run log writes that failed. They never replace a
	// stage error.
	LogErrors []string `json:"log_errors,omitempty"`
}

// Stage returns the result for the named stage.
func (r *Report) Stage(name string) (StageResult, bool) {
	for _, s := range r.Stages {
		if s.Stage == name {
			return s, true
		}
	}
	return StageResult{}, false
}

// Failed reports whether any stage failed.
func (r *Report) Failed() bool {
	for _, s := range r.Stages {
		if s.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Err returns the first stage error, or nil.
func (r *Report) Err() error {
	for _, s := range r.Stages {
		if s.Status == StatusFailed {
			return s.Err
		}
	}
	return nil
}

// Status is "failed" when any stage failed and "ok" otherwise.
func (r *Report) Status() string {
	if r.Failed() {
		return string(StatusFailed)
	}
	return string(StatusOK)
}
