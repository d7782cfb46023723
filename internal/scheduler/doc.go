// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

// Package scheduler runs the pipeline repeatedly in daemon mode.
//
// A Scheduler wraps a robfig/cron instance with a single entry. Its job
// chain recovers panics and skips activations while the previous run is
// still going, and the job itself uses Runner.TryRun so a run started by
// run_on_start never overlaps with a cron tick either. Start and Stop match
// the lifecycle expected by the supervisor service wrapper.
package scheduler
