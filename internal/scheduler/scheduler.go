// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tomtom215/postpulse/internal/config"
	"github.com/tomtom215/postpulse/internal/logging"
	"github.com/tomtom215/postpulse/internal/pipeline"
)

// Runner executes one pipeline run unless one is already in progress.
// *pipeline.Runner implements it.
type Runner interface {
	TryRun(ctx context.Context) (*pipeline.Report, error)
}

// Scheduler triggers pipeline runs on a cron schedule. At most one run is
// in flight at a time; ticks that arrive during a run are dropped.
type Scheduler struct {
	runner     Runner
	spec       string
	runOnStart bool

	cron    *cron.Cron
	entryID cron.EntryID

	mu      sync.Mutex
	running bool
	ctx     context.Context
	wg      sync.WaitGroup

	runs    atomic.Int64
	skipped atomic.Int64
}

// New creates a scheduler for cfg.Cron. Standard five-field expressions and
// descriptors such as "@every 15m" or "@hourly" are accepted.
func New(runner Runner, cfg *config.ScheduleConfig) (*Scheduler, error) {
	s := &Scheduler{
		runner:     runner,
		spec:       cfg.Cron,
		runOnStart: cfg.RunOnStart,
	}

	logger := newCronLogger()
	s.cron = cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	id, err := s.cron.AddFunc(cfg.Cron, s.tick)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", cfg.Cron, err)
	}
	s.entryID = id

	return s, nil
}

// Start begins scheduling. Runs use ctx, so canceling it aborts an
// in-flight run.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("scheduler is already running")
	}
	s.running = true
	s.ctx = ctx
	s.mu.Unlock()

	s.cron.Start()

	logging.Info().
		Str("schedule", s.spec).
		Time("next_run", s.NextRun()).
		Bool("run_on_start", s.runOnStart).
		Msg("Scheduler started")

	if s.runOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.tick()
		}()
	}
	return nil
}

// Stop halts scheduling and waits for an in-flight run to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.wg.Wait()

	logging.Info().
		Int64("runs", s.runs.Load()).
		Int64("skipped", s.skipped.Load()).
		Msg("Scheduler stopped")
	return nil
}

// NextRun returns the next scheduled activation, or the zero time before
// Start.
func (s *Scheduler) NextRun() time.Time {
	return s.cron.Entry(s.entryID).Next
}

// Runs returns the number of completed runs.
func (s *Scheduler) Runs() int64 {
	return s.runs.Load()
}

// Skipped returns the number of activations dropped because a run was in
// progress.
func (s *Scheduler) Skipped() int64 {
	return s.skipped.Load()
}

func (s *Scheduler) tick() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}

	report, err := s.runner.TryRun(ctx)
	if errors.Is(err, pipeline.ErrAlreadyRunning) {
		s.skipped.Add(1)
		logging.Warn().Msg("Previous pipeline run still in progress, skipping")
		return
	}
	if err != nil {
		logging.Error().Err(err).Msg("Scheduled pipeline run failed")
		return
	}

	s.runs.Add(1)
	logging.Debug().
		Str("run_id", report.RunID).
		Str("status", report.Status()).
		Time("next_run", s.NextRun()).
		Msg("Scheduled run finished")
}
