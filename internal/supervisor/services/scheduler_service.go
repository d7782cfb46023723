// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package services

import (
	"context"
	"fmt"
)

// StartStopScheduler is the lifecycle of *scheduler.Scheduler.
type StartStopScheduler interface {
	Start(ctx context.Context) error
	Stop() error
}

// SchedulerService runs the pipeline scheduler under the supervisor.
type SchedulerService struct {
	scheduler StartStopScheduler
	name      string
}

// NewSchedulerService creates the wrapper.
//
//	sched, err := scheduler.New(runner, &cfg.Schedule)
//	tree.AddPipelineService(services.NewSchedulerService(sched))
func NewSchedulerService(s StartStopScheduler) *SchedulerService {
	return &SchedulerService{
		scheduler: s,
		name:      "pipeline-scheduler",
	}
}

// Serve implements suture.Service. It starts the scheduler, blocks until
// ctx is canceled and then stops it, waiting for an in-flight run.
func (s *SchedulerService) Serve(ctx context.Context) error {
	if err := s.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("scheduler start failed: %w", err)
	}

	<-ctx.Done()

	if err := s.scheduler.Stop(); err != nil {
		return fmt.Errorf("scheduler stop failed: %w", err)
	}
	return ctx.Err()
}

// String implements fmt.Stringer.
func (s *SchedulerService) String() string {
	return s.name
}
