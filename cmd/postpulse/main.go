// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/postpulse/internal/api"
	"github.com/tomtom215/postpulse/internal/config"
	"github.com/tomtom215/postpulse/internal/logging"
	"github.com/tomtom215/postpulse/internal/pipeline"
	"github.com/tomtom215/postpulse/internal/scheduler"
	"github.com/tomtom215/postpulse/internal/supervisor"
	"github.com/tomtom215/postpulse/internal/supervisor/services"
)

const (
	exitOK    = 0
	exitError = 1
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "postpulse: error: %v, try --help\n", err)
		return exitError
	}

	cfg, err := config.Load(flags.loadOptions())
	if err != nil {
		// The logger is not configured yet; this goes out with defaults.
		logging.Error().Err(err).Msg("Failed to load configuration")
		return exitError
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("dialect", cfg.Database.Dialect).
		Str("dsn", logging.RedactDSN(cfg.Database.DSN)).
		Str("sentiment_provider", cfg.Sentiment.Provider).
		Bool("daemon", cfg.Schedule.Enabled).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize pipeline")
		return exitError
	}
	defer func() {
		if err := p.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if cfg.Schedule.Enabled {
		return runDaemon(ctx, cfg, p)
	}
	return runOnce(ctx, p, flags.failOnError)
}

// runOnce performs a single run. Stage failures are already in the run log;
// they only change the exit status with --fail-on-error.
func runOnce(ctx context.Context, p *pipeline.Pipeline, failOnError bool) int {
	report := p.Run(ctx)

	for _, s := range report.Stages {
		logging.Info().
			Str("run_id", report.RunID).
			Str("stage", s.Stage).
			Str("status", string(s.Status)).
			Int("count", s.Count).
			Str("reason", s.Reason).
			Str("error", s.Error).
			Msg("Stage result")
	}
	for _, e := range report.LogErrors {
		logging.Warn().Str("run_id", report.RunID).Str("error", e).Msg("Run log write failed")
	}

	if report.Failed() && failOnError {
		return exitError
	}
	return exitOK
}

// runDaemon runs the scheduler and the metrics server under the supervisor
// tree until a signal arrives.
func runDaemon(ctx context.Context, cfg *config.Config, p *pipeline.Pipeline) int {
	sched, err := scheduler.New(p.Runner, &cfg.Schedule)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create scheduler")
		return exitError
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return exitError
	}

	server := &http.Server{
		Addr:              cfg.Server.MetricsAddr,
		Handler:           api.NewRouter(api.NewHandler(p.Runner, p.DB)),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	tree.AddPipelineService(services.NewSchedulerService(sched))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().
		Str("schedule", cfg.Schedule.Cron).
		Str("addr", cfg.Server.MetricsAddr).
		Msg("Starting daemon")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped")
		return exitError
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		logging.Warn().Str("services", fmt.Sprint(unstopped)).Msg("Services did not stop in time")
	}

	logging.Info().Msg("Shutdown complete")
	return exitOK
}
