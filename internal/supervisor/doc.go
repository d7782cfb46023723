// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

/*
Package supervisor runs PostPulse in daemon mode under a suture v4 tree.

	RootSupervisor ("postpulse")
	├── PipelineSupervisor ("pipeline-layer")
	│   └── SchedulerService (cron-driven pipeline runs)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (/metrics, /healthz, /status)

Crashed services are restarted with backoff once FailureThreshold is
reached; each layer counts failures on its own. Supervisor events are
written to the process log through sutureslog and the zerolog slog
adapter:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddPipelineService(services.NewSchedulerService(sched))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

The single-shot CLI mode does not use this package.
*/
package supervisor
