// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

/*
Command postpulse searches a social network for posts matching a query,
stores the new ones in a relational database and sends their text to a
sentiment service. Every stage writes one row to the run log table.

Usage:

	postpulse -a QUERY -t twitter.env -d database.env -s sentiment.env [flags]

Credential files use dotenv syntax and are layered over the optional YAML
config file (-c or CONFIG_PATH); process environment variables and flags
take precedence over both. See internal/config for the full key list.

By default the program performs one run and exits 0 even when a stage
failed, since failures are recorded in the run log. Pass --fail-on-error to
turn a failed stage into exit status 1. Configuration and startup errors
always exit 1.

With --daemon the run is repeated on the schedule.cron expression and an HTTP
server on server.metrics_addr exposes:

	/metrics   Prometheus metrics
	/healthz   database reachability
	/status    last run report, table sizes and recent run log rows

Both services run under a suture supervisor tree and stop on SIGINT or
SIGTERM.
*/
package main
