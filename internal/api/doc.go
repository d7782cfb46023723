// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

// Package api serves the daemon-mode HTTP endpoints with a chi router:
// Prometheus metrics, a health check and a status view of the latest
// pipeline run. Responses other than /metrics use the models.APIResponse
// envelope and are encoded with goccy/go-json. /status is rate limited per
// client IP with go-chi/httprate.
package api
