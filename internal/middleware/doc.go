// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

// Package middleware holds the HTTP middleware of the daemon-mode server:
// request ids tied into the process log, and Prometheus request metrics.
package middleware
