// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package models

import (
	"time"
)

// APIResponse is the envelope of every JSON response of the daemon-mode
// HTTP server.
//
//	{
//	  "status": "success",
//	  "data": {...},
//	  "metadata": {"timestamp": "2022-09-20T10:15:00Z"}
//	}
//
// On failure Status is "error", Data is null and Error is set.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a machine-readable error code with a message.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the /healthz payload.
type HealthStatus struct {
	Status            string     `json:"status"` // healthy or degraded
	DatabaseConnected bool       `json:"database_connected"`
	Dialect           string     `json:"dialect"`
	LastRunAt         *time.Time `json:"last_run_at,omitempty"`
	LastRunStatus     string     `json:"last_run_status,omitempty"`
	Uptime            float64    `json:"uptime_seconds"`
}

// TableCounts holds the row count of each pipeline table.
type TableCounts struct {
	Posts     int64 `json:"posts"`
	Sentiment int64 `json:"sentiment"`
	Logs      int64 `json:"logs"`
}
