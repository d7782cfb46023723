// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package models

import "time"

// LogType is the level column of the logs table.
type LogType string

const (
	LogInfo  LogType = "INFO"
	LogError LogType = "ERROR"
)

// LogEntry is one row of the logs table.
type LogEntry struct {
	ID        int64     `json:"id"`
	LogType   LogType   `json:"log_type"`
	Message   string    `json:"log_message"`
	CreatedAt time.Time `json:"created_at"`
}
