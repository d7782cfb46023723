// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/postpulse/internal/logging"
	"github.com/tomtom215/postpulse/internal/metrics"
	"github.com/tomtom215/postpulse/internal/models"
)

// Logger records pipeline events as rows of the logs table. Every call is
// one synchronous write; nothing is buffered or batched. Each entry is also
// mirrored to the process log.
type Logger struct {
	store Store
	now   func() time.Time
}

// NewLogger creates a run logger writing to store.
func NewLogger(store Store) *Logger {
	return &Logger{
		store: store,
		now:   time.Now,
	}
}

// Info writes an INFO row.
func (l *Logger) Info(ctx context.Context, message string) error {
	return l.write(ctx, models.LogInfo, message)
}

// Error writes an ERROR row.
func (l *Logger) Error(ctx context.Context, message string) error {
	return l.write(ctx, models.LogError, message)
}

// write stamps the entry with the current UTC time and appends it. The store
// assigns the id. A failed write is returned to the caller.
func (l *Logger) write(ctx context.Context, logType models.LogType, message string) error {
	entry := models.LogEntry{
		LogType:   logType,
		Message:   message,
		CreatedAt: l.now().UTC(),
	}

	event := logging.Ctx(ctx).Info()
	if logType == models.LogError {
		event = logging.Ctx(ctx).Error()
	}
	event.Str("log_type", string(logType)).Msg(message)

	stored, err := l.store.AppendLog(ctx, entry)
	metrics.RecordLogRow(string(logType), err)
	if err != nil {
		return fmt.Errorf("failed to write %s log row: %w", logType, err)
	}

	logging.Ctx(ctx).Debug().
		Int64("log_id", stored.ID).
		Str("log_type", string(logType)).
		Msg("Run log row written")
	return nil
}
