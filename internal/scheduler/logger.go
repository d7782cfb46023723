// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/tomtom215/postpulse/internal/logging"
)

// cronLogger adapts zerolog to cron.Logger. Cron's info messages (schedule,
// wake, run) are chatty, so they go to debug.
type cronLogger struct {
	logger zerolog.Logger
}

// Ensure cronLogger implements cron.Logger
var _ cron.Logger = (*cronLogger)(nil)

func newCronLogger() *cronLogger {
	return &cronLogger{logger: logging.WithComponent("cron")}
}

// Info logs routine messages about cron's operation.
func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	addFields(l.logger.Debug(), keysAndValues).Msg(msg)
}

// Error logs an error condition.
func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	addFields(l.logger.Error().Err(err), keysAndValues).Msg(msg)
}

func addFields(event *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		event = event.Interface(key, keysAndValues[i+1])
	}
	return event
}
