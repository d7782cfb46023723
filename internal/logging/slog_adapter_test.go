// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		zerologLevel zerolog.Level
		slogLevel    slog.Level
		want         bool
	}{
		{"debug logger enables debug level", zerolog.DebugLevel, slog.LevelDebug, true},
		{"info logger disables debug level", zerolog.InfoLevel, slog.LevelDebug, false},
		{"info logger enables warn level", zerolog.InfoLevel, slog.LevelWarn, true},
		{"error logger disables warn level", zerolog.ErrorLevel, slog.LevelWarn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			handler := NewSlogHandlerWithLogger(zerolog.New(nil).Level(tt.zerologLevel))
			if got := handler.Enabled(context.Background(), tt.slogLevel); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     slog.Level
		wantLevel string
	}{
		{"info", slog.LevelInfo, "info"},
		{"warn", slog.LevelWarn, "warn"},
		{"error", slog.LevelError, "error"},
		{"above error", slog.LevelError + 4, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			slogger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))

			slogger.Log(context.Background(), tt.level, "service event")

			output := buf.String()
			if !strings.Contains(output, `"level":"`+tt.wantLevel+`"`) {
				t.Errorf("expected level %s in output: %s", tt.wantLevel, output)
			}
			if !strings.Contains(output, "service event") {
				t.Errorf("expected message in output: %s", output)
			}
		})
	}
}

func TestSlogHandler_Attributes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf))).
		With("supervisor", "postpulse").
		WithGroup("svc")

	slogger.Info("restart",
		"name", "scheduler",
		"failures", 3,
		"backoff", 15*time.Second,
		"healthy", false,
		slog.Group("cron", "entries", 1),
	)

	output := buf.String()
	for _, want := range []string{
		`"supervisor":"postpulse"`,
		`"svc.name":"scheduler"`,
		`"svc.failures":3`,
		`"svc.healthy":false`,
		`"svc.cron.entries":1`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output: %s", want, output)
		}
	}
}

func TestSlogHandler_WithGroupEmpty(t *testing.T) {
	t.Parallel()

	h := NewSlogHandlerWithLogger(zerolog.New(nil))
	if got := h.WithGroup(""); got != h {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

func TestNewSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() { Init(DefaultConfig()) })

	NewSlogLogger("supervisor").Info("tree started")

	output := buf.String()
	if !strings.Contains(output, `"component":"supervisor"`) {
		t.Errorf("expected component field in output: %s", output)
	}
}
