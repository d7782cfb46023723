// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRunIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if id := RunIDFromContext(ctx); id != "" {
		t.Errorf("expected empty run ID, got %s", id)
	}

	ctx = ContextWithRunID(ctx, "run-123")
	if id := RunIDFromContext(ctx); id != "run-123" {
		t.Errorf("expected 'run-123', got '%s'", id)
	}
}

func TestContextWithNewRunID(t *testing.T) {
	t.Parallel()

	ctx := ContextWithNewRunID(context.Background())

	id := RunIDFromContext(ctx)
	if len(id) != 36 {
		t.Errorf("expected 36-character run ID, got %q", id)
	}
	if other := NewRunID(); other == id {
		t.Error("expected run IDs to be unique")
	}
}

func TestStageContext(t *testing.T) {
	t.Parallel()

	ctx := ContextWithStage(context.Background(), "persist")
	if got := StageFromContext(ctx); got != "persist" {
		t.Errorf("expected 'persist', got %q", got)
	}
	if got := StageFromContext(context.Background()); got != "" {
		t.Errorf("expected empty stage, got %q", got)
	}
}

func TestCtxAddsRunFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), zerolog.New(&buf))
	ctx = ContextWithRunID(ctx, "abc")
	ctx = ContextWithStage(ctx, "analyze")

	Ctx(ctx).Info().Msg("processing")

	output := buf.String()
	for _, want := range []string{`"run_id":"abc"`, `"stage":"analyze"`, `"message":"processing"`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output: %s", want, output)
		}
	}
}

func TestCtxWithoutFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), zerolog.New(&buf))

	Ctx(ctx).Info().Msg("plain")

	output := buf.String()
	if strings.Contains(output, "run_id") || strings.Contains(output, "stage") {
		t.Errorf("expected no context fields, got: %s", output)
	}
}

func TestLoggerFromContext_NoLogger(t *testing.T) {
	t.Parallel()

	// Falls back to the global logger without panicking.
	l := LoggerFromContext(context.Background())
	_ = l.Debug()
}
