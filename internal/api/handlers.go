// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/postpulse/internal/database"
	"github.com/tomtom215/postpulse/internal/models"
	"github.com/tomtom215/postpulse/internal/pipeline"
)

const (
	defaultLogLimit = 10
	maxLogLimit     = 100
)

// ReportSource exposes the outcome of the latest pipeline run.
// *pipeline.Runner implements it.
type ReportSource interface {
	LastReport() *pipeline.Report
}

// Store is the read side of the persistence gateway used by the handlers.
// *database.DB implements it.
type Store interface {
	Ping(ctx context.Context) error
	Dialect() string
	Tables() database.Tables
	CountRows(ctx context.Context, table string) (int64, error)
	ListLogs(ctx context.Context, limit int) ([]models.LogEntry, error)
}

// Handler serves the daemon-mode endpoints.
type Handler struct {
	runs      ReportSource
	db        Store
	startTime time.Time
}

// NewHandler creates a Handler.
func NewHandler(runs ReportSource, db Store) *Handler {
	return &Handler{
		runs:      runs,
		db:        db,
		startTime: time.Now(),
	}
}

// StatusResponse is the /status payload.
type StatusResponse struct {
	LastRun    *pipeline.Report   `json:"last_run"`
	Tables     models.TableCounts `json:"tables"`
	RecentLogs []models.LogEntry  `json:"recent_logs"`
}

// Healthz reports database connectivity and the latest run. It answers 503
// while the database is unreachable.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	connected := h.db.Ping(r.Context()) == nil

	health := models.HealthStatus{
		Status:            "healthy",
		DatabaseConnected: connected,
		Dialect:           h.db.Dialect(),
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if report := h.runs.LastReport(); report != nil {
		started := report.StartedAt
		health.LastRunAt = &started
		health.LastRunStatus = report.Status()
	}

	status := http.StatusOK
	if !connected {
		health.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	respondSuccess(w, status, health, 0)
}

// Status returns the latest run report, table row counts and the most
// recent run log rows. The limit query parameter (1-100, default 10)
// bounds the log rows.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	limit := defaultLogLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLogLimit {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be an integer between 1 and 100", nil)
			return
		}
		limit = n
	}

	start := time.Now()
	ctx := r.Context()
	tables := h.db.Tables()

	var counts models.TableCounts
	for _, c := range []struct {
		table string
		dst   *int64
	}{
		{tables.Posts, &counts.Posts},
		{tables.Sentiment, &counts.Sentiment},
		{tables.Logs, &counts.Logs},
	} {
		n, err := h.db.CountRows(ctx, c.table)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to count rows", err)
			return
		}
		*c.dst = n
	}

	logs, err := h.db.ListLogs(ctx, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list run logs", err)
		return
	}

	respondSuccess(w, http.StatusOK, StatusResponse{
		LastRun:    h.runs.LastReport(),
		Tables:     counts,
		RecentLogs: logs,
	}, time.Since(start).Milliseconds())
}
