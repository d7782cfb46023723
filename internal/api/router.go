// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/postpulse/internal/middleware"
)

// statusRequestsPerMinute caps /status per client IP. Each request runs
// three COUNT queries and a log read.
const statusRequestsPerMinute = 60

// NewRouter returns the daemon-mode HTTP handler:
//
//	GET /metrics  Prometheus exposition
//	GET /healthz  database connectivity and last run
//	GET /status   last run report, table counts, recent run log rows
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/healthz", h.Healthz)
	r.With(httprate.LimitByIP(statusRequestsPerMinute, time.Minute)).Get("/status", h.Status)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	return r
}
