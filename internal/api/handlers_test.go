// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/postpulse/internal/audit"
	"github.com/tomtom215/postpulse/internal/database"
	"github.com/tomtom215/postpulse/internal/models"
	"github.com/tomtom215/postpulse/internal/pipeline"
	"github.com/tomtom215/postpulse/internal/testinfra"
)

type fakeRuns struct {
	report *pipeline.Report
}

func (f *fakeRuns) LastReport() *pipeline.Report { return f.report }

type fakeStore struct {
	pingErr  error
	countErr error
	counts   map[string]int64
	logs     []models.LogEntry
	limit    int
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) Dialect() string { return "sqlite" }

func (f *fakeStore) Tables() database.Tables {
	return database.Tables{Posts: "posts", Sentiment: "sentiment", Logs: "logs"}
}

func (f *fakeStore) CountRows(_ context.Context, table string) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.counts[table], nil
}

func (f *fakeStore) ListLogs(_ context.Context, limit int) ([]models.LogEntry, error) {
	f.limit = limit
	return f.logs, nil
}

type envelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

func do(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func TestHealthz(t *testing.T) {
	finished := &pipeline.Report{RunID: "r1", StartedAt: time.Date(2022, 9, 20, 10, 0, 0, 0, time.UTC)}

	tests := []struct {
		name       string
		pingErr    error
		report     *pipeline.Report
		wantCode   int
		wantStatus string
		wantLast   bool
	}{
		{"healthy without runs", nil, nil, http.StatusOK, "healthy", false},
		{"healthy with last run", nil, finished, http.StatusOK, "healthy", true},
		{"database down", errors.New("dial tcp: refused"), nil, http.StatusServiceUnavailable, "degraded", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(NewHandler(&fakeRuns{report: tt.report}, &fakeStore{pingErr: tt.pingErr}))

			rec, env := do(t, router, http.MethodGet, "/healthz")
			if rec.Code != tt.wantCode {
				t.Errorf("status code = %d, want %d", rec.Code, tt.wantCode)
			}

			var health models.HealthStatus
			if err := json.Unmarshal(env.Data, &health); err != nil {
				t.Fatalf("decode health: %v", err)
			}
			if health.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", health.Status, tt.wantStatus)
			}
			if (health.LastRunAt != nil) != tt.wantLast {
				t.Errorf("LastRunAt = %v, want set = %v", health.LastRunAt, tt.wantLast)
			}
			if tt.wantLast && health.LastRunStatus != "ok" {
				t.Errorf("LastRunStatus = %q, want ok", health.LastRunStatus)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	store := &fakeStore{
		counts: map[string]int64{"posts": 13, "sentiment": 12, "logs": 6},
		logs:   []models.LogEntry{{ID: 5, LogType: models.LogInfo, Message: "Sentiment analyzed"}},
	}
	report := &pipeline.Report{RunID: "run-1", Query: "election"}
	router := NewRouter(NewHandler(&fakeRuns{report: report}, store))

	rec, env := do(t, router, http.MethodGet, "/status?limit=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, body = %s", rec.Code, rec.Body.String())
	}
	if store.limit != 3 {
		t.Errorf("ListLogs limit = %d, want 3", store.limit)
	}

	var status StatusResponse
	if err := json.Unmarshal(env.Data, &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Tables != (models.TableCounts{Posts: 13, Sentiment: 12, Logs: 6}) {
		t.Errorf("Tables = %+v", status.Tables)
	}
	if status.LastRun == nil || status.LastRun.RunID != "run-1" {
		t.Errorf("LastRun = %+v", status.LastRun)
	}
	if len(status.RecentLogs) != 1 || status.RecentLogs[0].Message != "Sentiment analyzed" {
		t.Errorf("RecentLogs = %+v", status.RecentLogs)
	}
}

func TestStatus_DefaultLimit(t *testing.T) {
	store := &fakeStore{}
	router := NewRouter(NewHandler(&fakeRuns{}, store))

	rec, _ := do(t, router, http.MethodGet, "/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d", rec.Code)
	}
	if store.limit != defaultLogLimit {
		t.Errorf("ListLogs limit = %d, want %d", store.limit, defaultLogLimit)
	}
}

func TestStatus_InvalidLimit(t *testing.T) {
	router := NewRouter(NewHandler(&fakeRuns{}, &fakeStore{}))

	for _, limit := range []string{"0", "101", "ten", "-1"} {
		rec, env := do(t, router, http.MethodGet, "/status?limit="+limit)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: status code = %d, want 400", limit, rec.Code)
		}
		if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
			t.Errorf("limit=%s: error = %+v", limit, env.Error)
		}
	}
}

func TestStatus_DatabaseError(t *testing.T) {
	router := NewRouter(NewHandler(&fakeRuns{}, &fakeStore{countErr: errors.New("no such table: posts")}))

	rec, env := do(t, router, http.MethodGet, "/status")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status code = %d, want 500", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "DATABASE_ERROR" {
		t.Fatalf("error = %+v", env.Error)
	}
	if strings.Contains(env.Error.Message, "no such table") {
		t.Error("internal error details must not reach the client")
	}
}

func TestRouter_Metrics(t *testing.T) {
	router := NewRouter(NewHandler(&fakeRuns{}, &fakeStore{}))

	_, _ = do(t, router, http.MethodGet, "/healthz")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("expected Go runtime metrics in exposition")
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	router := NewRouter(NewHandler(&fakeRuns{}, &fakeStore{}))

	rec, env := do(t, router, http.MethodGet, "/nope")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Errorf("GET /nope = %d %+v", rec.Code, env.Error)
	}

	rec, env = do(t, router, http.MethodPost, "/status")
	if rec.Code != http.StatusMethodNotAllowed || env.Error == nil || env.Error.Code != "METHOD_NOT_ALLOWED" {
		t.Errorf("POST /status = %d %+v", rec.Code, env.Error)
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	router := NewRouter(NewHandler(&fakeRuns{}, &fakeStore{}))

	rec, _ := do(t, router, http.MethodGet, "/healthz")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestRouter_StatusRateLimit(t *testing.T) {
	router := NewRouter(NewHandler(&fakeRuns{}, &fakeStore{}))

	for i := 0; i < statusRequestsPerMinute; i++ {
		if rec, _ := do(t, router, http.MethodGet, "/status"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status code = %d", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}

	// Other routes are not limited.
	if rec, _ := do(t, router, http.MethodGet, "/healthz"); rec.Code != http.StatusOK {
		t.Errorf("/healthz status code = %d", rec.Code)
	}
}

func TestStatus_DatabaseBacked(t *testing.T) {
	ctx := context.Background()
	db, err := database.New(ctx, testinfra.SQLiteConfig(t))
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	runLog := audit.NewLogger(db)
	for _, msg := range []string{"Number of posts: 0", "second", "third"} {
		if err := runLog.Info(ctx, msg); err != nil {
			t.Fatalf("Info() error = %v", err)
		}
	}

	router := NewRouter(NewHandler(&fakeRuns{}, db))
	rec, env := do(t, router, http.MethodGet, "/status?limit=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, body = %s", rec.Code, rec.Body.String())
	}

	var status StatusResponse
	if err := json.Unmarshal(env.Data, &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Tables.Logs != 3 {
		t.Errorf("Tables.Logs = %d, want 3", status.Tables.Logs)
	}
	if len(status.RecentLogs) != 2 || status.RecentLogs[0].Message != "third" {
		t.Errorf("RecentLogs = %+v", status.RecentLogs)
	}
	if status.LastRun != nil {
		t.Errorf("LastRun = %+v, want nil", status.LastRun)
	}
}
