// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package testinfra

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// CapturedRequest is one request received by a MockAPIServer.
type CapturedRequest struct {
	Method  string
	Path    string
	Query   url.Values
	Headers http.Header
	Body    []byte
}

// MockAPIServer is an httptest server standing in for an external API
// (search, text analytics, LLM). It records every request and answers with
// a fixed status and body, or through ResponseFunc when set.
type MockAPIServer struct {
	Server   *httptest.Server
	captures []CapturedRequest
	mu       sync.Mutex

	// ResponseStatus is the HTTP status code to return (default: 200).
	ResponseStatus int

	// ResponseBody is the response body to return.
	ResponseBody []byte

	// ResponseFunc allows custom response handling per request. It receives
	// the request body already read.
	ResponseFunc func(w http.ResponseWriter, r *http.Request, body []byte)
}

// NewMockAPIServer starts a server that is closed when the test ends.
func NewMockAPIServer(t testing.TB) *MockAPIServer {
	t.Helper()

	m := &MockAPIServer{ResponseStatus: http.StatusOK}

	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			_ = r.Body.Close()
		}

		m.mu.Lock()
		m.captures = append(m.captures, CapturedRequest{
			Method:  r.Method,
			Path:    r.URL.Path,
			Query:   r.URL.Query(),
			Headers: r.Header.Clone(),
			Body:    body,
		})
		respond := m.ResponseFunc
		status, payload := m.ResponseStatus, m.ResponseBody
		m.mu.Unlock()

		if respond != nil {
			respond(w, r, body)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if payload != nil {
			_, _ = w.Write(payload)
		}
	}))
	t.Cleanup(m.Server.Close)

	return m
}

// URL returns the server URL.
func (m *MockAPIServer) URL() string {
	return m.Server.URL
}

// Respond sets the fixed status and body for subsequent requests.
func (m *MockAPIServer) Respond(status int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponseFunc = nil
	m.ResponseStatus = status
	m.ResponseBody = []byte(body)
}

// Captures returns all captured requests.
func (m *MockAPIServer) Captures() []CapturedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]CapturedRequest, len(m.captures))
	copy(result, m.captures)
	return result
}

// Count returns the number of requests received.
func (m *MockAPIServer) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.captures)
}

// ClearCaptures clears all captured requests.
func (m *MockAPIServer) ClearCaptures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.captures = nil
}
