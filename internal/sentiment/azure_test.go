// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package sentiment

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/postpulse/internal/config"
	"github.com/tomtom215/postpulse/internal/testinfra"
)

const azureMixedResponse = `{
  "documents": [
    {"id": "0", "sentiment": "positive", "confidenceScores": {"positive": 0.91, "neutral": 0.07, "negative": 0.02}, "sentences": [], "warnings": []},
    {"id": "2", "sentiment": "negative", "confidenceScores": {"positive": 0.01, "neutral": 0.09, "negative": 0.9}, "sentences": [], "warnings": []}
  ],
  "errors": [
    {"id": "1", "error": {"code": "InvalidArgument", "message": "Invalid document in request.", "innererror": {"code": "InvalidDocument", "message": "Document text is empty."}}}
  ],
  "modelVersion": "2022-11-01"
}`

func newTestAzure(t *testing.T) (*AzureProvider, *testinfra.MockAPIServer) {
	t.Helper()
	server := testinfra.NewMockAPIServer(t)
	p := NewAzureProvider(&config.SentimentConfig{
		Endpoint: server.URL() + "/",
		Key:      "azure-key",
		Timeout:  5 * time.Second,
	})
	return p, server
}

func TestAzure_Analyze(t *testing.T) {
	p, server := newTestAzure(t)
	server.Respond(http.StatusOK, azureMixedResponse)

	docs := []Document{
		{ID: "0", Language: "nl", Text: "Geweldig debat!"},
		{ID: "1", Language: "nl", Text: ""},
		{ID: "2", Language: "nl", Text: "Wat een drama"},
	}
	res, err := p.Analyze(context.Background(), docs)
	require.NoError(t, err)

	require.Len(t, res.Documents, 2)
	assert.Equal(t, DocumentResult{ID: "0", Sentiment: "positive", Positive: 0.91, Neutral: 0.07, Negative: 0.02}, res.Documents[0])
	assert.Equal(t, "negative", res.Documents[1].Sentiment)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, DocumentError{ID: "1", Code: "InvalidDocument", Message: "Document text is empty."}, res.Errors[0])

	req := server.Captures()[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/text/analytics/v3.1/sentiment", req.Path)
	assert.Equal(t, "azure-key", req.Headers.Get("Ocp-Apim-Subscription-Key"))
	assert.Equal(t, "application/json", req.Headers.Get("Content-Type"))

	var sent azureRequest
	require.NoError(t, json.Unmarshal(req.Body, &sent))
	require.Len(t, sent.Documents, 3)
	assert.Equal(t, azureDocument{ID: "2", Language: "nl", Text: "Wat een drama"}, sent.Documents[2])
}

func TestAzure_APIError(t *testing.T) {
	p, server := newTestAzure(t)
	server.Respond(http.StatusUnauthorized, `{"error":{"code":"401","message":"Access denied due to invalid subscription key."}}`)

	_, err := p.Analyze(context.Background(), []Document{{ID: "0", Text: "x"}})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "error = %v", err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "401", apiErr.Code)
	assert.Equal(t, "Access denied due to invalid subscription key.", apiErr.Message)
	assert.False(t, apiErr.Temporary())
	assert.Contains(t, apiErr.Error(), "azure sentiment API returned status 401")
}

func TestAzure_APIErrorPlainBody(t *testing.T) {
	p, server := newTestAzure(t)
	server.Respond(http.StatusBadGateway, "bad gateway")

	_, err := p.Analyze(context.Background(), []Document{{ID: "0", Text: "x"}})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "bad gateway", apiErr.Message)
	assert.True(t, apiErr.Temporary())
}

func TestAzure_BatchLimits(t *testing.T) {
	p, server := newTestAzure(t)

	_, err := p.Analyze(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoDocuments)

	_, err = p.Analyze(context.Background(), make([]Document, 11))
	assert.Error(t, err)
	assert.Zero(t, server.Count())
}

func TestCountsAsSuccess(t *testing.T) {
	assert.True(t, countsAsSuccess(nil))
	assert.True(t, countsAsSuccess(context.Canceled))
	assert.True(t, countsAsSuccess(ErrNoDocuments))
	assert.True(t, countsAsSuccess(&APIError{StatusCode: 400}))
	assert.False(t, countsAsSuccess(&APIError{StatusCode: 429}))
	assert.False(t, countsAsSuccess(&APIError{StatusCode: 500}))
	assert.False(t, countsAsSuccess(errors.New("connection refused")))
}
