// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package sentiment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/postpulse/internal/breaker"
	"github.com/tomtom215/postpulse/internal/config"
	"github.com/tomtom215/postpulse/internal/logging"
	"github.com/tomtom215/postpulse/internal/metrics"
)

const (
	azureSentimentPath = "/text/analytics/v3.1/sentiment"
	azureKeyHeader     = "Ocp-Apim-Subscription-Key"
	maxErrorBody       = 64 << 10
)

// Ensure AzureProvider implements Provider
var _ Provider = (*AzureProvider)(nil)

// AzureProvider calls the Azure Text Analytics v3.1 sentiment endpoint.
type AzureProvider struct {
	endpoint   string
	key        string
	httpClient *http.Client
	breaker    *breaker.Breaker
}

type azureRequest struct {
	Documents []azureDocument `json:"documents"`
}

type azureDocument struct {
	ID       string `json:"id"`
	Language string `json:"language,omitempty"`
	Text     string `json:"text"`
}

type azureResponse struct {
	Documents []struct {
		ID               string `json:"id"`
		Sentiment        string `json:"sentiment"`
		ConfidenceScores struct {
			Positive float64 `json:"positive"`
			Neutral  float64 `json:"neutral"`
			Negative float64 `json:"negative"`
		} `json:"confidenceScores"`
	} `json:"documents"`
	Errors []struct {
		ID    string     `json:"id"`
		Error azureError `json:"error"`
	} `json:"errors"`
	ModelVersion string `json:"modelVersion"`
}

type azureError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	InnerError *azureError `json:"innererror,omitempty"`
}

// NewAzureProvider creates a provider for cfg.Endpoint authenticated with cfg.Key.
func NewAzureProvider(cfg *config.SentimentConfig) *AzureProvider {
	settings := breaker.DefaultSettings("sentiment-azure")
	settings.IsSuccessful = countsAsSuccess

	return &AzureProvider{
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		key:        cfg.Key,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker.New(settings),
	}
}

// Name returns "azure".
func (p *AzureProvider) Name() string {
	return config.ProviderAzure
}

// Analyze sends docs in one request.
func (p *AzureProvider) Analyze(ctx context.Context, docs []Document) (*BatchResult, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	if len(docs) > MaxBatchSize {
		return nil, fmt.Errorf("azure accepts at most %d documents per request, got %d", MaxBatchSize, len(docs))
	}

	payload := azureRequest{Documents: make([]azureDocument, len(docs))}
	for i, d := range docs {
		payload.Documents[i] = azureDocument{ID: d.ID, Language: d.Language, Text: d.Text}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode azure request: %w", err)
	}

	resp, err := breaker.Call(p.breaker, func() (*azureResponse, error) {
		return p.post(ctx, body)
	})
	if err != nil {
		return nil, err
	}

	out := &BatchResult{
		Documents: make([]DocumentResult, 0, len(resp.Documents)),
		Errors:    make([]DocumentError, 0, len(resp.Errors)),
	}
	for _, d := range resp.Documents {
		out.Documents = append(out.Documents, DocumentResult{
			ID:        d.ID,
			Sentiment: d.Sentiment,
			Positive:  d.ConfidenceScores.Positive,
			Neutral:   d.ConfidenceScores.Neutral,
			Negative:  d.ConfidenceScores.Negative,
		})
	}
	for _, e := range resp.Errors {
		de := DocumentError{ID: e.ID, Code: e.Error.Code, Message: e.Error.Message}
		if inner := e.Error.InnerError; inner != nil && inner.Code != "" {
			de.Code = inner.Code
			if inner.Message != "" {
				de.Message = inner.Message
			}
		}
		out.Errors = append(out.Errors, de)
	}

	logging.Ctx(ctx).Debug().
		Int("documents", len(out.Documents)).
		Int("errors", len(out.Errors)).
		Str("model_version", resp.ModelVersion).
		Msg("Azure sentiment batch analyzed")

	return out, nil
}

func (p *AzureProvider) post(ctx context.Context, body []byte) (*azureResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+azureSentimentPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(azureKeyHeader, p.key)

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		metrics.RecordExternalRequest("sentiment_azure", "error", time.Since(start))
		return nil, fmt.Errorf("azure request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordExternalRequest("sentiment_azure", strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAzureAPIError(resp)
	}

	var out azureResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode azure response: %w", err)
	}
	return &out, nil
}

func newAzureAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Provider: config.ProviderAzure, StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload struct {
		Error azureError `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error.Message == "" {
		apiErr.Message = logging.Truncate(strings.TrimSpace(string(body)), 200)
		return apiErr
	}
	apiErr.Code = payload.Error.Code
	apiErr.Message = payload.Error.Message
	return apiErr
}

// countsAsSuccess keeps request-caused failures and cancellations from
// tripping a provider breaker.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrNoDocuments) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return !apiErr.Temporary()
	}
	return false
}
