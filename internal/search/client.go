// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dghubble/oauth1"
	"github.com/goccy/go-json"

	"github.com/tomtom215/postpulse/internal/breaker"
	"github.com/tomtom215/postpulse/internal/config"
	"github.com/tomtom215/postpulse/internal/logging"
	"github.com/tomtom215/postpulse/internal/metrics"
	"github.com/tomtom215/postpulse/internal/models"
)

const (
	searchPath  = "/search/tweets.json"
	serviceName = "search"

	// maxErrorBody bounds how much of a failed response is read.
	maxErrorBody = 64 << 10
)

// WatermarkSource provides the largest stored post id. ok is false when no
// posts are stored yet.
type WatermarkSource interface {
	MaxPostID(ctx context.Context) (id int64, ok bool, err error)
}

// Searcher is the contract the pipeline depends on.
type Searcher interface {
	Search(ctx context.Context, query string, filterSinceLastFetch bool) ([]models.Post, error)
}

// Ensure Client implements Searcher
var _ Searcher = (*Client)(nil)

// Client calls the search API. It has no side effects besides the HTTP
// request and the watermark read.
type Client struct {
	httpClient *http.Client
	baseURL    string
	language   string
	resultType string
	count      int
	watermark  WatermarkSource
	breaker    *breaker.Breaker
}

// NewClient creates a search client signing requests with the OAuth 1.0a
// credentials in tw. watermark may be nil when incremental fetch is never
// requested.
func NewClient(tw *config.TwitterConfig, sc *config.SearchConfig, watermark WatermarkSource) *Client {
	oauthConfig := oauth1.NewConfig(tw.APIKey, tw.APIKeySecret)
	token := oauth1.NewToken(tw.AccessToken, tw.AccessTokenSecret)

	httpClient := oauthConfig.Client(oauth1.NoContext, token)
	httpClient.Timeout = tw.Timeout

	settings := breaker.DefaultSettings("search-api")
	settings.IsSuccessful = countsAsSuccess

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(tw.BaseURL, "/"),
		language:   sc.Language,
		resultType: sc.ResultType,
		count:      sc.Count,
		watermark:  watermark,
		breaker:    breaker.New(settings),
	}
}

// Search returns the posts matching query, newest first as delivered by the
// API. With filterSinceLastFetch set only posts newer than the stored
// watermark are requested. No statuses yields an empty slice and no error.
func (c *Client) Search(ctx context.Context, query string, filterSinceLastFetch bool) ([]models.Post, error) {
	if n := utf8.RuneCountInString(query); n > MaxQueryLength {
		return nil, fmt.Errorf("%w (%d characters)", ErrQueryTooLong, n)
	}

	params := url.Values{}
	params.Set("q", query)
	if c.language != "" {
		params.Set("lang", c.language)
	}
	if c.resultType != "" {
		params.Set("result_type", c.resultType)
	}
	if c.count > 0 {
		params.Set("count", strconv.Itoa(c.count))
	}

	if filterSinceLastFetch && c.watermark != nil {
		sinceID, ok, err := c.watermark.MaxPostID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read since_id watermark: %w", err)
		}
		if ok {
			params.Set("since_id", strconv.FormatInt(sinceID, 10))
		}
	}

	resp, err := breaker.Call(c.breaker, func() (*searchResponse, error) {
		return c.fetch(ctx, params)
	})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	posts := normalizeAll(ctx, resp.Statuses)

	logging.Ctx(ctx).Debug().
		Str("since_id", params.Get("since_id")).
		Int("posts", len(posts)).
		Int64("max_id", resp.SearchMetadata.MaxID).
		Msg("Search completed")

	return posts, nil
}

// fetch performs one signed GET and decodes the body.
func (c *Client) fetch(ctx context.Context, params url.Values) (*searchResponse, error) {
	reqURL := c.baseURL + searchPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordExternalRequest(serviceName, "error", time.Since(start))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordExternalRequest(serviceName, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return &out, nil
}

// newAPIError builds an APIError from a failed response. The error payload
// is optional; an unreadable body leaves Messages empty.
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		apiErr.Messages = []string{logging.Truncate(strings.TrimSpace(string(body)), 200)}
		return apiErr
	}
	for _, e := range payload.Errors {
		apiErr.Codes = append(apiErr.Codes, e.Code)
		apiErr.Messages = append(apiErr.Messages, e.Message)
	}
	return apiErr
}

// countsAsSuccess keeps request-caused failures and cancellations from
// tripping the breaker.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return !apiErr.Temporary()
	}
	return false
}
