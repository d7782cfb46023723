// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package search

import (
	"errors"
	"fmt"
	"strings"
)

// MaxQueryLength is the longest query the search API accepts, in characters.
const MaxQueryLength = 500

// ErrQueryTooLong is returned before any request when the query exceeds
// MaxQueryLength characters.
var ErrQueryTooLong = errors.New("search query exceeds 500 characters")

// APIError is a non-2xx response from the search API.
type APIError struct {
	StatusCode int
	Codes      []int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("search API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("search API returned status %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
}

// Temporary reports whether retrying later could succeed: rate limiting or
// a server-side failure.
func (e *APIError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
