// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package sentiment

import (
	"errors"
	"fmt"
)

// ErrNoDocuments is returned by providers asked to analyze an empty batch.
var ErrNoDocuments = errors.New("no documents to analyze")

// APIError is a non-2xx response from a sentiment provider.
type APIError struct {
	Provider   string
	StatusCode int
	Code       string
	Message    string
	Err        error // underlying SDK error, if any
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s sentiment API returned status %d", e.Provider, e.StatusCode)
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying later could succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
