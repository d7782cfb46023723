// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package sentiment

import (
	"context"
	"fmt"

	"github.com/tomtom215/postpulse/internal/config"
)

// Document is one text sent to a provider. ID is the position of the
// document within its chunk ("0", "1", ...).
type Document struct {
	ID       string
	Language string
	Text     string
}

// DocumentResult is the analysis of one document.
type DocumentResult struct {
	ID        string
	Sentiment string
	Positive  float64
	Neutral   float64
	Negative  float64
}

// DocumentError is a document the provider could not analyze.
type DocumentError struct {
	ID      string
	Code    string
	Message string
}

// BatchResult is a provider's answer to one call. Every document appears
// in at most one of the two lists.
type BatchResult struct {
	Documents []DocumentResult
	Errors    []DocumentError
}

// Provider analyzes up to 10 documents per call. A returned error means the
// whole call failed; per-document failures go into BatchResult.Errors.
type Provider interface {
	Name() string
	Analyze(ctx context.Context, docs []Document) (*BatchResult, error)
}

// NewProvider builds the provider selected by cfg.Provider.
func NewProvider(cfg *config.SentimentConfig) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderAzure:
		return NewAzureProvider(cfg), nil
	case config.ProviderAnthropic:
		return NewAnthropicProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unknown sentiment provider: %q", cfg.Provider)
	}
}
