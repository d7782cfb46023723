// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/goccy/go-json"

	"github.com/tomtom215/postpulse/internal/breaker"
	"github.com/tomtom215/postpulse/internal/config"
	"github.com/tomtom215/postpulse/internal/logging"
	"github.com/tomtom215/postpulse/internal/metrics"
)

// Ensure AnthropicProvider implements Provider
var _ Provider = (*AnthropicProvider)(nil)

// AnthropicProvider classifies documents with a Claude model through the
// Messages API. It answers in the same shape as Text Analytics: a label and
// three confidence scores per document, or an error entry.
type AnthropicProvider struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
	breaker   *breaker.Breaker
}

// llmResult is one element of the JSON array the model is asked to return.
type llmResult struct {
	ID        string  `json:"id"`
	Sentiment string  `json:"sentiment"`
	Positive  float64 `json:"positive"`
	Neutral   float64 `json:"neutral"`
	Negative  float64 `json:"negative"`
	Error     string  `json:"error,omitempty"`
}

// NewAnthropicProvider creates a provider from cfg. The SDK's own retries
// are disabled; failures surface to the pipeline unchanged.
func NewAnthropicProvider(cfg *config.SentimentConfig) *AnthropicProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.AnthropicAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.AnthropicBaseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimSuffix(cfg.AnthropicBaseURL, "/")+"/"))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	client := anthropic.NewClient(opts...)

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	settings := breaker.DefaultSettings("sentiment-anthropic")
	settings.IsSuccessful = countsAsSuccess

	return &AnthropicProvider{
		client:    &client,
		model:     cfg.Model,
		maxTokens: maxTokens,
		breaker:   breaker.New(settings),
	}
}

// Name returns "anthropic".
func (p *AnthropicProvider) Name() string {
	return config.ProviderAnthropic
}

// Analyze sends docs in one message and parses the JSON array reply.
func (p *AnthropicProvider) Analyze(ctx context.Context, docs []Document) (*BatchResult, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	prompt := buildPrompt(docs)

	text, err := breaker.Call(p.breaker, func() (string, error) {
		return p.complete(ctx, prompt)
	})
	if err != nil {
		return nil, err
	}

	// Prepend "[" since we used prefilling - the response continues from after the "["
	out, err := parseLLMResponse("["+text, docs)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Str("model", p.model).
		Int("documents", len(out.Documents)).
		Int("errors", len(out.Errors)).
		Msg("Anthropic sentiment batch analyzed")

	return out, nil
}

func (p *AnthropicProvider) complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	// Use prefilling to ensure Claude continues with valid JSON (starting after the "[")
	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			anthropic.NewAssistantMessage(anthropic.NewTextBlock("[")),
		},
	})
	if err != nil {
		var sdkErr *anthropic.Error
		if errors.As(err, &sdkErr) {
			metrics.RecordExternalRequest("sentiment_anthropic", fmt.Sprintf("%d", sdkErr.StatusCode), time.Since(start))
			return "", &APIError{
				Provider:   config.ProviderAnthropic,
				StatusCode: sdkErr.StatusCode,
				Message:    logging.Truncate(sdkErr.Error(), 300),
				Err:        err,
			}
		}
		metrics.RecordExternalRequest("sentiment_anthropic", "error", time.Since(start))
		return "", fmt.Errorf("failed to call anthropic API: %w", err)
	}
	metrics.RecordExternalRequest("sentiment_anthropic", "200", time.Since(start))

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}
	if responseText == "" {
		return "", errors.New("anthropic returned empty response")
	}
	return responseText, nil
}

// parseLLMResponse decodes the model's JSON array. Entries with an error,
// and documents the model left out, become DocumentErrors; ids that were
// never sent are ignored.
func parseLLMResponse(raw string, docs []Document) (*BatchResult, error) {
	var results []llmResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &results); err != nil {
		return nil, fmt.Errorf("failed to parse sentiment JSON: %w (response was: %.500s)", err, raw)
	}

	sent := make(map[string]bool, len(docs))
	for _, d := range docs {
		sent[d.ID] = true
	}

	out := &BatchResult{}
	seen := make(map[string]bool, len(results))
	for _, r := range results {
		if !sent[r.ID] || seen[r.ID] {
			continue
		}
		seen[r.ID] = true

		if r.Error != "" {
			out.Errors = append(out.Errors, DocumentError{ID: r.ID, Code: "ModelRejected", Message: r.Error})
			continue
		}
		out.Documents = append(out.Documents, DocumentResult{
			ID:        r.ID,
			Sentiment: strings.ToLower(strings.TrimSpace(r.Sentiment)),
			Positive:  r.Positive,
			Neutral:   r.Neutral,
			Negative:  r.Negative,
		})
	}

	for _, d := range docs {
		if !seen[d.ID] {
			out.Errors = append(out.Errors, DocumentError{ID: d.ID, Code: "MissingResult", Message: "model returned no entry"})
		}
	}
	return out, nil
}
