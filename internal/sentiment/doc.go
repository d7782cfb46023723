// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

/*
Package sentiment annotates stored posts with sentiment scores.

An Analyzer splits the posts of a run into chunks of at most 10, sends each
chunk to a Provider in order and matches every returned document back to
its post by position within the chunk. Successful results are written with
a single AppendSentiment call, which assigns contiguous ids from the next
free id of the sentiment table.

# Providers

  - AzureProvider: Azure Text Analytics v3.1 /sentiment, key in the
    Ocp-Apim-Subscription-Key header
  - AnthropicProvider: a Claude model through the Messages API, asked for
    the same label and three confidence scores

Both run under a circuit breaker and report request counts and latency to
Prometheus.

# Outcomes

Every input post yields an Outcome:

	report, err := analyzer.Analyze(ctx, posts)
	for _, o := range report.Outcomes {
	    if !o.IsOK() {
	        fmt.Println(o.PostID, o.Reason)
	    }
	}

Documents the provider marks as errors are Skipped, logged at WARN and not
stored; they are not pipeline failures. A provider call that fails as a
whole (transport, non-2xx, breaker open) aborts the analysis before
anything is written.
*/
package sentiment
