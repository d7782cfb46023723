// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package sentiment

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a sentiment classifier for short social media posts.
For every document return one JSON object with the fields:
  "id": the document id, unchanged
  "sentiment": one of "positive", "neutral", "negative", "mixed"
  "positive", "neutral", "negative": confidence scores between 0 and 1 that sum to 1
If a document cannot be classified (empty, unreadable, not in the stated language)
return {"id": "<id>", "error": "<short reason>"} instead.
Reply with a JSON array only, one element per document, in input order.`

// buildPrompt lists the documents with their ids and language hints.
func buildPrompt(docs []Document) string {
	var sb strings.Builder

	sb.WriteString("Classify the sentiment of the following documents.\n\n")
	for _, d := range docs {
		sb.WriteString(fmt.Sprintf("### Document %s", d.ID))
		if d.Language != "" {
			sb.WriteString(fmt.Sprintf(" (language: %s)", d.Language))
		}
		sb.WriteString("\n")
		sb.WriteString(d.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
