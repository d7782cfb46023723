// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

//go:build noduckdb

package database

// duckdbCompiled reports whether the duckdb driver is linked in.
// Build with -tags noduckdb to drop the cgo dependency.
const duckdbCompiled = false
