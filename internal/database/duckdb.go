// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

//go:build !noduckdb

package database

import (
	_ "github.com/duckdb/duckdb-go/v2"
)

// duckdbCompiled reports whether the duckdb driver is linked in.
const duckdbCompiled = true
