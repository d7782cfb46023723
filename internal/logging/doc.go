// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

// Package logging provides centralized zerolog-based process logging for PostPulse.
//
// This is the process log written to stderr. The operational log that the
// pipeline writes to the database logs table lives in package audit and
// mirrors each row here as well.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("query", q).Msg("Pipeline starting")
//	logging.Error().Err(err).Msg("Fetch failed")
//
//	// Per-run context: every line carries run_id and stage
//	ctx = logging.ContextWithNewRunID(ctx)
//	ctx = logging.ContextWithStage(ctx, "fetch")
//	logging.Ctx(ctx).Info().Int("posts", n).Msg("Fetched posts")
//
// # Configuration
//
// Environment Variables (read by package config):
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// # Credentials
//
// Never log secrets directly. RedactDSN masks the password inside
// connection strings before they reach the startup log.
//
// # slog
//
// NewSlogLogger returns an *slog.Logger backed by zerolog for libraries that
// require slog, such as sutureslog.
package logging
