// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide. Field names reported in
// errors come from `koanf` struct tags, so a failure on Config.Twitter.APIKey
// reads "twitter.api_key is required" and matches the key a user would set in
// the YAML config file.
//
// Custom tags:
//
//   - sqlident: a plain or schema-qualified SQL identifier ("logs", "dbo.logs")
//
// Example usage:
//
//	type DatabaseConfig struct {
//	    Dialect   string `koanf:"dialect" validate:"oneof=sqlite postgres mysql mssql duckdb"`
//	    LogsTable string `koanf:"logs_table" validate:"required,sqlident"`
//	}
//
//	if err := validation.ValidateStruct(&cfg); err != nil {
//	    return fmt.Errorf("invalid configuration: %w", err)
//	}
package validation
