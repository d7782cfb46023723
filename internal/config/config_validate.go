// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package config

import (
	"fmt"
	"net/url"

	"github.com/robfig/cron/v3"

	"github.com/tomtom215/postpulse/internal/logging"
	"github.com/tomtom215/postpulse/internal/validation"
)

// Validate checks that required configuration is present and valid.
// Struct tags are checked first, then the rules that depend on other fields.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.validateTwitter(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateSentiment(); err != nil {
		return err
	}

	if err := c.validateSchedule(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateTwitter validates the search API base URL.
func (c *Config) validateTwitter() error {
	if err := validateHTTPURL(c.Twitter.BaseURL, "TWITTER_BASE_URL"); err != nil {
		return fmt.Errorf("TWITTER_BASE_URL is invalid: %w", err)
	}
	return nil
}

// validateDatabase checks that the selected dialect has enough to connect.
// An explicit DSN satisfies every dialect.
func (c *Config) validateDatabase() error {
	db := &c.Database
	if db.DSN != "" {
		return nil
	}

	switch db.Dialect {
	case DialectSQLite, DialectDuckDB:
		if db.Path == "" {
			return fmt.Errorf("DB_PATH or DB_DSN is required when DB_DIALECT=%s", db.Dialect)
		}
	case DialectMSSQL:
		if err := requireNetworkDatabase(db); err != nil {
			return err
		}
		if db.Password == "" {
			return fmt.Errorf("PASSWORD is required when DB_DIALECT=%s", db.Dialect)
		}
	case DialectPostgres, DialectMySQL:
		return requireNetworkDatabase(db)
	}
	return nil
}

// requireNetworkDatabase checks the fields used to assemble a server DSN.
func requireNetworkDatabase(db *DatabaseConfig) error {
	if db.ServerName == "" {
		return fmt.Errorf("SERVER_NAME or DB_DSN is required when DB_DIALECT=%s", db.Dialect)
	}
	if db.DatabaseName == "" {
		return fmt.Errorf("DATABASE_NAME is required when DB_DIALECT=%s", db.Dialect)
	}
	if db.User == "" {
		return fmt.Errorf("USER is required when DB_DIALECT=%s", db.Dialect)
	}
	return nil
}

// validateSentiment validates provider credentials (only if enabled).
func (c *Config) validateSentiment() error {
	s := &c.Sentiment
	if !s.Enabled {
		return nil
	}

	switch s.Provider {
	case ProviderAzure:
		if s.Endpoint == "" {
			return fmt.Errorf("SENT_ENDPOINT is required when SENT_PROVIDER=azure")
		}
		if err := validateHTTPURL(s.Endpoint, "SENT_ENDPOINT"); err != nil {
			return fmt.Errorf("SENT_ENDPOINT is invalid: %w", err)
		}
		if s.Key == "" {
			return fmt.Errorf("SENT_KEY is required when SENT_PROVIDER=azure")
		}
	case ProviderAnthropic:
		if s.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when SENT_PROVIDER=anthropic")
		}
		if s.Model == "" {
			return fmt.Errorf("SENT_MODEL is required when SENT_PROVIDER=anthropic")
		}
		if s.AnthropicBaseURL != "" {
			if err := validateHTTPURL(s.AnthropicBaseURL, "ANTHROPIC_BASE_URL"); err != nil {
				return fmt.Errorf("ANTHROPIC_BASE_URL is invalid: %w", err)
			}
		}
	}
	return nil
}

// validateSchedule parses the cron expression (only if daemon mode is on).
func (c *Config) validateSchedule() error {
	if !c.Schedule.Enabled {
		return nil
	}
	if _, err := cron.ParseStandard(c.Schedule.Cron); err != nil {
		return fmt.Errorf("SCHEDULE_CRON %q is invalid: %w", c.Schedule.Cron, err)
	}
	if c.Server.MetricsAddr == "" {
		return fmt.Errorf("METRICS_ADDR is required when SCHEDULE_ENABLED=true")
	}
	return nil
}

// validateLogging validates log level.
func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}

// validateHTTPURL validates that a URL is properly formatted for HTTP/HTTPS services.
// Paths are allowed because API base URLs carry a version segment.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
