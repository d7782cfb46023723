// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package config

import (
	"strings"
	"testing"
)

// validConfig returns a defaults-based config that passes validation.
func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Twitter.APIKey = "key"
	cfg.Twitter.APIKeySecret = "key-secret"
	cfg.Twitter.AccessToken = "token"
	cfg.Twitter.AccessTokenSecret = "token-secret"
	cfg.Search.Query = "election"
	cfg.Database.User = "sa"
	cfg.Database.Password = "hunter2"
	cfg.Database.ServerName = "sql.example.net"
	cfg.Database.DatabaseName = "social"
	cfg.Sentiment.Endpoint = "https://example.cognitiveservices.azure.com/"
	cfg.Sentiment.Key = "azure-key"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing twitter key",
			mutate:  func(c *Config) { c.Twitter.APIKey = "" },
			wantErr: "twitter.api_key is required",
		},
		{
			name:    "missing query",
			mutate:  func(c *Config) { c.Search.Query = "" },
			wantErr: "search.query is required",
		},
		{
			name:   "long query is left to the search client",
			mutate: func(c *Config) { c.Search.Query = strings.Repeat("a", 501) },
		},
		{
			name:    "bad result type",
			mutate:  func(c *Config) { c.Search.ResultType = "latest" },
			wantErr: "search.result_type must be one of",
		},
		{
			name:    "batch size above 10",
			mutate:  func(c *Config) { c.Sentiment.BatchSize = 11 },
			wantErr: "sentiment.batch_size must be at most 10",
		},
		{
			name:    "batch size zero",
			mutate:  func(c *Config) { c.Sentiment.BatchSize = 0 },
			wantErr: "sentiment.batch_size must be at least 1",
		},
		{
			name:    "unknown dialect",
			mutate:  func(c *Config) { c.Database.Dialect = "oracle" },
			wantErr: "database.dialect must be one of",
		},
		{
			name:    "table name injection",
			mutate:  func(c *Config) { c.Database.LogsTable = "logs; DROP TABLE posts" },
			wantErr: "database.logs_table must be a plain SQL identifier",
		},
		{
			name:    "mssql without password",
			mutate:  func(c *Config) { c.Database.Password = "" },
			wantErr: "PASSWORD is required",
		},
		{
			name:    "mssql without server",
			mutate:  func(c *Config) { c.Database.ServerName = "" },
			wantErr: "SERVER_NAME or DB_DSN is required",
		},
		{
			name: "dsn satisfies mssql",
			mutate: func(c *Config) {
				c.Database.ServerName = ""
				c.Database.Password = ""
				c.Database.DSN = "sqlserver://sa:pw@localhost?database=social"
			},
		},
		{
			name: "postgres needs no password",
			mutate: func(c *Config) {
				c.Database.Dialect = DialectPostgres
				c.Database.Password = ""
			},
		},
		{
			name:    "sqlite without path",
			mutate:  func(c *Config) { c.Database.Dialect = DialectSQLite },
			wantErr: "DB_PATH or DB_DSN is required",
		},
		{
			name: "sqlite with path",
			mutate: func(c *Config) {
				c.Database.Dialect = DialectSQLite
				c.Database.Path = "postpulse.db"
			},
		},
		{
			name:    "azure without key",
			mutate:  func(c *Config) { c.Sentiment.Key = "" },
			wantErr: "SENT_KEY is required",
		},
		{
			name:    "azure with bad endpoint",
			mutate:  func(c *Config) { c.Sentiment.Endpoint = "ftp://example.net" },
			wantErr: "SENT_ENDPOINT is invalid",
		},
		{
			name: "disabled sentiment needs no credentials",
			mutate: func(c *Config) {
				c.Sentiment.Enabled = false
				c.Sentiment.Endpoint = ""
				c.Sentiment.Key = ""
			},
		},
		{
			name:    "anthropic without key",
			mutate:  func(c *Config) { c.Sentiment.Provider = ProviderAnthropic },
			wantErr: "ANTHROPIC_API_KEY is required",
		},
		{
			name: "anthropic with key",
			mutate: func(c *Config) {
				c.Sentiment.Provider = ProviderAnthropic
				c.Sentiment.AnthropicAPIKey = "sk-ant"
			},
		},
		{
			name: "bad cron in daemon mode",
			mutate: func(c *Config) {
				c.Schedule.Enabled = true
				c.Schedule.Cron = "every fifteen minutes"
			},
			wantErr: "SCHEDULE_CRON",
		},
		{
			name: "standard cron in daemon mode",
			mutate: func(c *Config) {
				c.Schedule.Enabled = true
				c.Schedule.Cron = "*/15 * * * *"
			},
		},
		{
			name:   "bad cron ignored when daemon off",
			mutate: func(c *Config) { c.Schedule.Cron = "nonsense" },
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateHTTPURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://api.twitter.com/1.1", false},
		{"http://127.0.0.1:8080", false},
		{"https://example.cognitiveservices.azure.com/", false},
		{"ftp://example.net", true},
		{"https://", true},
		{"https://example.net/?key=1", true},
	}

	for _, tt := range tests {
		err := validateHTTPURL(tt.url, "TEST_URL")
		if (err != nil) != tt.wantErr {
			t.Errorf("validateHTTPURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}

func TestIsFileDatabase(t *testing.T) {
	for dialect, want := range map[string]bool{
		DialectSQLite:   true,
		DialectDuckDB:   true,
		DialectPostgres: false,
		DialectMySQL:    false,
		DialectMSSQL:    false,
	} {
		db := DatabaseConfig{Dialect: dialect}
		if got := db.IsFileDatabase(); got != want {
			t.Errorf("IsFileDatabase(%s) = %v, want %v", dialect, got, want)
		}
	}
}
