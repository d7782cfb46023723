// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package config

import (
	"time"
)

// Database dialects supported by the persistence gateway.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
	DialectMSSQL    = "mssql"
	DialectDuckDB   = "duckdb"
)

// Sentiment providers.
const (
	ProviderAzure     = "azure"
	ProviderAnthropic = "anthropic"
)

// Config holds all application configuration. It is built once by Load,
// validated, and then passed by value or pointer to every constructor.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults
//  2. YAML config file (--config, CONFIG_PATH, postpulse.yaml, /etc/postpulse/config.yaml)
//  3. Credential files (-t, -d, -s), dotenv format
//  4. Process environment variables
//  5. Command-line overrides
//
// Config is immutable after Load and safe for concurrent read access.
type Config struct {
	Twitter   TwitterConfig   `koanf:"twitter"`
	Search    SearchConfig    `koanf:"search"`
	Database  DatabaseConfig  `koanf:"database"`
	Sentiment SentimentConfig `koanf:"sentiment"`
	Schedule  ScheduleConfig  `koanf:"schedule"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// TwitterConfig holds the OAuth 1.0a credentials for the search API.
type TwitterConfig struct {
	APIKey            string        `koanf:"api_key" validate:"required"`
	APIKeySecret      string        `koanf:"api_key_secret" validate:"required"`
	AccessToken       string        `koanf:"access_token" validate:"required"`
	AccessTokenSecret string        `koanf:"access_token_secret" validate:"required"`
	BaseURL           string        `koanf:"base_url" validate:"required,url"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
}

// SearchConfig holds the query and the fixed search parameters.
type SearchConfig struct {
	Query                string `koanf:"query" validate:"required"`
	Language             string `koanf:"language"`
	ResultType           string `koanf:"result_type" validate:"oneof=recent mixed popular"`
	Count                int    `koanf:"count" validate:"min=1,max=100"`
	FilterSinceLastFetch bool   `koanf:"filter_since_last_fetch"`
}

// DatabaseConfig selects the SQL dialect and holds its connection parameters.
//
// When DSN is empty the connection string is assembled from the individual
// fields: User/Password/ServerName/DatabaseName for network databases and
// Path for file databases.
type DatabaseConfig struct {
	Dialect      string `koanf:"dialect" validate:"oneof=sqlite postgres mysql mssql duckdb"`
	DSN          string `koanf:"dsn"`
	User         string `koanf:"user"`
	Password     string `koanf:"password"`
	ServerName   string `koanf:"server_name"`
	DatabaseName string `koanf:"database_name"`
	DriverName   string `koanf:"driver_name"` // ODBC driver label kept from legacy credential files; informational only
	Path         string `koanf:"path"`

	PostsTable     string `koanf:"posts_table" validate:"required,sqlident"`
	SentimentTable string `koanf:"sentiment_table" validate:"required,sqlident"`
	LogsTable      string `koanf:"logs_table" validate:"required,sqlident"`
	CreateTables   bool   `koanf:"create_tables"`

	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"gte=0"`
	QueryTimeout    time.Duration `koanf:"query_timeout" validate:"gte=0"`
}

// SentimentConfig configures the sentiment stage and its provider.
type SentimentConfig struct {
	Enabled   bool          `koanf:"enabled"`
	Provider  string        `koanf:"provider" validate:"oneof=azure anthropic"`
	Language  string        `koanf:"language"`
	BatchSize int           `koanf:"batch_size" validate:"min=1,max=10"`
	Timeout   time.Duration `koanf:"timeout" validate:"gt=0"`

	// Azure Text Analytics
	Endpoint string `koanf:"endpoint"`
	Key      string `koanf:"key"`

	// Anthropic Messages API
	AnthropicAPIKey  string `koanf:"anthropic_api_key"`
	AnthropicBaseURL string `koanf:"anthropic_base_url"`
	Model            string `koanf:"model"`
	MaxTokens        int64  `koanf:"max_tokens" validate:"gte=0"`
}

// ScheduleConfig enables daemon mode.
type ScheduleConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Cron       string `koanf:"cron"`
	RunOnStart bool   `koanf:"run_on_start"`
}

// ServerConfig configures the daemon-mode HTTP server.
type ServerConfig struct {
	MetricsAddr     string        `koanf:"metrics_addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds process log settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// IsFileDatabase reports whether the dialect stores data in a local file.
func (d *DatabaseConfig) IsFileDatabase() bool {
	return d.Dialect == DialectSQLite || d.Dialect == DialectDuckDB
}
