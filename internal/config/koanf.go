// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"postpulse.yaml",
	"postpulse.yml",
	"/etc/postpulse/config.yaml",
	"/etc/postpulse/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// LoadOptions carries the command-line inputs to Load.
type LoadOptions struct {
	// ConfigPath is an explicit YAML file. It must exist when set.
	ConfigPath string

	// EnvFiles are dotenv credential files, applied in order.
	EnvFiles []string

	// Overrides are koanf paths set from command-line flags ("search.query").
	Overrides map[string]interface{}
}

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by every other layer.
func defaultConfig() *Config {
	return &Config{
		Twitter: TwitterConfig{
			BaseURL: "https://api.twitter.com/1.1",
			Timeout: 30 * time.Second,
		},
		Search: SearchConfig{
			Language:             "nl",
			ResultType:           "recent",
			Count:                100,
			FilterSinceLastFetch: true,
		},
		Database: DatabaseConfig{
			Dialect:         DialectMSSQL,
			PostsTable:      "posts",
			SentimentTable:  "sentiment",
			LogsTable:       "logs",
			MaxOpenConns:    4,
			ConnMaxLifetime: 30 * time.Minute,
			QueryTimeout:    30 * time.Second,
		},
		Sentiment: SentimentConfig{
			Enabled:          true,
			Provider:         ProviderAzure,
			Language:         "nl",
			BatchSize:        10,
			Timeout:          30 * time.Second,
			AnthropicBaseURL: "https://api.anthropic.com",
			Model:            "claude-sonnet-4-20250514",
			MaxTokens:        1024,
		},
		Schedule: ScheduleConfig{
			Enabled:    false,
			Cron:       "@every 15m",
			RunOnStart: true,
		},
		Server: ServerConfig{
			MetricsAddr:     ":9464",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds the configuration from layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file
//  3. Credential Files: dotenv files passed on the command line
//  4. Environment Variables: Override any setting
//  5. Overrides: command-line flags
//
// The result is validated before it is returned.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath, err := resolveConfigFile(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Credential files
	if len(opts.EnvFiles) > 0 {
		values, err := readCredentialFiles(opts.EnvFiles)
		if err != nil {
			return nil, err
		}
		if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load credential files: %w", err)
		}
	}

	// Layer 4: Load environment variables
	// TWITTER_API_KEY -> twitter.api_key
	// SENT_BATCH_SIZE -> sentiment.batch_size
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Layer 5: Command-line overrides (highest priority)
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load overrides: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// resolveConfigFile returns the YAML file to load, or "" when none is present.
// An explicit path that does not exist is an error.
func resolveConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}
	return findConfigFile(), nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// legacyCredentialKeys are accepted only from credential files, where the
// original deployment wrote them. In the process environment USER is the
// login name and must not leak into the database config.
var legacyCredentialKeys = map[string]string{
	"user":     "database.user",
	"password": "database.password",
}

// readCredentialFiles parses dotenv files and maps their keys to koanf paths.
// Later files win. Unknown keys are ignored.
func readCredentialFiles(paths []string) (map[string]interface{}, error) {
	values := make(map[string]interface{})
	for _, path := range paths {
		if path == "" {
			continue
		}
		vars, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read credential file %s: %w", path, err)
		}
		for key, value := range vars {
			if mapped := credentialTransformFunc(key); mapped != "" {
				values[mapped] = value
			}
		}
	}
	return values, nil
}

// credentialTransformFunc maps a credential-file key to a koanf path.
func credentialTransformFunc(key string) string {
	if mapped, ok := legacyCredentialKeys[strings.ToLower(key)]; ok {
		return mapped
	}
	return envTransformFunc(key)
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Search API credentials
	"twitter_api_key":             "twitter.api_key",
	"twitter_api_key_secret":      "twitter.api_key_secret",
	"twitter_access_token":        "twitter.access_token",
	"twitter_access_token_secret": "twitter.access_token_secret",
	"twitter_base_url":            "twitter.base_url",
	"twitter_timeout":             "twitter.timeout",

	// Search parameters
	"search_query":                   "search.query",
	"search_lang":                    "search.language",
	"search_result_type":             "search.result_type",
	"search_count":                   "search.count",
	"search_filter_since_last_fetch": "search.filter_since_last_fetch",

	// Database mappings
	"db_dialect":           "database.dialect",
	"db_dsn":               "database.dsn",
	"db_user":              "database.user",
	"db_password":          "database.password",
	"server_name":          "database.server_name",
	"database_name":        "database.database_name",
	"driver_name":          "database.driver_name",
	"db_path":              "database.path",
	"db_posts_table":       "database.posts_table",
	"db_sentiment_table":   "database.sentiment_table",
	"db_logs_table":        "database.logs_table",
	"db_create_tables":     "database.create_tables",
	"db_max_open_conns":    "database.max_open_conns",
	"db_conn_max_lifetime": "database.conn_max_lifetime",
	"db_query_timeout":     "database.query_timeout",

	// Sentiment mappings
	"sent_enabled":       "sentiment.enabled",
	"sent_provider":      "sentiment.provider",
	"sent_language":      "sentiment.language",
	"sent_batch_size":    "sentiment.batch_size",
	"sent_timeout":       "sentiment.timeout",
	"sent_endpoint":      "sentiment.endpoint",
	"sent_key":           "sentiment.key",
	"sent_model":         "sentiment.model",
	"sent_max_tokens":    "sentiment.max_tokens",
	"anthropic_api_key":  "sentiment.anthropic_api_key",
	"anthropic_base_url": "sentiment.anthropic_base_url",

	// Schedule mappings
	"schedule_enabled":      "schedule.enabled",
	"schedule_cron":         "schedule.cron",
	"schedule_run_on_start": "schedule.run_on_start",

	// Server mappings
	"metrics_addr":            "server.metrics_addr",
	"server_shutdown_timeout": "server.shutdown_timeout",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - TWITTER_API_KEY -> twitter.api_key
//   - SENT_ENDPOINT -> sentiment.endpoint
//   - DB_USER -> database.user
//   - SERVER_NAME -> database.server_name
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
