// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Search.Language != "nl" {
		t.Errorf("Search.Language = %q, want nl", cfg.Search.Language)
	}
	if cfg.Search.ResultType != "recent" {
		t.Errorf("Search.ResultType = %q, want recent", cfg.Search.ResultType)
	}
	if cfg.Search.Count != 100 {
		t.Errorf("Search.Count = %d, want 100", cfg.Search.Count)
	}
	if !cfg.Search.FilterSinceLastFetch {
		t.Error("Search.FilterSinceLastFetch should be true by default")
	}

	if cfg.Database.Dialect != DialectMSSQL {
		t.Errorf("Database.Dialect = %q, want mssql", cfg.Database.Dialect)
	}
	if cfg.Database.PostsTable != "posts" || cfg.Database.SentimentTable != "sentiment" || cfg.Database.LogsTable != "logs" {
		t.Errorf("unexpected default table names: %+v", cfg.Database)
	}

	if cfg.Sentiment.BatchSize != 10 {
		t.Errorf("Sentiment.BatchSize = %d, want 10", cfg.Sentiment.BatchSize)
	}
	if cfg.Sentiment.Provider != ProviderAzure {
		t.Errorf("Sentiment.Provider = %q, want azure", cfg.Sentiment.Provider)
	}
	if cfg.Sentiment.Language != "nl" {
		t.Errorf("Sentiment.Language = %q, want nl", cfg.Sentiment.Language)
	}

	if cfg.Schedule.Enabled {
		t.Error("Schedule.Enabled should be false by default")
	}
	if cfg.Schedule.Cron != "@every 15m" {
		t.Errorf("Schedule.Cron = %q, want @every 15m", cfg.Schedule.Cron)
	}
	if cfg.Server.MetricsAddr != ":9464" {
		t.Errorf("Server.MetricsAddr = %q, want :9464", cfg.Server.MetricsAddr)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"TWITTER_API_KEY", "twitter.api_key"},
		{"TWITTER_ACCESS_TOKEN_SECRET", "twitter.access_token_secret"},
		{"SEARCH_LANG", "search.language"},
		{"DB_USER", "database.user"},
		{"DB_PASSWORD", "database.password"},
		{"SERVER_NAME", "database.server_name"},
		{"DATABASE_NAME", "database.database_name"},
		{"DRIVER_NAME", "database.driver_name"},
		{"SENT_ENDPOINT", "sentiment.endpoint"},
		{"SENT_KEY", "sentiment.key"},
		{"SCHEDULE_CRON", "schedule.cron"},
		{"LOG_LEVEL", "logging.level"},
		{"USER", ""},
		{"PASSWORD", ""},
		{"HOME", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestCredentialTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"USER", "database.user"},
		{"PASSWORD", "database.password"},
		{"SENT_KEY", "sentiment.key"},
		{"UNRELATED", ""},
	}

	for _, tt := range tests {
		if got := credentialTransformFunc(tt.key); got != tt.want {
			t.Errorf("credentialTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

const (
	twitterEnvFile = `TWITTER_API_KEY=key
TWITTER_API_KEY_SECRET=key-secret
TWITTER_ACCESS_TOKEN=token
TWITTER_ACCESS_TOKEN_SECRET=token-secret
`
	databaseEnvFile = `USER=sa
PASSWORD=hunter2
SERVER_NAME=sql.example.net
DATABASE_NAME=social
DRIVER_NAME=ODBC Driver 17 for SQL Server
`
	sentimentEnvFile = `SENT_ENDPOINT=https://example.cognitiveservices.azure.com/
SENT_KEY=azure-key
`
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// credentialFiles writes the three legacy credential files and returns their paths.
func credentialFiles(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	return []string{
		writeFile(t, dir, "twitter.env", twitterEnvFile),
		writeFile(t, dir, "database.env", databaseEnvFile),
		writeFile(t, dir, "sentiment.env", sentimentEnvFile),
	}
}

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, "")
	for env := range envMappings {
		t.Setenv(strings.ToUpper(env), "")
		os.Unsetenv(strings.ToUpper(env))
	}
}

func TestLoad_CredentialFiles(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load(LoadOptions{
		EnvFiles:  credentialFiles(t),
		Overrides: map[string]interface{}{"search.query": "election"},
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Twitter.APIKey != "key" || cfg.Twitter.AccessTokenSecret != "token-secret" {
		t.Errorf("twitter credentials not loaded: %+v", cfg.Twitter)
	}
	if cfg.Database.User != "sa" || cfg.Database.Password != "hunter2" {
		t.Errorf("legacy USER/PASSWORD not mapped: user=%q", cfg.Database.User)
	}
	if cfg.Database.ServerName != "sql.example.net" || cfg.Database.DatabaseName != "social" {
		t.Errorf("server fields not loaded: %+v", cfg.Database)
	}
	if cfg.Database.DriverName != "ODBC Driver 17 for SQL Server" {
		t.Errorf("DriverName = %q", cfg.Database.DriverName)
	}
	if cfg.Sentiment.Key != "azure-key" {
		t.Errorf("Sentiment.Key = %q, want azure-key", cfg.Sentiment.Key)
	}
	if cfg.Search.Query != "election" {
		t.Errorf("Search.Query = %q, want election", cfg.Search.Query)
	}
}

func TestLoad_EnvOverridesCredentialFile(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DB_USER", "etl")
	t.Setenv("SEARCH_COUNT", "50")
	t.Setenv("TWITTER_TIMEOUT", "5s")

	cfg, err := Load(LoadOptions{
		EnvFiles:  credentialFiles(t),
		Overrides: map[string]interface{}{"search.query": "election"},
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Database.User != "etl" {
		t.Errorf("Database.User = %q, want etl", cfg.Database.User)
	}
	if cfg.Search.Count != 50 {
		t.Errorf("Search.Count = %d, want 50", cfg.Search.Count)
	}
	if cfg.Twitter.Timeout != 5*time.Second {
		t.Errorf("Twitter.Timeout = %v, want 5s", cfg.Twitter.Timeout)
	}
}

func TestLoad_BareUserEnvIgnored(t *testing.T) {
	isolateEnv(t)
	t.Setenv("USER", "login-name")

	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "twitter.env", twitterEnvFile),
		writeFile(t, dir, "sentiment.env", sentimentEnvFile),
	}
	t.Setenv("SERVER_NAME", "sql.example.net")
	t.Setenv("DATABASE_NAME", "social")

	_, err := Load(LoadOptions{
		EnvFiles:  files,
		Overrides: map[string]interface{}{"search.query": "election"},
	})
	if err == nil {
		t.Fatal("expected validation error when only the login USER is set")
	}
	if !strings.Contains(err.Error(), "USER is required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_OverridesWin(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SEARCH_QUERY", "from-env")
	t.Setenv("SENT_ENABLED", "true")

	cfg, err := Load(LoadOptions{
		EnvFiles: credentialFiles(t),
		Overrides: map[string]interface{}{
			"search.query":                   "from-flag",
			"search.filter_since_last_fetch": false,
			"sentiment.enabled":              false,
		},
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Search.Query != "from-flag" {
		t.Errorf("Search.Query = %q, want from-flag", cfg.Search.Query)
	}
	if cfg.Search.FilterSinceLastFetch {
		t.Error("FilterSinceLastFetch should be disabled by override")
	}
	if cfg.Sentiment.Enabled {
		t.Error("Sentiment.Enabled should be disabled by override")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	isolateEnv(t)

	dir := t.TempDir()
	path := writeFile(t, dir, "postpulse.yaml", `
search:
  query: "#prinsjesdag"
  count: 25
database:
  dialect: sqlite
  path: /tmp/postpulse.db
  posts_table: tweets
sentiment:
  enabled: false
logging:
  level: debug
  format: console
`)

	cfg, err := Load(LoadOptions{
		ConfigPath: path,
		EnvFiles:   []string{writeFile(t, dir, "twitter.env", twitterEnvFile)},
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Search.Query != "#prinsjesdag" || cfg.Search.Count != 25 {
		t.Errorf("search section not loaded: %+v", cfg.Search)
	}
	if cfg.Database.Dialect != DialectSQLite || cfg.Database.PostsTable != "tweets" {
		t.Errorf("database section not loaded: %+v", cfg.Database)
	}
	if cfg.Database.SentimentTable != "sentiment" {
		t.Errorf("default SentimentTable lost: %q", cfg.Database.SentimentTable)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	isolateEnv(t)

	_, err := Load(LoadOptions{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_MissingCredentialFile(t *testing.T) {
	isolateEnv(t)

	_, err := Load(LoadOptions{EnvFiles: []string{filepath.Join(t.TempDir(), "nope.env")}})
	if err == nil {
		t.Fatal("expected error for missing credential file")
	}
	if !strings.Contains(err.Error(), "credential file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFindConfigFile_EnvPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.yaml", "search:\n  query: x\n")
	t.Setenv(ConfigPathEnvVar, path)

	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}
}
