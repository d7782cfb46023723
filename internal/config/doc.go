// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

/*
Package config provides centralized configuration management for PostPulse.

Configuration is assembled with Koanf v2 from five layers, each overriding the
previous one:

 1. Built-in defaults (structs provider)
 2. An optional YAML file (--config, CONFIG_PATH, ./postpulse.yaml, /etc/postpulse/config.yaml)
 3. Credential files given with -t, -d and -s (dotenv format, read with godotenv)
 4. Process environment variables
 5. Command-line overrides

# Credential Files

Credential files keep the variable names of the original deployment:

	TWITTER_API_KEY=...
	TWITTER_API_KEY_SECRET=...
	TWITTER_ACCESS_TOKEN=...
	TWITTER_ACCESS_TOKEN_SECRET=...

	USER=sa
	PASSWORD=...
	SERVER_NAME=sql.example.net
	DATABASE_NAME=social
	DRIVER_NAME=ODBC Driver 17 for SQL Server

	SENT_ENDPOINT=https://example.cognitiveservices.azure.com/
	SENT_KEY=...

USER and PASSWORD are honored only inside credential files. In the process
environment use DB_USER and DB_PASSWORD, since USER is normally the login name.

# Validation

Load always validates. Struct tags are checked through internal/validation,
then cross-field rules run: the selected database dialect must have a DSN or
enough fields to build one, an enabled sentiment provider must have its
credentials, and the daemon cron expression must parse.
*/
package config
