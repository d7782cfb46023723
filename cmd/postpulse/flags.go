// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package main

import (
	"io"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/tomtom215/postpulse/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// cliFlags holds the parsed command line.
type cliFlags struct {
	query         string
	twitterFile   string
	databaseFile  string
	sentimentFile string
	configPath    string
	noFilter      bool
	noSentiment   bool
	createTables  bool
	daemon        bool
	failOnError   bool
}

// newApp builds the kingpin application bound to f.
func newApp(f *cliFlags) *kingpin.Application {
	app := kingpin.New("postpulse", "Search social posts, store them and analyze their sentiment.")
	app.Version(version)
	app.HelpFlag.Short('h')

	app.Flag("argument", "Search query (at most 500 characters).").Short('a').StringVar(&f.query)
	app.Flag("twitter-file", "Dotenv file with the search API credentials.").Short('t').ExistingFileVar(&f.twitterFile)
	app.Flag("database-file", "Dotenv file with the database credentials.").Short('d').ExistingFileVar(&f.databaseFile)
	app.Flag("sentiment-file", "Dotenv file with the sentiment service credentials.").Short('s').ExistingFileVar(&f.sentimentFile)
	app.Flag("config", "YAML configuration file.").Short('c').Envar(config.ConfigPathEnvVar).StringVar(&f.configPath)
	app.Flag("no-filter", "Fetch all matching posts instead of only those newer than the stored ones.").BoolVar(&f.noFilter)
	app.Flag("no-sentiment", "Skip the sentiment stage.").BoolVar(&f.noSentiment)
	app.Flag("create-tables", "Create the posts, sentiment and logs tables if they do not exist.").BoolVar(&f.createTables)
	app.Flag("daemon", "Run on the configured cron schedule and serve /metrics, /healthz and /status.").BoolVar(&f.daemon)
	app.Flag("fail-on-error", "Exit with status 1 when any stage of a run failed.").BoolVar(&f.failOnError)

	return app
}

// parseFlags parses args. Usage and errors are written to w.
func parseFlags(args []string, w io.Writer) (*cliFlags, error) {
	f := &cliFlags{}
	app := newApp(f)
	app.UsageWriter(w)
	app.ErrorWriter(w)

	if _, err := app.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// loadOptions turns the flags into config layers. Only flags that were
// given become overrides, so unset flags never mask the environment.
func (f *cliFlags) loadOptions() config.LoadOptions {
	opts := config.LoadOptions{
		ConfigPath: f.configPath,
		Overrides:  map[string]interface{}{},
	}

	for _, path := range []string{f.twitterFile, f.databaseFile, f.sentimentFile} {
		if path != "" {
			opts.EnvFiles = append(opts.EnvFiles, path)
		}
	}

	if f.query != "" {
		opts.Overrides["search.query"] = f.query
	}
	if f.noFilter {
		opts.Overrides["search.filter_since_last_fetch"] = false
	}
	if f.noSentiment {
		opts.Overrides["sentiment.enabled"] = false
	}
	if f.createTables {
		opts.Overrides["database.create_tables"] = true
	}
	if f.daemon {
		opts.Overrides["schedule.enabled"] = true
	}

	return opts
}
