// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package database

import (
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/tomtom215/postpulse/internal/config"
)

// sqlitePragmas are appended to file DSNs built from a path.
// _txlock=immediate makes every transaction take the write lock at BEGIN,
// which serializes MAX(id)+1 assignment across processes.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_txlock=immediate"

// buildDSN returns the connection string for cfg. An explicit DSN wins.
func buildDSN(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}

	switch cfg.Dialect {
	case config.DialectSQLite:
		return sqliteDSN(cfg.Path)
	case config.DialectDuckDB:
		return cfg.Path
	case config.DialectPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   userInfo(cfg.User, cfg.Password),
			Host:   cfg.ServerName,
			Path:   "/" + cfg.DatabaseName,
		}
		return u.String()
	case config.DialectMySQL:
		c := mysql.NewConfig()
		c.User = cfg.User
		c.Passwd = cfg.Password
		c.Net = "tcp"
		c.Addr = cfg.ServerName
		c.DBName = cfg.DatabaseName
		c.ParseTime = true
		c.Loc = time.UTC
		return c.FormatDSN()
	case config.DialectMSSQL:
		q := url.Values{}
		q.Set("database", cfg.DatabaseName)
		u := url.URL{
			Scheme:   "sqlserver",
			User:     userInfo(cfg.User, cfg.Password),
			Host:     cfg.ServerName,
			RawQuery: q.Encode(),
		}
		return u.String()
	default:
		return ""
	}
}

// sqliteDSN turns a file path (or ":memory:") into a modernc.org/sqlite DSN.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	if path == ":memory:" {
		return "file::memory:?" + sqlitePragmas
	}
	return "file:" + path + "?" + sqlitePragmas
}

func userInfo(user, password string) *url.Userinfo {
	if password == "" {
		return url.User(user)
	}
	return url.UserPassword(user, password)
}
