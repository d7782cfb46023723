// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package logging

import (
	"net/url"
	"regexp"
	"strings"
)

const redacted = "***"

var (
	// kvPasswordPattern matches password=... pairs in key/value DSNs.
	kvPasswordPattern = regexp.MustCompile(`(?i)\b(password|pwd)=([^;& ]*)`)

	// mysqlPasswordPattern matches the user:password@ prefix of go-sql-driver DSNs.
	mysqlPasswordPattern = regexp.MustCompile(`^([^:@/]+):([^@]*)@`)
)

// RedactDSN masks the password in a database connection string. URL-style,
// key/value and MySQL driver forms are recognized.
func RedactDSN(dsn string) string {
	if dsn == "" {
		return ""
	}

	if strings.Contains(dsn, "://") {
		if u, err := url.Parse(dsn); err == nil {
			out := u.Redacted()
			return kvPasswordPattern.ReplaceAllString(out, "${1}="+redacted)
		}
	}

	out := mysqlPasswordPattern.ReplaceAllString(dsn, "${1}:"+redacted+"@")
	return kvPasswordPattern.ReplaceAllString(out, "${1}="+redacted)
}

// Truncate shortens s to maxLen bytes, appending "..." when cut.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
