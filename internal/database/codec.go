// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/postpulse/internal/config"
	"github.com/tomtom215/postpulse/internal/models"
)

// naiveLayout is the text form used where the driver has no native
// timestamp type. No offset is written.
const naiveLayout = "2006-01-02 15:04:05.999999"

// readLayouts are tried in order when a timestamp comes back as text.
var readLayouts = []string{
	naiveLayout,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// encodeTime converts t to a naive UTC value in the form the dialect's
// driver stores without adding an offset.
func (db *DB) encodeTime(t time.Time) interface{} {
	naive := models.NaiveUTC(t)
	if db.dialect.name == config.DialectSQLite {
		return naive.Format(naiveLayout)
	}
	return naive
}

// decodeTime converts a scanned timestamp back to a naive UTC time.Time.
func decodeTime(raw interface{}) (time.Time, error) {
	switch v := raw.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return wallClockUTC(v), nil
	case []byte:
		return parseTimeText(string(v))
	case string:
		return parseTimeText(v)
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", raw)
	}
}

func parseTimeText(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range readLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return wallClockUTC(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// wallClockUTC keeps the stored wall clock and labels it UTC. Stored values
// are already UTC; drivers that attach a local zone on read do not shift them.
func wallClockUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// triStateValue returns the stored integer for a TriState.
func triStateValue(t models.TriState) int64 {
	return int64(t)
}

// decodeTriState converts a scanned integer column back to a TriState.
func decodeTriState(raw interface{}) models.TriState {
	if n, ok := toInt64(raw); ok {
		return models.TriStateFromInt(n)
	}
	return models.TriUnknown
}
