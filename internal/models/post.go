// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package models

import (
	"fmt"
	"strings"
	"time"
)

// HashtagSeparator joins the hashtags of a post into a single column value.
// Hashtag text is not escaped; a tag containing the separator cannot be
// told apart from two tags when the column is split again.
const HashtagSeparator = "||"

// TriState is a boolean that may be unknown. The numeric values are the
// ones written to the database.
type TriState int8

const (
	TriFalse   TriState = 0
	TriTrue    TriState = 1
	TriUnknown TriState = 2
)

// TriStateFromPtr maps an optional boolean from an API payload to a TriState.
// A nil pointer means the field was missing.
func TriStateFromPtr(b *bool) TriState {
	if b == nil {
		return TriUnknown
	}
	if *b {
		return TriTrue
	}
	return TriFalse
}

// TriStateFromInt decodes a stored value. Anything outside 0 and 1 is unknown.
func TriStateFromInt(v int64) TriState {
	switch v {
	case 0:
		return TriFalse
	case 1:
		return TriTrue
	default:
		return TriUnknown
	}
}

// Bool returns the boolean value and whether it is known.
func (t TriState) Bool() (value, known bool) {
	switch t {
	case TriTrue:
		return true, true
	case TriFalse:
		return false, true
	default:
		return false, false
	}
}

// String implements fmt.Stringer.
func (t TriState) String() string {
	switch t {
	case TriFalse:
		return "false"
	case TriTrue:
		return "true"
	default:
		return "unknown"
	}
}

// Post is a normalized search result. ID is assigned by the external
// service and is the identity of the record; posts are never updated.
type Post struct {
	ID                int64     `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	Text              string    `json:"text"`
	PossiblySensitive TriState  `json:"possibly_sensitive"`
	Hashtags          string    `json:"hashtags"`
	UserID            int64     `json:"user_id"`
	UserName          string    `json:"user_name"`
	ScreenName        string    `json:"screen_name"`
	Verified          TriState  `json:"verified"`
}

// JoinHashtags flattens hashtag texts into the stored representation.
// It returns an empty string when there are none.
func JoinHashtags(tags []string) string {
	return strings.Join(tags, HashtagSeparator)
}

// HashtagList splits the stored hashtag column back into its parts.
func (p *Post) HashtagList() []string {
	if p.Hashtags == "" {
		return nil
	}
	return strings.Split(p.Hashtags, HashtagSeparator)
}

// NaiveUTC drops the zone of t after converting it to UTC, keeping the wall
// clock. Stored timestamps carry no offset.
func NaiveUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), u.Nanosecond(), time.UTC)
}

// String implements fmt.Stringer for debug logging.
func (p *Post) String() string {
	return fmt.Sprintf("Post(id=%d, user=%s, hashtags=%q)", p.ID, p.ScreenName, p.Hashtags)
}
