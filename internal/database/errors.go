// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package database

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tomtom215/postpulse/internal/logging"
)

var (
	// ErrEmptyTable is returned by MaxID when a table has no rows, or when
	// MAX(id) is not numeric.
	ErrEmptyTable = errors.New("table is empty")

	// ErrInvalidIdentifier is returned when a table or column name is not a plain SQL identifier.
	ErrInvalidIdentifier = errors.New("invalid SQL identifier")

	// ErrColumnMismatch is returned when a row does not have one value per column.
	ErrColumnMismatch = errors.New("row length does not match column count")

	// ErrUnsupportedDialect is returned for an unknown dialect name.
	ErrUnsupportedDialect = errors.New("unsupported database dialect")
)

// closeWithLog closes a resource and logs any error
// Use this for cleanup operations where errors should be acknowledged but not fail the operation
func closeWithLog(closer io.Closer, logger *slog.Logger, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		if logger != nil {
			logger.Error("failed to close resource",
				"type", resourceType,
				"error", err)
		} else {
			logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
		}
	}
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
