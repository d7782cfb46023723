// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

package audit

import (
	"context"
	"errors"
	"sync"

	"github.com/tomtom215/postpulse/internal/models"
)

// Store persists run log rows. *database.DB implements it against the logs
// table; MemoryStore is used in tests and dry runs.
type Store interface {
	AppendLog(ctx context.Context, entry models.LogEntry) (models.LogEntry, error)
}

// Reader lists recent run log rows, newest first.
type Reader interface {
	ListLogs(ctx context.Context, limit int) ([]models.LogEntry, error)
}

// Ensure MemoryStore implements Store and Reader
var (
	_ Store  = (*MemoryStore)(nil)
	_ Reader = (*MemoryStore)(nil)
)

// MemoryStore implements Store using in-memory storage.
// Ids follow the same MAX(id)+1 rule as the database. Data is lost on restart.
type MemoryStore struct {
	entries []models.LogEntry
	failErr error
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory log store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// AppendLog stores entry with the next id.
func (s *MemoryStore) AppendLog(ctx context.Context, entry models.LogEntry) (models.LogEntry, error) {
	if err := ctx.Err(); err != nil {
		return models.LogEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failErr != nil {
		return models.LogEntry{}, s.failErr
	}

	entry.ID = 0
	if n := len(s.entries); n > 0 {
		entry.ID = s.entries[n-1].ID + 1
	}
	entry.CreatedAt = models.NaiveUTC(entry.CreatedAt)
	s.entries = append(s.entries, entry)
	return entry, nil
}

// ListLogs returns up to limit entries, newest first. limit <= 0 returns all.
func (s *MemoryStore) ListLogs(ctx context.Context, limit int) ([]models.LogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.LogEntry, 0, n)
	for i := len(s.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

// Entries returns a copy of every stored entry in insertion order.
func (s *MemoryStore) Entries() []models.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.LogEntry, len(s.entries))
	copy(result, s.entries)
	return result
}

// Count returns the number of entries of the given type.
func (s *MemoryStore) Count(logType models.LogType) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for i := range s.entries {
		if s.entries[i].LogType == logType {
			n++
		}
	}
	return n
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// FailWith makes every following AppendLog return err. nil restores normal
// operation.
func (s *MemoryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// ErrStoreUnavailable is a convenience error for simulating a broken store.
var ErrStoreUnavailable = errors.New("log store unavailable")
