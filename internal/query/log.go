// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package query

import (
	"sync"

	"dbchat/cli/internal/model"
)

// Log is the append-only conversation record. Entries are never edited,
// reordered or removed.
type Log struct {
	mu      sync.RWMutex
	entries []model.Message
}

// Append adds m at the end of the log.
func (l *Log) Append(m model.Message) {
	l.mu.Lock()
	l.entries = append(l.entries, m)
	l.mu.Unlock()
}

// Entries returns a copy of the log in arrival order.
func (l *Log) Entries() []model.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]model.Message(nil), l.entries...)
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
