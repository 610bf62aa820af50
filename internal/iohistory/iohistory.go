// Package iohistory persists validation run history.
package iohistory

import (
	"fmt"
	"sync"

	"github.com/lwoluke/usd-automated-testing/internal/contract"
	"github.com/lwoluke/usd-automated-testing/schema"
)

// Global store instance for main logic.
var (
	store     contract.HistoryStore
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	return contract.GetHistoryDBFilePath()
}

// InitHistory initializes the global history store for the given backend.
// An empty backend disables history recording.
func InitHistory(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		if backend == "" {
			backend = schema.NoneBackend
		}
		s, err := NewHistoryStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize run history: %w", err)
			return
		}
		store = s
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// Store returns the global history store. It is nil until InitHistory succeeds.
func Store() contract.HistoryStore {
	return store
}

// CloseHistory should be called on application shutdown.
func CloseHistory() { // called in main defer
	closeOnce.Do(func() {
		if store != nil {
			if err := store.Close(); err != nil {
				contract.LogWarn("closing history store", err)
			}
		}
	})
}
