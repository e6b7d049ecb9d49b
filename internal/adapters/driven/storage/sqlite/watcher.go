package sqlite

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/refman-tools/refman-cli/internal/logger"
)

// WatchReplacements watches the database file for external replacement
// and reopens the connection when the file is swapped, for example by
// an index rebuild running in another process. onReload, if non-nil,
// runs after each reopen so callers can drop stale caches.
//
// The returned stop function releases the watcher.
func (s *Store) WatchReplacements(onReload func()) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching data directory: %w", err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.path {
					continue
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				logger.Debug("Index database replaced, reopening")
				if err := s.reopen(); err != nil {
					logger.Warn("Failed to reopen index database: %v", err)
					continue
				}
				if onReload != nil {
					onReload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Index database watcher error: %v", err)
			}
		}
	}()

	return watcher.Close, nil
}

// reopen swaps the live connection for a fresh one on the same path.
func (s *Store) reopen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := openDatabase(s.path)
	if err != nil {
		return err
	}

	s.db.Close()
	s.db = db
	return nil
}
