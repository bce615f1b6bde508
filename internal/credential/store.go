// Package credential holds the process-wide API key slot.
//
// The key is read once when the store is opened, written through to disk on
// every change and removed from disk when cleared. When the file cannot be
// read or written the store keeps working in memory and logs a warning.
package credential

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/steviee/cfbrowse/internal/state"
)

// ErrNotPersisted is returned when a change was applied in memory but could
// not be written to disk.
var ErrNotPersisted = errors.New("credential not persisted")

// Source tells where the current key came from.
type Source string

// Key sources.
const (
	SourceNone Source = "none"
	SourceFile Source = "file"
	SourceEnv  Source = "env"
	SourceFlag Source = "flag"
)

// Store is a credential slot safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	path   string
	key    string
	source Source
}

// Open returns a store backed by the file at path. A missing or unreadable
// file yields an empty store; an empty path yields a memory-only store.
func Open(path string) *Store {
	s := &Store{path: path, source: SourceNone}
	if path == "" {
		return s
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Debug("no stored API key", "path", path)
	case err != nil:
		slog.Warn("cannot read stored API key, continuing without it",
			"path", path,
			"error", err)
	default:
		if key := strings.TrimSpace(string(data)); key != "" {
			s.key = key
			s.source = SourceFile
		}
	}

	return s
}

// Memory returns a store that never touches the disk.
func Memory(key string) *Store {
	s := &Store{source: SourceNone}
	if key = strings.TrimSpace(key); key != "" {
		s.key = key
		s.source = SourceFlag
	}
	return s
}

// Get returns the current key, or "" when none is set.
func (s *Store) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key
}

// Source returns where the current key came from.
func (s *Store) Source() Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Path returns the backing file, or "" for a memory-only store.
func (s *Store) Path() string {
	return s.path
}

// Override replaces the key for this process only, e.g. from a flag or
// the environment. Nothing is written to disk.
func (s *Store) Override(key string, source Source) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
	s.source = source
}

// Set stores key and writes it through to disk. An empty key clears the
// store. If the write fails the key is still set in memory and the
// returned error wraps ErrNotPersisted.
func (s *Store) Set(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return s.Clear()
	}
	if err := state.ValidateAPIKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.key = key
	s.source = SourceFile
	if s.path == "" {
		return nil
	}

	err := state.WithFileLock(s.lockPath(), func() error {
		return state.AtomicWrite(s.path, []byte(key+"\n"), 0o600)
	})
	if err != nil {
		slog.Warn("cannot persist API key, keeping it in memory only",
			"path", s.path,
			"error", err)
		return fmt.Errorf("%w: %v", ErrNotPersisted, err)
	}

	slog.Debug("API key stored", "path", s.path)
	return nil
}

// Clear removes the key from memory and from disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.key = ""
	s.source = SourceNone
	if s.path == "" {
		return nil
	}

	err := state.WithFileLock(s.lockPath(), func() error {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	})
	if err != nil {
		slog.Warn("cannot remove stored API key",
			"path", s.path,
			"error", err)
		return fmt.Errorf("%w: %v", ErrNotPersisted, err)
	}

	slog.Debug("API key cleared", "path", s.path)
	return nil
}

func (s *Store) lockPath() string {
	return s.path + ".lock"
}

// Mask renders key for display, keeping only its last four characters.
func Mask(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", 8) + key[len(key)-4:]
}
