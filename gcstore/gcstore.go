// Package gcstore is a small persistent key-value store for settings.
//
// Values are kept as JSON. A Store loads everything from its Backend when
// opened and writes through on every Set, so readers never touch disk.
package gcstore

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"cdr.dev/slog"

	"oss.terrastruct.com/gridclick/lib/log"
)

// DEFAULT_FILE_NAME is the settings file name the desktop app has always used.
const DEFAULT_FILE_NAME = "__grid_clicker_internal.json"

type Backend interface {
	// Load returns every stored key. A store that does not exist yet is empty, not an error.
	Load(ctx context.Context) (map[string]json.RawMessage, error)
	// Save persists key. all is the full contents after the update for
	// backends that rewrite everything at once.
	Save(ctx context.Context, key string, value json.RawMessage, all map[string]json.RawMessage) error
	Close() error
}

type Store struct {
	mu      sync.RWMutex
	backend Backend
	values  map[string]json.RawMessage
}

func Open(ctx context.Context, b Backend) (*Store, error) {
	values, err := b.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if values == nil {
		values = make(map[string]json.RawMessage)
	}
	log.Debug(ctx, "settings loaded", slog.F("keys", len(values)))
	return &Store{
		backend: b,
		values:  values,
	}, nil
}

// OpenPath opens a store at path. A .db, .sqlite or .sqlite3 extension
// selects the SQLite backend, anything else a JSON file.
func OpenPath(ctx context.Context, path string) (*Store, error) {
	var b Backend
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		sb, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		b = sb
	default:
		b = NewJSONFile(path)
	}
	s, err := Open(ctx, b)
	if err != nil {
		b.Close()
		return nil, err
	}
	return s, nil
}

// Get returns the value stored under key, or def when it is missing or
// cannot be decoded into T.
func Get[T any](s *Store, key string, def T) T {
	raw, ok := s.raw(key)
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def
	}
	return v
}

func (s *Store) raw(key string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.values[key]
	return raw, ok
}

func (s *Store) Has(key string) bool {
	_, ok := s.raw(key)
	return ok
}

func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set stores value under key and persists it. On a failed write the previous
// value is kept in memory too.
func (s *Store) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = raw
	if err := s.backend.Save(ctx, key, raw, s.values); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		log.Warn(ctx, "setting not saved", slog.F("key", key), slog.Error(err))
		return fmt.Errorf("failed to save %q: %w", key, err)
	}
	log.Debug(ctx, "setting saved", slog.F("key", key))
	return nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}
