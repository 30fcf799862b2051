package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultFilePath is where the TOML store lives when no path is configured.
const DefaultFilePath = "~/.local/share/cartly/storage.toml"

// FileStore keeps every entry in one TOML file, rewritten on each Set.
type FileStore struct {
	path string

	mu      sync.Mutex
	entries map[string]string

	discarded error
}

type fileDocument struct {
	Entries map[string]string `toml:"entries"`
}

// OpenFileStore loads the store at path. A missing file is an empty store, and
// so is a malformed one: its contents are reported by Discarded and replaced on
// the next Set. A file that cannot be read is an error.
func OpenFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = DefaultFilePath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	s := &FileStore{path: resolved, entries: make(map[string]string)}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read storage: %w", err)
	}
	var doc fileDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		s.discarded = fmt.Errorf("parse storage: %w", err)
		return s, nil
	}
	for k, v := range doc.Entries {
		s.entries[k] = v
	}
	return s, nil
}

// Path returns the resolved file location.
func (s *FileStore) Path() string { return s.path }

// Discarded returns the parse error of a malformed file that was ignored at
// open, or nil.
func (s *FileStore) Discarded() error { return s.discarded }

func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.entries[key]; ok && cur == value {
		return nil
	}
	next := make(map[string]string, len(s.entries)+1)
	for k, v := range s.entries {
		next[k] = v
	}
	next[key] = value
	if err := s.write(next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

// write replaces the file atomically.
func (s *FileStore) write(entries map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	data, err := toml.Marshal(fileDocument{Entries: entries})
	if err != nil {
		return fmt.Errorf("marshal storage: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".storage-*.toml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close storage: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace storage: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
