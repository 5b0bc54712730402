// Package prefs persists the overlay's user preferences in a small durable
// key-value store.
package prefs

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rileyhilliard/gpuoverlay/internal/errors"
	"github.com/rileyhilliard/gpuoverlay/internal/logger"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the prefs file name under the user config directory.
const DefaultFileName = "prefs.yaml"

// Store is a durable string key-value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// DefaultPath returns ~/.config/gpuoverlay/prefs.yaml (or the platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrPrefs,
			"Cannot locate the user config directory",
			"Set prefs_file in the config or pass --prefs-file")
	}
	return filepath.Join(dir, "gpuoverlay", DefaultFileName), nil
}

// FileStore keeps all keys in one YAML map and rewrites the file on every change.
type FileStore struct {
	path   string
	log    logger.Logger
	mu     sync.Mutex
	values map[string]string
}

// OpenFile loads the store at path. A missing file is an empty store. A file
// that can't be read or parsed is also treated as empty, and the problem is
// logged; the next write replaces it.
func OpenFile(path string, log logger.Logger) *FileStore {
	if log == nil {
		log = logger.Noop()
	}
	s := &FileStore{
		path:   path,
		log:    log,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("cannot read prefs %s: %v", path, err)
		}
		return s
	}

	var values map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		log.Warn("ignoring malformed prefs %s: %v", path, err)
		return s
	}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value for key.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and flushes to disk.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flushLocked()
}

// Delete removes key and flushes to disk. Deleting a missing key is not an error.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flushLocked()
}

// Keys returns a copy of every stored key/value pair.
func (s *FileStore) Keys() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// flushLocked writes via a temp file and rename so a crash never leaves a
// half-written prefs file.
func (s *FileStore) flushLocked() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrPrefs, "Cannot encode preferences", "")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrPrefs,
			"Cannot create the preferences directory",
			"Check permissions on "+filepath.Dir(s.path))
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.WrapWithCode(err, errors.ErrPrefs,
			"Cannot write preferences",
			"Check permissions on "+s.path)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.WrapWithCode(err, errors.ErrPrefs,
			"Cannot replace preferences file",
			"Check permissions on "+s.path)
	}
	return nil
}

// MemoryStore is a Store that lives only in memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Keys returns a copy of every stored key/value pair.
func (s *MemoryStore) Keys() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
