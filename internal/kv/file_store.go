package kv

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type fileDocument struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries"`
}

// FileStore keeps every entry in a single JSON document, rewritten whole on
// each mutation. Suited to the small working set of a personal tracker.
type FileStore struct {
	path string
	doc  *fileDocument
}

func NewFileStore(configPath string) *FileStore {
	return &FileStore{
		path: configPath,
	}
}

func (s *FileStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &fileDocument{
		Version: 1,
		Entries: make(map[string]string),
	}

	return s.save()
}

func (s *FileStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habitflow init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.doc = &fileDocument{}
	if err := json.Unmarshal(data, s.doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.doc.Entries == nil {
		s.doc.Entries = make(map[string]string)
	}

	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *FileStore) Get(key string) (string, bool, error) {
	if s.doc == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}
	value, ok := s.doc.Entries[key]
	return value, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Entries[key] = value
	return s.save()
}

func (s *FileStore) Delete(key string) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.doc.Entries[key]; !ok {
		return nil
	}
	delete(s.doc.Entries, key)
	return s.save()
}

func (s *FileStore) Keys() ([]string, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	keys := make([]string, 0, len(s.doc.Entries))
	for key := range s.doc.Entries {
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *FileStore) Path() string {
	return s.path
}
