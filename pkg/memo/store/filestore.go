// Package store persists memos in a local JSON file.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/entrhq/memo/pkg/memo"
)

// FileStore implements memo.Repository on top of a single JSON file holding
// an array of memos. Every operation reads the file, so edits made by other
// processes are picked up on the next call.
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ memo.Repository = (*FileStore)(nil)

// NewFileStore opens the store at path, creating the parent directory and
// an empty file when they do not exist yet.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("store: path cannot be empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("store: create directory %s: %w", dir, err)
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			return nil, fmt.Errorf("store: create %s: %w", path, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("store: stat %s: %w", path, err)
	}

	return &FileStore{path: path}, nil
}

// Path returns the file backing the store.
func (s *FileStore) Path() string {
	return s.path
}

// Load returns every memo in file order.
func (s *FileStore) Load(_ context.Context) ([]memo.Memo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read()
}

// Fetch returns the body of the memo with the given id.
func (s *FileStore) Fetch(_ context.Context, id int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memos, err := s.read()
	if err != nil {
		return "", err
	}
	for _, m := range memos {
		if m.ID == id {
			return m.Content, nil
		}
	}
	return "", fmt.Errorf("%w: %d", memo.ErrNotFound, id)
}

// Save overwrites the body of an existing memo.
func (s *FileStore) Save(_ context.Context, id int, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	memos, err := s.read()
	if err != nil {
		return err
	}
	for i := range memos {
		if memos[i].ID == id {
			memos[i].Content = content
			return s.write(memos)
		}
	}
	return fmt.Errorf("%w: %d", memo.ErrNotFound, id)
}

// Create appends a memo whose id is one past the last memo in the file.
func (s *FileStore) Create(_ context.Context, title, content string) (memo.Memo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memos, err := s.read()
	if err != nil {
		return memo.Memo{}, err
	}

	m := memo.Memo{
		ID:      memo.NextID(memos),
		Title:   title,
		Content: content,
	}
	if err := s.write(append(memos, m)); err != nil {
		return memo.Memo{}, err
	}
	return m, nil
}

// Delete removes the memo with the given id. The file is left untouched
// when no memo matched.
func (s *FileStore) Delete(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memos, err := s.read()
	if err != nil {
		return false, err
	}

	kept := memos[:0]
	for _, m := range memos {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(memos) {
		return false, nil
	}
	if err := s.write(kept); err != nil {
		return false, err
	}
	return true, nil
}

// read decodes the file. Empty or undecodable content reads as an empty
// collection.
func (s *FileStore) read() ([]memo.Memo, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var memos []memo.Memo
	if err := json.Unmarshal(data, &memos); err != nil {
		return nil, nil
	}
	return memos, nil
}

// write replaces the file atomically through a temp file and rename.
func (s *FileStore) write(memos []memo.Memo) error {
	if memos == nil {
		memos = []memo.Memo{}
	}
	data, err := json.MarshalIndent(memos, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode memos: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("store: write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("store: atomic rename %s: %w", s.path, err)
	}
	return nil
}
