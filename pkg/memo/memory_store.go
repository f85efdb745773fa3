package memo

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Repository. Memos live only as long as the
// process; it backs the app when no store file is configured.
// All operations are thread-safe.
type MemoryStore struct {
	memos []Memo       // Insertion order is display order
	mu    sync.RWMutex // Guards memos
}

// NewMemoryStore creates a store holding a copy of memos.
func NewMemoryStore(memos []Memo) *MemoryStore {
	return &MemoryStore{
		memos: append([]Memo(nil), memos...),
	}
}

// Load returns a copy of every memo in insertion order.
func (s *MemoryStore) Load(_ context.Context) ([]Memo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Memo(nil), s.memos...), nil
}

// Fetch returns the stored body of a memo.
func (s *MemoryStore) Fetch(_ context.Context, id int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return "", fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return s.memos[i].Content, nil
}

// Save overwrites the body of an existing memo.
func (s *MemoryStore) Save(_ context.Context, id int, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	s.memos[i].Content = content
	return nil
}

// Create appends a memo with the next id.
func (s *MemoryStore) Create(_ context.Context, title, content string) (Memo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := Memo{
		ID:      NextID(s.memos),
		Title:   title,
		Content: content,
	}
	s.memos = append(s.memos, m)
	return m, nil
}

// Delete removes a memo by id.
func (s *MemoryStore) Delete(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.memos = append(s.memos[:i:i], s.memos[i+1:]...)
	return true, nil
}

// Count returns the number of stored memos.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.memos)
}

func (s *MemoryStore) indexOf(id int) int {
	for i, m := range s.memos {
		if m.ID == id {
			return i
		}
	}
	return -1
}
