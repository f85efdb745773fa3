// Package memo holds the memo data model, the selection/content controller
// that owns UI state, and the collaborator interfaces used to load, fetch
// and persist memos.
package memo

import (
	"context"
	"errors"
	"fmt"

	"github.com/gobwas/glob"
)

const (
	// FallbackContent is placed in the content buffer when a selected id
	// has no matching memo.
	FallbackContent = "no memo"

	// EmptyPrompt is shown by the editor while the content buffer is empty.
	EmptyPrompt = "Select a memo."
)

var (
	// ErrNotFound is returned by repositories when no memo has the given id.
	ErrNotFound = errors.New("memo: not found")

	// ErrDuplicateID is returned when adding a memo whose id is already taken.
	ErrDuplicateID = errors.New("memo: duplicate id")
)

// Memo is a single entry in the collection. Title is what the list shows;
// Content is the persisted body, which the list never displays.
type Memo struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SeedMemos returns the fixed fixture collection used when seed data is
// enabled.
func SeedMemos() []Memo {
	return []Memo{
		{ID: 1, Title: "test1"},
		{ID: 2, Title: "test2"},
		{ID: 3, Title: "test3"},
	}
}

// Loader supplies the initial memo collection.
type Loader interface {
	Load(ctx context.Context) ([]Memo, error)
}

// Fetcher retrieves the full body of a memo.
type Fetcher interface {
	Fetch(ctx context.Context, id int) (string, error)
}

// Saver persists the body of a memo.
type Saver interface {
	Save(ctx context.Context, id int, content string) error
}

// Repository is the full persistence surface the terminal app talks to.
type Repository interface {
	Loader
	Fetcher
	Saver

	// Create appends a new memo, assigning it the next id.
	Create(ctx context.Context, title, content string) (Memo, error)

	// Delete removes a memo. It reports false when the id did not exist.
	Delete(ctx context.Context, id int) (bool, error)
}

// NextID returns the id a new memo appended to memos should get: one past
// the last memo's id, or 1 for an empty collection.
func NextID(memos []Memo) int {
	if len(memos) == 0 {
		return 1
	}
	return memos[len(memos)-1].ID + 1
}

// FilterByTitle returns the memos whose title matches the glob pattern,
// keeping collection order. An empty pattern matches everything.
func FilterByTitle(memos []Memo, pattern string) ([]Memo, error) {
	if pattern == "" {
		return append([]Memo(nil), memos...), nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid title pattern %q: %w", pattern, err)
	}

	var out []Memo
	for _, m := range memos {
		if g.Match(m.Title) {
			out = append(out, m)
		}
	}
	return out, nil
}
