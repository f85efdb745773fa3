package tui

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/memo/pkg/memo"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// memoFetchedMsg carries a memo body loaded after selection.
type memoFetchedMsg struct {
	id      int
	content string
	err     error
}

// memoSavedMsg reports the outcome of a save.
type memoSavedMsg struct {
	req saveRequest
	err error
}

// memoCreatedMsg carries a memo created by the repository.
type memoCreatedMsg struct {
	memo memo.Memo
	err  error
}

// memoDeletedMsg reports the outcome of a delete.
type memoDeletedMsg struct {
	id      int
	deleted bool
	err     error
}

// memosLoadedMsg carries a freshly loaded collection.
type memosLoadedMsg struct {
	memos []memo.Memo
	err   error
}

// storeChangedMsg signals that the memo file changed on disk.
type storeChangedMsg struct{}

// clipboardMsg reports the outcome of a copy.
type clipboardMsg struct {
	err error
}

func fetchMemo(ctx context.Context, f memo.Fetcher, id int) tea.Cmd {
	return func() tea.Msg {
		content, err := f.Fetch(ctx, id)
		return memoFetchedMsg{id: id, content: content, err: err}
	}
}

func saveMemo(ctx context.Context, s memo.Saver, req saveRequest) tea.Cmd {
	return func() tea.Msg {
		return memoSavedMsg{req: req, err: s.Save(ctx, req.id, req.content)}
	}
}

func createMemo(ctx context.Context, repo memo.Repository, title string) tea.Cmd {
	return func() tea.Msg {
		m, err := repo.Create(ctx, title, "")
		return memoCreatedMsg{memo: m, err: err}
	}
}

func deleteMemo(ctx context.Context, repo memo.Repository, id int) tea.Cmd {
	return func() tea.Msg {
		deleted, err := repo.Delete(ctx, id)
		return memoDeletedMsg{id: id, deleted: deleted, err: err}
	}
}

func loadMemos(ctx context.Context, l memo.Loader) tea.Cmd {
	return func() tea.Msg {
		memos, err := l.Load(ctx)
		return memosLoadedMsg{memos: memos, err: err}
	}
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{err: writeClipboard(text)}
	}
}
