package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/memo/pkg/memo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyCtrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyCtrlY = tea.KeyMsg{Type: tea.KeyCtrlY}
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// recordingRepo wraps a MemoryStore and records every save in order.
type recordingRepo struct {
	*memo.MemoryStore

	mu      sync.Mutex
	saves   []saveRequest
	saveErr error
}

func (r *recordingRepo) Save(ctx context.Context, id int, content string) error {
	r.mu.Lock()
	r.saves = append(r.saves, saveRequest{id: id, content: content})
	err := r.saveErr
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return r.MemoryStore.Save(ctx, id, content)
}

func (r *recordingRepo) recorded() []saveRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]saveRequest(nil), r.saves...)
}

func newRecordingRepo(memos []memo.Memo) *recordingRepo {
	return &recordingRepo{MemoryStore: memo.NewMemoryStore(memos)}
}

func newTestModel(t *testing.T, repo memo.Repository, opts Options) *model {
	t.Helper()
	memos, err := repo.Load(context.Background())
	require.NoError(t, err)

	m := newModel(context.Background(), repo, memos, opts, nil)
	m.editorSurface.Cursor.SetMode(cursor.CursorStatic)
	drain(m, m.Init())
	send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// runCmd executes cmd, giving up on commands that block (timers, blinks).
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

// drain runs cmd and feeds repository and clipboard results back into m
// until no more commands are produced.
func drain(m *model, cmd tea.Cmd) {
	pending := []tea.Cmd{cmd}
	for len(pending) > 0 {
		next := pending[0]
		pending = pending[1:]

		switch msg := runCmd(next).(type) {
		case tea.BatchMsg:
			pending = append(pending, msg...)
		case memoFetchedMsg, memoSavedMsg, memoCreatedMsg, memoDeletedMsg,
			memosLoadedMsg, storeChangedMsg, clipboardMsg:
			_, c := m.Update(msg)
			pending = append(pending, c)
		}
	}
}

// send delivers msg to m and drains the resulting commands.
func send(m *model, msg tea.Msg) {
	_, cmd := m.Update(msg)
	drain(m, cmd)
}

func seedOptions() Options {
	return Options{AutoSave: true, FetchOnSelect: true}
}

func TestModel_StartsEmpty(t *testing.T) {
	m := newTestModel(t, memo.NewMemoryStore(memo.SeedMemos()), seedOptions())

	assert.Equal(t, EditorEmpty, m.editorPanel().Mode())
	assert.Contains(t, m.View(), memo.EmptyPrompt)
	assert.Contains(t, m.View(), "test1")
	assert.Contains(t, m.View(), "test3")

	_, ok := m.ctrl.Selected()
	assert.False(t, ok)
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := newModel(context.Background(), memo.NewMemoryStore(nil), nil, Options{}, nil)
	assert.Equal(t, "Initializing...", m.View())
}

func TestModel_SelectFromList(t *testing.T) {
	m := newTestModel(t, memo.NewMemoryStore(memo.SeedMemos()), seedOptions())

	send(m, keyEnter)
	assert.Equal(t, "test1", m.ctrl.Content())
	assert.Equal(t, EditorEditing, m.editorPanel().Mode())
	assert.Equal(t, "test1", m.editorSurface.Value())

	send(m, keyDown)
	send(m, keyEnter)
	id, ok := m.ctrl.Selected()
	require.True(t, ok)
	assert.Equal(t, 2, id)
	assert.Equal(t, "test2", m.ctrl.Content())
	assert.Equal(t, "test2", m.editorSurface.Value())
}

func TestModel_FetchOnSelectReplacesTitle(t *testing.T) {
	repo := memo.NewMemoryStore([]memo.Memo{
		{ID: 1, Title: "groceries", Content: "milk\neggs"},
	})
	m := newTestModel(t, repo, seedOptions())

	send(m, keyEnter)
	assert.Equal(t, "milk\neggs", m.ctrl.Content())
	assert.Equal(t, "milk\neggs", m.editorSurface.Value())
}

func TestModel_FetchDisabledKeepsTitle(t *testing.T) {
	repo := memo.NewMemoryStore([]memo.Memo{
		{ID: 1, Title: "groceries", Content: "milk"},
	})
	m := newTestModel(t, repo, Options{})

	send(m, keyEnter)
	assert.Equal(t, "groceries", m.ctrl.Content())
}

func TestModel_EditingUpdatesBufferAndSaves(t *testing.T) {
	repo := newRecordingRepo(memo.SeedMemos())
	m := newTestModel(t, repo, seedOptions())

	send(m, keyDown)
	send(m, keyEnter)
	send(m, keyTab)
	require.Equal(t, focusEditor, m.focus)

	send(m, keyRunes("!"))

	assert.Equal(t, "test2!", m.ctrl.Content())
	assert.Equal(t, "test2!", m.editorSurface.Value())
	assert.Equal(t, "test2", m.ctrl.Memos()[1].Title, "titles are never written back")

	body, err := repo.Fetch(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "test2!", body)
	assert.Equal(t, "Saved memo #2", m.status)
}

func TestModel_EditorIgnoresInputWithoutSelection(t *testing.T) {
	repo := newRecordingRepo(memo.SeedMemos())
	m := newTestModel(t, repo, seedOptions())

	send(m, keyTab)
	send(m, keyRunes("x"))

	assert.Equal(t, "", m.ctrl.Content())
	assert.Equal(t, EditorEmpty, m.editorPanel().Mode())
	assert.Empty(t, repo.recorded())
}

func TestModel_SelectMissShowsFallback(t *testing.T) {
	m := newTestModel(t, memo.NewMemoryStore(nil), seedOptions())

	m.handleSelectMemo(99)
	drain(m, m.finish(nil))

	assert.Equal(t, memo.FallbackContent, m.ctrl.Content())
	assert.Equal(t, EditorEditing, m.editorPanel().Mode())
	assert.Equal(t, memo.FallbackContent, m.editorSurface.Value())

	send(m, keyCtrlS)
	assert.Equal(t, "Nothing to save", m.status)
}

func TestModel_SavesAreSerialized(t *testing.T) {
	repo := newRecordingRepo(memo.SeedMemos())
	m := newTestModel(t, repo, seedOptions())

	send(m, keyEnter)
	send(m, keyTab)

	// The first edit starts a save; hold its command while more edits land.
	_, first := m.Update(keyRunes("a"))
	require.True(t, m.saving)

	for _, r := range []string{"b", "c"} {
		_, cmd := m.Update(keyRunes(r))
		assert.Nil(t, cmd)
	}
	require.Len(t, m.pendingSaves, 1, "same-memo requests collapse")
	assert.Equal(t, "test1abc", m.pendingSaves[0].content)

	drain(m, first)

	assert.Equal(t, []saveRequest{
		{id: 1, content: "test1a"},
		{id: 1, content: "test1abc"},
	}, repo.recorded())
	assert.False(t, m.saving)
	assert.Empty(t, m.pendingSaves)
}

func TestModel_SaveFailureReported(t *testing.T) {
	repo := newRecordingRepo(memo.SeedMemos())
	repo.saveErr = errors.New("disk full")
	m := newTestModel(t, repo, seedOptions())

	send(m, keyEnter)
	send(m, keyCtrlS)

	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "disk full")
	assert.Equal(t, "test1", m.ctrl.Content(), "buffer survives a failed save")
}

func TestModel_ManualSave(t *testing.T) {
	repo := newRecordingRepo(memo.SeedMemos())
	m := newTestModel(t, repo, Options{})

	send(m, keyEnter)
	send(m, keyTab)
	send(m, keyRunes("x"))
	assert.Empty(t, repo.recorded(), "auto-save disabled")

	send(m, keyCtrlS)
	assert.Equal(t, []saveRequest{{id: 1, content: "test1x"}}, repo.recorded())
}

func TestModel_DeleteSelectedClearsEditor(t *testing.T) {
	repo := memo.NewMemoryStore(memo.SeedMemos())
	m := newTestModel(t, repo, seedOptions())

	send(m, keyDown)
	send(m, keyEnter)
	require.Equal(t, "test2", m.ctrl.Content())

	send(m, keyRunes("d"))

	assert.Len(t, m.ctrl.Memos(), 2)
	assert.Equal(t, 2, repo.Count())
	assert.Equal(t, "", m.ctrl.Content())
	assert.Equal(t, EditorEmpty, m.editorPanel().Mode())
	assert.Len(t, m.listSurface.Items(), 2)
	assert.Equal(t, "Deleted memo #2", m.status)
}

func TestModel_CreateAppendsAndSelects(t *testing.T) {
	repo := memo.NewMemoryStore(memo.SeedMemos())
	m := newTestModel(t, repo, seedOptions())

	send(m, keyRunes("n"))

	memos := m.ctrl.Memos()
	require.Len(t, memos, 4)
	assert.Equal(t, memo.Memo{ID: 4, Title: "Untitled 4"}, memos[3])

	id, ok := m.ctrl.Selected()
	require.True(t, ok)
	assert.Equal(t, 4, id)
	assert.Equal(t, "Untitled 4", m.ctrl.Content())

	highlighted, ok := m.listPanel().Highlighted()
	require.True(t, ok)
	assert.Equal(t, 4, highlighted)
	assert.Len(t, m.listSurface.Items(), 4)
}

func TestModel_ReloadKeepsSurvivingSelection(t *testing.T) {
	m := newTestModel(t, memo.NewMemoryStore(memo.SeedMemos()), Options{})

	send(m, keyDown)
	send(m, keyDown)
	send(m, keyEnter)

	send(m, memosLoadedMsg{memos: []memo.Memo{{ID: 3, Title: "renamed"}}})

	id, ok := m.ctrl.Selected()
	require.True(t, ok)
	assert.Equal(t, 3, id)
	assert.Equal(t, "test3", m.ctrl.Content())

	items := m.listSurface.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "renamed", items[0].(memoItem).title)
}

func TestModel_StoreChangeReloads(t *testing.T) {
	repo := memo.NewMemoryStore(memo.SeedMemos())
	m := newTestModel(t, repo, Options{})

	_, err := repo.Create(context.Background(), "external", "")
	require.NoError(t, err)

	send(m, storeChangedMsg{})

	memos := m.ctrl.Memos()
	require.Len(t, memos, 4)
	assert.Equal(t, "external", memos[3].Title)
	assert.Len(t, m.listSurface.Items(), 4)
}

func TestModel_CopyToClipboard(t *testing.T) {
	var copied []string
	orig := writeClipboard
	writeClipboard = func(text string) error {
		copied = append(copied, text)
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	m := newTestModel(t, memo.NewMemoryStore(memo.SeedMemos()), Options{})
	send(m, keyEnter)
	send(m, keyCtrlY)

	assert.Equal(t, []string{"test1"}, copied)
	assert.Equal(t, "Copied to clipboard", m.status)
}

func TestModel_CopyFailure(t *testing.T) {
	orig := writeClipboard
	writeClipboard = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { writeClipboard = orig })

	m := newTestModel(t, memo.NewMemoryStore(memo.SeedMemos()), Options{})
	send(m, keyEnter)
	send(m, keyCtrlY)

	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "no clipboard")
}

func TestModel_QuitFromList(t *testing.T) {
	m := newTestModel(t, memo.NewMemoryStore(memo.SeedMemos()), Options{})

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	_, ok := runCmd(cmd).(tea.QuitMsg)
	assert.True(t, ok)
}

func TestModel_QuitKeyTypesInEditor(t *testing.T) {
	m := newTestModel(t, memo.NewMemoryStore(memo.SeedMemos()), Options{})

	send(m, keyEnter)
	send(m, keyTab)
	send(m, keyRunes("q"))

	assert.Equal(t, "test1q", m.ctrl.Content())
}

func TestModel_FocusTogglesHelp(t *testing.T) {
	m := newTestModel(t, memo.NewMemoryStore(memo.SeedMemos()), Options{})

	assert.Contains(t, m.View(), "new")
	send(m, keyTab)
	assert.Equal(t, focusEditor, m.focus)
	assert.Contains(t, m.View(), "save")
	send(m, keyTab)
	assert.Equal(t, focusList, m.focus)
}

func TestModel_TabTitleShownAsOwned(t *testing.T) {
	repo := newRecordingRepo([]memo.Memo{{ID: 1, Title: "a\tb"}})
	m := newTestModel(t, repo, seedOptions())

	send(m, keyEnter)
	send(m, keyTab)
	assert.Equal(t, "a    b", m.ctrl.Content())
	assert.Equal(t, m.ctrl.Content(), m.editorSurface.Value())

	send(m, tea.KeyMsg{Type: tea.KeyLeft})
	send(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, m.ctrl.Content(), m.editorSurface.Value())
	assert.Empty(t, repo.recorded(), "moving the cursor saves nothing")

	send(m, keyRunes("!"))
	assert.Equal(t, "a   ! b", m.ctrl.Content(), "cursor stayed where it was moved")
	assert.Equal(t, []saveRequest{{id: 1, content: "a   ! b"}}, repo.recorded())
	assert.Equal(t, "a\tb", m.ctrl.Memos()[0].Title)
}

func TestModel_CRLFBodyShownAsOwned(t *testing.T) {
	repo := newRecordingRepo([]memo.Memo{
		{ID: 1, Title: "x\r\ny", Content: "p\tq\r\nr"},
	})
	m := newTestModel(t, repo, seedOptions())

	send(m, keyEnter)
	assert.Equal(t, "p    q\nr", m.ctrl.Content())
	assert.Equal(t, m.ctrl.Content(), m.editorSurface.Value())

	send(m, keyTab)
	send(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Empty(t, repo.recorded())

	body, err := repo.Fetch(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "p\tq\r\nr", body, "stored body untouched until edited")
}

func TestModel_DeleteDropsQueuedSaves(t *testing.T) {
	repo := newRecordingRepo(memo.SeedMemos())
	m := newTestModel(t, repo, seedOptions())

	send(m, keyEnter)
	send(m, keyTab)
	_, first := m.Update(keyRunes("a"))
	require.True(t, m.saving)

	send(m, keyTab)
	send(m, keyDown)
	send(m, keyEnter)
	send(m, keyTab)
	_, cmd := m.Update(keyRunes("x"))
	assert.Nil(t, cmd)
	require.Equal(t, []saveRequest{{id: 2, content: "test2x"}}, m.pendingSaves)

	send(m, keyTab)
	send(m, keyRunes("d"))
	assert.Empty(t, m.pendingSaves)

	drain(m, first)

	assert.Equal(t, []saveRequest{{id: 1, content: "test1a"}}, repo.recorded())
	assert.False(t, m.statusErr)
	assert.False(t, m.saving)
}

func TestModel_SaveForMissingMemoIsQuiet(t *testing.T) {
	repo := newRecordingRepo(memo.SeedMemos())
	m := newTestModel(t, repo, seedOptions())
	m.saving = true
	m.pendingSaves = []saveRequest{{id: 1, content: "next"}}

	_, cmd := m.Update(memoSavedMsg{
		req: saveRequest{id: 9, content: "gone"},
		err: fmt.Errorf("%w: 9", memo.ErrNotFound),
	})

	assert.False(t, m.statusErr)
	assert.NotContains(t, m.status, "failed")
	assert.True(t, m.saving, "queue keeps draining")

	drain(m, cmd)
	assert.Equal(t, []saveRequest{{id: 1, content: "next"}}, repo.recorded())
}
