package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/memo/pkg/memo"
)

// Init builds the initial list rows.
func (m *model) Init() tea.Cmd {
	return m.syncList()
}

// Update handles all state updates for the TUI model.
// This is the main event loop handler for Bubble Tea.
//
// Uses a pointer receiver so panel callbacks, which close over m, mutate
// the same model that Bubble Tea keeps.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.log.Debugf("Received tea.WindowSizeMsg: width=%d, height=%d", msg.Width, msg.Height)
		m.handleWindowResize(msg)

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case memoFetchedMsg:
		m.log.Debugf("Received memoFetchedMsg: id=%d err=%v", msg.id, msg.err)
		m.handleFetched(msg)

	case memoSavedMsg:
		m.log.Debugf("Received memoSavedMsg: id=%d err=%v", msg.req.id, msg.err)
		cmd = m.handleSaved(msg)

	case memoCreatedMsg:
		m.log.Debugf("Received memoCreatedMsg: id=%d err=%v", msg.memo.ID, msg.err)
		m.handleCreated(msg)

	case memoDeletedMsg:
		m.log.Debugf("Received memoDeletedMsg: id=%d deleted=%t err=%v", msg.id, msg.deleted, msg.err)
		m.handleDeleted(msg)

	case storeChangedMsg:
		m.log.Debugf("Received storeChangedMsg")
		cmd = loadMemos(m.ctx, m.repo)

	case memosLoadedMsg:
		m.log.Debugf("Received memosLoadedMsg: count=%d err=%v", len(msg.memos), msg.err)
		m.handleLoaded(msg)

	case clipboardMsg:
		if msg.err != nil {
			m.log.Warnf("Clipboard write failed: %v", msg.err)
			m.setError(fmt.Sprintf("Copy failed: %v", msg.err))
		} else {
			m.setStatus("Copied to clipboard")
		}

	default:
		// Internal widget messages: list filter results, cursor blinks
		listCmd := m.listPanel().Update(msg, m.keys)
		editorCmd := m.editorPanel().Update(msg)
		cmd = tea.Batch(listCmd, editorCmd)
	}

	return m, m.finish(cmd)
}

// finish brings the surfaces back in line with the controller and collects
// every command produced during this Update.
func (m *model) finish(cmd tea.Cmd) tea.Cmd {
	m.queue(cmd)
	m.queue(m.syncList())
	m.editorPanel().Reconcile()

	cmds := m.queued
	m.queued = nil
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// syncList rebuilds list rows when the collection changed since the last
// build.
func (m *model) syncList() tea.Cmd {
	if m.synced && m.listRev == m.ctrl.Revision() {
		return nil
	}
	m.synced = true
	m.listRev = m.ctrl.Revision()
	return m.listPanel().Sync()
}

func (m *model) handleWindowResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	l := m.layout()
	m.listSurface.SetSize(l.listInnerWidth, l.innerHeight)
	m.editorSurface.SetWidth(l.editorInnerWidth)
	m.editorSurface.SetHeight(l.innerHeight)
	m.help.Width = msg.Width
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		return tea.Quit
	}

	lp := m.listPanel()
	filtering := m.focus == focusList && lp.Filtering()

	if !filtering {
		switch {
		case key.Matches(msg, m.keys.SwitchFocus):
			return m.toggleFocus()
		case key.Matches(msg, m.keys.Save):
			return m.handleSaveKey()
		case key.Matches(msg, m.keys.Copy):
			return copyToClipboard(m.ctrl.Content())
		}
	}

	if m.focus == focusEditor {
		return m.editorPanel().Update(msg)
	}

	if !filtering {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.New):
			title := fmt.Sprintf("Untitled %d", m.ctrl.NextID())
			return createMemo(m.ctx, m.repo, title)
		case key.Matches(msg, m.keys.Delete):
			if id, ok := lp.Highlighted(); ok {
				return deleteMemo(m.ctx, m.repo, id)
			}
			return nil
		}
	}

	return lp.Update(msg, m.keys)
}

func (m *model) toggleFocus() tea.Cmd {
	if m.focus == focusList {
		m.focus = focusEditor
		return m.editorSurface.Focus()
	}
	m.focus = focusList
	m.editorSurface.Blur()
	return nil
}

// handleSelectMemo is the list panel's selection callback.
func (m *model) handleSelectMemo(id int) {
	m.ctrl.Select(id)
	m.log.Infof("Selected memo %d", id)

	if !m.opts.FetchOnSelect {
		return
	}
	if _, ok := m.ctrl.SelectedMemo(); ok {
		m.queue(fetchMemo(m.ctx, m.repo, id))
	}
}

// handleContentChange is the editor panel's change callback.
func (m *model) handleContentChange(text string) {
	m.ctrl.EditContent(text)
	if m.opts.AutoSave {
		m.queue(m.requestSave())
	}
}

func (m *model) handleSaveKey() tea.Cmd {
	if _, ok := m.ctrl.SelectedMemo(); !ok {
		m.setStatus("Nothing to save")
		return nil
	}
	return m.requestSave()
}

// requestSave persists the buffer to the selected memo. Saves run one at a
// time; requests made while one is in flight wait in order, and consecutive
// requests for the same memo collapse to the newest buffer.
func (m *model) requestSave() tea.Cmd {
	selected, ok := m.ctrl.SelectedMemo()
	if !ok {
		return nil
	}
	req := saveRequest{id: selected.ID, content: m.ctrl.Content()}

	if m.saving {
		if n := len(m.pendingSaves); n > 0 && m.pendingSaves[n-1].id == req.id {
			m.pendingSaves[n-1] = req
		} else {
			m.pendingSaves = append(m.pendingSaves, req)
		}
		return nil
	}

	m.saving = true
	return saveMemo(m.ctx, m.repo, req)
}

func (m *model) handleSaved(msg memoSavedMsg) tea.Cmd {
	m.saving = false

	switch {
	case errors.Is(msg.err, memo.ErrNotFound):
		// Deleted elsewhere while the save was in flight.
		m.log.Infof("Skipped save for missing memo %d", msg.req.id)
	case msg.err != nil:
		m.log.Errorf("Failed to save memo %d: %v", msg.req.id, msg.err)
		m.setError(fmt.Sprintf("Save failed: %v", msg.err))
	default:
		m.setStatus(fmt.Sprintf("Saved memo #%d", msg.req.id))
	}

	if len(m.pendingSaves) == 0 {
		return nil
	}
	next := m.pendingSaves[0]
	m.pendingSaves = m.pendingSaves[1:]
	m.saving = true
	return saveMemo(m.ctx, m.repo, next)
}

// dropPendingSaves discards queued saves for a memo that no longer exists.
func (m *model) dropPendingSaves(id int) {
	kept := m.pendingSaves[:0]
	for _, req := range m.pendingSaves {
		if req.id != id {
			kept = append(kept, req)
		}
	}
	m.pendingSaves = kept
}

func (m *model) handleFetched(msg memoFetchedMsg) {
	if msg.err != nil {
		if errors.Is(msg.err, memo.ErrNotFound) {
			return
		}
		m.log.Errorf("Failed to load memo %d: %v", msg.id, msg.err)
		m.setError(fmt.Sprintf("Load failed: %v", msg.err))
		return
	}
	m.ctrl.ApplyFetched(msg.id, msg.content)
}

func (m *model) handleCreated(msg memoCreatedMsg) {
	if msg.err != nil {
		m.log.Errorf("Failed to create memo: %v", msg.err)
		m.setError(fmt.Sprintf("Create failed: %v", msg.err))
		return
	}

	if err := m.ctrl.Add(msg.memo); err != nil && !errors.Is(err, memo.ErrDuplicateID) {
		m.setError(err.Error())
		return
	}
	m.handleSelectMemo(msg.memo.ID)
	m.queue(m.syncList())
	m.highlight(msg.memo.ID)
	m.setStatus(fmt.Sprintf("Created memo #%d", msg.memo.ID))
}

func (m *model) handleDeleted(msg memoDeletedMsg) {
	if msg.err != nil {
		m.log.Errorf("Failed to delete memo %d: %v", msg.id, msg.err)
		m.setError(fmt.Sprintf("Delete failed: %v", msg.err))
		return
	}

	// Drop it locally either way; a miss means the store no longer has it.
	m.ctrl.Remove(msg.id)
	m.dropPendingSaves(msg.id)
	if msg.deleted {
		m.setStatus(fmt.Sprintf("Deleted memo #%d", msg.id))
	}
}

func (m *model) handleLoaded(msg memosLoadedMsg) {
	if msg.err != nil {
		m.log.Errorf("Failed to reload memos: %v", msg.err)
		m.setError(fmt.Sprintf("Reload failed: %v", msg.err))
		return
	}
	if sameCollection(m.ctrl.Memos(), msg.memos) {
		return
	}
	m.log.Infof("Reloaded %d memos", len(msg.memos))
	m.ctrl.Replace(msg.memos)
}

// highlight moves the list cursor to the row for id when no filter hides
// rows.
func (m *model) highlight(id int) {
	if m.listSurface.FilterState() != list.Unfiltered {
		return
	}
	for i, item := range m.listSurface.Items() {
		if it, ok := item.(memoItem); ok && it.id == id {
			m.listSurface.Select(i)
			return
		}
	}
}

// sameCollection compares what the list displays: ids and titles in order.
func sameCollection(a, b []memo.Memo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Title != b[i].Title {
			return false
		}
	}
	return true
}
