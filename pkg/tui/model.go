package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/memo/pkg/logging"
	"github.com/entrhq/memo/pkg/memo"
)

// focusArea names the panel receiving keyboard input.
type focusArea int

const (
	focusList focusArea = iota
	focusEditor
)

// model is the root of the TUI. It owns the memo controller and the widget
// surfaces; ListPanel and EditorPanel are rebuilt from it on every pass.
type model struct {
	ctx  context.Context
	repo memo.Repository
	ctrl *memo.Controller
	opts Options
	log  *logging.Logger

	// Bubble Tea components. They carry cursor and scroll position only.
	listSurface   list.Model
	editorSurface textarea.Model
	help          help.Model
	keys          keyMap

	focus   focusArea
	listRev uint64 // controller revision the list rows were built from
	synced  bool

	// Save pipeline: one save in flight, later requests wait in order
	saving       bool
	pendingSaves []saveRequest

	status    string
	statusErr bool

	// Window dimensions
	width  int
	height int
	ready  bool

	// Commands produced by panel callbacks during the current Update
	queued []tea.Cmd
}

// saveRequest is a snapshot of a buffer to persist for one memo.
type saveRequest struct {
	id      int
	content string
}

func newModel(ctx context.Context, repo memo.Repository, memos []memo.Memo, opts Options, log *logging.Logger) *model {
	if log == nil {
		log = logging.NewNopLogger("tui")
	}
	return &model{
		ctx:           ctx,
		repo:          repo,
		ctrl:          memo.NewController(memos, memo.WithNormalizer(normalizeText)),
		opts:          opts,
		log:           log,
		listSurface:   newListSurface(),
		editorSurface: newEditorSurface(),
		help:          help.New(),
		keys:          defaultKeyMap(),
		focus:         focusList,
	}
}

// listPanel projects the controller's collection into the list view.
func (m *model) listPanel() ListPanel {
	return ListPanel{
		Memos:    m.ctrl.Memos(),
		OnSelect: m.handleSelectMemo,
		surface:  &m.listSurface,
	}
}

// editorPanel projects the controller's content buffer into the editor.
func (m *model) editorPanel() EditorPanel {
	return EditorPanel{
		Content:  m.ctrl.Content(),
		OnChange: m.handleContentChange,
		surface:  &m.editorSurface,
	}
}

// queue schedules cmd to be returned from the current Update.
func (m *model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.queued = append(m.queued, cmd)
	}
}

func (m *model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *model) setError(text string) {
	m.status = text
	m.statusErr = true
}
