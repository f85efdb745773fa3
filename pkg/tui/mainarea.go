package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/runeutil"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/memo/pkg/memo"
)

// EditorMode is the presentation state of the editor panel.
type EditorMode int

const (
	// EditorEmpty shows the select prompt and accepts no input.
	EditorEmpty EditorMode = iota
	// EditorEditing shows an editable surface bound to the content buffer.
	EditorEditing
)

func (m EditorMode) String() string {
	switch m {
	case EditorEmpty:
		return "empty"
	case EditorEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// editorSanitizer is the textarea's default input sanitizer. It expands tabs
// to four spaces and drops control runes other than line breaks.
var editorSanitizer = runeutil.NewSanitizer()

// normalizeText returns s in the form the editor surface stores it, so
// SetValue(normalizeText(s)) reads back unchanged. CRLF pairs collapse to a
// single newline first.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return string(editorSanitizer.Sanitize([]rune(s)))
}

// newEditorSurface builds the textarea the root model keeps for cursor and
// scroll position. Its value is always overwritten from the content buffer.
func newEditorSurface() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = ""
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Text = lipgloss.NewStyle().Foreground(brightWhite)
	return ta
}

// EditorPanel renders the content buffer. The displayed value is always
// exactly Content; each edit reports the full new text through OnChange and
// is only shown once the owner feeds it back as Content.
type EditorPanel struct {
	Content  string
	OnChange func(text string)

	surface *textarea.Model
}

// Mode derives the presentation state from Content.
func (p EditorPanel) Mode() EditorMode {
	if p.Content == "" {
		return EditorEmpty
	}
	return EditorEditing
}

// Reconcile makes the surface show Content. It is a no-op when they already
// agree, which keeps the cursor where the user left it. Content is compared
// in normalized form so text the surface cannot hold verbatim does not reset
// the cursor on every pass.
func (p EditorPanel) Reconcile() {
	want := normalizeText(p.Content)
	if p.surface.Value() != want {
		p.surface.SetValue(want)
	}
}

// Update feeds msg to the surface while editing and reports the resulting
// text when it differs from Content. Input is ignored in the empty state.
func (p EditorPanel) Update(msg tea.Msg) tea.Cmd {
	if p.Mode() == EditorEmpty {
		return nil
	}

	p.Reconcile()
	before := p.surface.Value()
	updated, cmd := p.surface.Update(msg)
	*p.surface = updated

	if text := p.surface.Value(); text != before {
		p.OnChange(text)
	}
	return cmd
}

// View renders the prompt or the editable surface.
func (p EditorPanel) View() string {
	if p.Mode() == EditorEmpty {
		return promptStyle.Render(memo.EmptyPrompt)
	}
	return p.surface.View()
}
