package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const (
	minListWidth = 24
	chromeLines  = 3 // header, status, help
	borderSize   = 2 // one cell each side
	frameWidth   = 4 // border + horizontal padding
	frameHeight  = 2 // border
)

// layoutSizes holds panel dimensions derived from the window size.
type layoutSizes struct {
	listWidth        int
	editorWidth      int
	bodyHeight       int
	listInnerWidth   int
	editorInnerWidth int
	innerHeight      int
}

func (m *model) layout() layoutSizes {
	listWidth := m.width / 3
	if listWidth < minListWidth {
		listWidth = minListWidth
	}
	editorWidth := m.width - listWidth
	bodyHeight := m.height - chromeLines

	return layoutSizes{
		listWidth:        listWidth,
		editorWidth:      editorWidth,
		bodyHeight:       bodyHeight,
		listInnerWidth:   max(listWidth-frameWidth, 1),
		editorInnerWidth: max(editorWidth-frameWidth, 1),
		innerHeight:      max(bodyHeight-frameHeight, 1),
	}
}

// View renders the entire TUI interface.
func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	l := m.layout()

	sidebar := panelFrame(m.focus == focusList).
		Width(l.listWidth - borderSize).
		Height(l.innerHeight).
		Render(m.listPanel().View())

	mainArea := panelFrame(m.focus == focusEditor).
		Width(l.editorWidth - borderSize).
		Height(l.innerHeight).
		Render(m.editorPanel().View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.buildHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainArea),
		m.buildStatus(),
		m.buildHelp(),
	)
}

// buildHeader renders the title line with the store location
func (m *model) buildHeader() string {
	label := m.opts.StoreLabel
	if label == "" {
		label = "in-memory"
	}
	return headerStyle.Render(fmt.Sprintf("memo · %s", label))
}

// buildStatus renders the last status or error message
func (m *model) buildStatus() string {
	if m.statusErr {
		return errorStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}

// buildHelp renders key hints for the focused panel
func (m *model) buildHelp() string {
	bindings := m.keys.listHelp()
	if m.focus == focusEditor {
		bindings = m.keys.editorHelp()
	}
	return helpStyle.Render(m.help.ShortHelpView(bindings))
}
