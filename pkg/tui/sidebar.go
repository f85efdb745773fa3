package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/memo/pkg/memo"
)

// memoItem is one row of the memo list.
type memoItem struct {
	id    int
	title string
}

func (i memoItem) FilterValue() string { return i.title }
func (i memoItem) Title() string       { return i.title }
func (i memoItem) Description() string { return fmt.Sprintf("#%d", i.id) }

// newListSurface builds the list widget the root model keeps for cursor and
// scroll position. Rows are supplied by ListPanel.
func newListSurface() list.Model {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(salmonPink).
		BorderForeground(salmonPink)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.
		Foreground(mutedGray).
		BorderForeground(salmonPink)

	l := list.New(nil, d, 0, 0)
	l.Title = "Memos"
	l.Styles.Title = listTitleStyle
	l.SetStatusBarItemName("memo", "memos")
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

// ListPanel renders the memo collection and reports row activation. It
// holds no state of its own: Memos and OnSelect come from the root model,
// and surface only tracks the cursor.
type ListPanel struct {
	Memos    []memo.Memo
	OnSelect func(id int)

	surface *list.Model
}

// Rows returns one list row per memo, in collection order.
func (p ListPanel) Rows() []list.Item {
	items := make([]list.Item, len(p.Memos))
	for i, m := range p.Memos {
		items[i] = memoItem{id: m.ID, title: m.Title}
	}
	return items
}

// Sync replaces the surface's rows with rows built from Memos.
func (p ListPanel) Sync() tea.Cmd {
	return p.surface.SetItems(p.Rows())
}

// Filtering reports whether the user is typing a filter query, in which
// case keys belong to the filter input.
func (p ListPanel) Filtering() bool {
	return p.surface.FilterState() == list.Filtering
}

// Highlighted returns the id of the row under the cursor.
func (p ListPanel) Highlighted() (int, bool) {
	item, ok := p.surface.SelectedItem().(memoItem)
	if !ok {
		return 0, false
	}
	return item.id, true
}

// Activate invokes OnSelect with the highlighted row's memo id.
func (p ListPanel) Activate() bool {
	id, ok := p.Highlighted()
	if !ok {
		return false
	}
	p.OnSelect(id)
	return true
}

// Update activates the highlighted row on enter and hands everything else
// to the list widget for navigation and filtering.
func (p ListPanel) Update(msg tea.Msg, keys keyMap) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !p.Filtering() && key.Matches(keyMsg, keys.Select) {
		p.Activate()
		return nil
	}

	updated, cmd := p.surface.Update(msg)
	*p.surface = updated
	return cmd
}

// View renders the list.
func (p ListPanel) View() string {
	return p.surface.View()
}
