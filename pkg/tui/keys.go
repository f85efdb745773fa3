package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the bindings shown in the help line.
type keyMap struct {
	Select      key.Binding
	New         key.Binding
	Delete      key.Binding
	SwitchFocus key.Binding
	Save        key.Binding
	Copy        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		SwitchFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// listHelp is shown while the memo list has focus.
func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Select, k.New, k.Delete, k.SwitchFocus, k.Copy, k.Quit}
}

// editorHelp is shown while the editor has focus.
func (k keyMap) editorHelp() []key.Binding {
	return []key.Binding{k.SwitchFocus, k.Save, k.Copy, k.ForceQuit}
}
