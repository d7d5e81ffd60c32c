package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	Dismiss   key.Binding

	// Input
	Add    key.Binding
	Assist key.Binding

	// Suggestions and list
	Up    key.Binding
	Down  key.Binding
	Pick  key.Binding
	PickN key.Binding

	// List
	Delete   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Help     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "esci")),
		NextFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "sezione")),
		PrevFocus: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "sezione prec.")),
		Dismiss:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "chiudi")),

		Add:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "aggiungi")),
		Assist: key.NewBinding(key.WithKeys("ctrl+s", "alt+enter"), key.WithHelp("ctrl+s", "✨ AI")),

		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "su")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "giù")),
		Pick:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "aggiungi")),
		PickN: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "scegli")),

		Delete:   key.NewBinding(key.WithKeys("d", "delete", "x"), key.WithHelp("d", "elimina")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "pagina su")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "pagina giù")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "aiuto")),
	}
}

// focusedKeys adapts the key map to help.KeyMap for the focused section.
type focusedKeys struct {
	keys  keyMap
	focus focus
}

func (f focusedKeys) ShortHelp() []key.Binding {
	k := f.keys
	switch f.focus {
	case focusSuggestions:
		return []key.Binding{k.Up, k.Down, k.Pick, k.PickN, k.Dismiss, k.Quit}
	case focusList:
		return []key.Binding{k.Up, k.Down, k.Delete, k.NextFocus, k.Help, k.Quit}
	default:
		return []key.Binding{k.Add, k.Assist, k.NextFocus, k.Quit}
	}
}

func (f focusedKeys) FullHelp() [][]key.Binding {
	k := f.keys
	return [][]key.Binding{
		{k.Add, k.Assist, k.Dismiss},
		{k.Up, k.Down, k.Pick, k.PickN},
		{k.Delete, k.PageUp, k.PageDown},
		{k.NextFocus, k.PrevFocus, k.Help, k.Quit},
	}
}
