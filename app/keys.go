package app

import "charm.land/bubbles/v2/key"

// KeyMap defines all global keybindings.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Escape    key.Binding

	// Navigation
	ScrollUp     key.Binding // k
	ScrollDown   key.Binding // j
	PageUp       key.Binding
	PageDown     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	ScrollTop    key.Binding
	ScrollBottom key.Binding
	SelectNext   key.Binding
	SelectPrev   key.Binding

	// Block actions
	Edit           key.Binding
	Save           key.Binding
	ToggleComments key.Binding
	AddComment     key.Binding
	DeleteComment  key.Binding
	Submit         key.Binding
	Improve        key.Binding
	Summarize      key.Binding
	Undo           key.Binding
	Redo           key.Binding

	// Documents
	Preset key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "space"),
			key.WithHelp("pgdn", "page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		ScrollTop: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home", "top"),
		),
		ScrollBottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "bottom"),
		),
		SelectNext: key.NewBinding(
			key.WithKeys("n", "tab"),
			key.WithHelp("n", "next block"),
		),
		SelectPrev: key.NewBinding(
			key.WithKeys("p", "shift+tab"),
			key.WithHelp("p", "previous block"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		ToggleComments: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comments"),
		),
		AddComment: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add comment"),
		),
		DeleteComment: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete last comment"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "post"),
		),
		Improve: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "AI improve"),
		),
		Summarize: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "AI summarize"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "redo"),
		),
		Preset: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7"),
			key.WithHelp("1-7", "documents"),
		),
	}
}

// helpLine renders "key action" pairs for the status bar.
func helpLine(bindings ...key.Binding) []string {
	out := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, h.Key+" "+h.Desc)
	}
	return out
}
