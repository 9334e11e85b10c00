package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Search     key.Binding
	Clear      key.Binding
	All        key.Binding
	PrevLetter key.Binding
	NextLetter key.Binding
	Open       key.Binding
	Copy       key.Binding
	Classic    key.Binding
	Main       key.Binding
	CloseHero  key.Binding
	Theme      key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous card")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next card")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous row")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next row")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("PgUp", "scroll page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("PgDn", "scroll page down")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Clear:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "clear filter")),
		All:        key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "all letters")),
		PrevLetter: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous letter")),
		NextLetter: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next letter")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "open article")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		Classic:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "expand classic image")),
		Main:       key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "expand main image")),
		CloseHero:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close image")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cycle particle theme")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload catalog")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp is the footer line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Down, k.Search, k.Open, k.Help, k.Quit}
}

type helpSection struct {
	title    string
	bindings []key.Binding
}

func (k keyMap) sections() []helpSection {
	return []helpSection{
		{"NAVIGATION", []key.Binding{k.Left, k.Right, k.Up, k.Down, k.PageUp, k.PageDown}},
		{"FILTER", []key.Binding{k.Search, k.Clear, k.All, k.PrevLetter, k.NextLetter}},
		{"ACTIONS", []key.Binding{k.Open, k.Copy, k.Classic, k.Main, k.CloseHero, k.Theme, k.Reload}},
		{"VIEW", []key.Binding{k.Help, k.Quit}},
	}
}
