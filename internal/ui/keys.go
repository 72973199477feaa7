package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Sort        key.Binding
	HeaderLeft  key.Binding
	HeaderRight key.Binding
	HeaderSort  key.Binding
	Filters     key.Binding
	Focus       key.Binding
	Search      key.Binding
	Close       key.Binding
	Quit        key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Top:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Sort:        key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "sort column")),
		HeaderLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		HeaderRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		HeaderSort:  key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("s", "sort")),
		Filters:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
		Focus:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Close:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) tableHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Sort, k.HeaderSort, k.Filters, k.Search, k.Quit}
}

func (k keyMap) searchHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "browse")),
		k.Focus,
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}
