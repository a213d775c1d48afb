package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
	Add       key.Binding
	Delete    key.Binding
	Hide      key.Binding
	Link      key.Binding
	Filter    key.Binding
	Search    key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Matrix    key.Binding
	Ideas     key.Binding
	Review    key.Binding
	Help      key.Binding
	Quit      key.Binding
	Escape    key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log/select")),
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Hide:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hide/show")),
	Link:      key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "link to practice")),
	Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	PrevMonth: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "older month")),
	NextMonth: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "newer month")),
	Matrix:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "matrix")),
	Ideas:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "ideas")),
	Review:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "review")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}
