package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/mabhi256/jprobe/internal/investigator"
	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/mabhi256/jprobe/internal/registry"
)

type Model struct {
	// Data
	registry  *registry.ClassRegistry
	inv       *investigator.Investigator
	summary   *investigator.Summary
	delimiter string

	// Class selection state
	pickMode  bool
	classList list.Model

	// UI State
	activeTab       TabType
	width           int
	height          int
	scrollPositions map[TabType]int
	help            help.Model

	// Invoke tab state
	methods        []*meta.Method
	selectedMethod int
	results        map[string]string

	// Error state
	errorMessage string
	showError    bool
}

type TabType int

const (
	TabOverview TabType = iota
	TabMembers
	TabChain
	TabInvoke
)

func (t TabType) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabMembers:
		return "Members"
	case TabChain:
		return "Chain"
	case TabInvoke:
		return "Invoke"
	default:
		return "Unknown"
	}
}

// KeyMap defines the key bindings
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Tab      key.Binding
	Enter    key.Binding
	Escape   key.Binding
	Classes  key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Classes, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown},
		{k.Tab, k.Enter, k.Classes, k.Escape, k.Quit},
	}
}

var keys = KeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev tab")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next tab")),
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select/invoke")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Classes:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "classes")),
	PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
