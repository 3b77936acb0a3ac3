package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pulseforge/pulseforge/internal/navigation"
)

// View is the interface that all TUI pages implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	Page() navigation.Page
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	// CapturesInput is true while a form or search field owns the
	// keyboard, so global keys such as q and the page numbers pass through.
	CapturesInput() bool
}

var (
	keyReload = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))
	keyNew    = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new"))
	keySearch = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	keyEdit   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	keyUpDown = key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑↓", "select"))
)
