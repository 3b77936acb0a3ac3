package cli

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
)

// searchBar is the "/" filter field of the forum and issue pages.
type searchBar struct {
	input textinput.Model
	query string
}

func newSearchBar(placeholder string) searchBar {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.PromptStyle = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	return searchBar{input: ti}
}

func (s *searchBar) focused() bool { return s.input.Focused() }

func (s *searchBar) focus() tea.Cmd {
	s.input.SetValue(s.query)
	s.input.CursorEnd()
	return s.input.Focus()
}

// update handles a key while focused. It reports whether the query was
// submitted.
func (s *searchBar) update(msg tea.Msg) (submitted bool, cmd tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEnter:
			s.query = s.input.Value()
			s.input.Blur()
			return true, nil
		case tea.KeyEsc:
			s.input.Blur()
			return false, nil
		}
	}
	s.input, cmd = s.input.Update(msg)
	return false, cmd
}

func (s *searchBar) view() string {
	if s.input.Focused() {
		return s.input.View() + "\n"
	}
	if s.query != "" {
		return formatter.Dim("Filter: "+s.query) + "\n"
	}
	return ""
}
