package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
)

// formPanel hosts a huh form inside a page. While open it receives every
// message the page does not handle itself.
type formPanel struct {
	form   *huh.Form
	title  string
	submit func() tea.Cmd
}

// open shows form. submit runs once the form completes.
func (p *formPanel) open(title string, form *huh.Form, submit func() tea.Cmd) tea.Cmd {
	p.form = form
	p.title = title
	p.submit = submit
	return form.Init()
}

func (p *formPanel) active() bool { return p.form != nil }

func (p *formPanel) close() {
	p.form = nil
	p.submit = nil
}

func (p *formPanel) update(msg tea.Msg) tea.Cmd {
	// Escape cancels the form.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		p.close()
		return flash(formatter.Dim("Cancelled."))
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	switch p.form.State {
	case huh.StateCompleted:
		submit := p.submit
		p.close()
		if submit != nil {
			return tea.Batch(cmd, submit())
		}
		return cmd
	case huh.StateAborted:
		p.close()
		return flash(formatter.Dim("Cancelled."))
	}
	return cmd
}

func (p *formPanel) view() string {
	return "\n" + formatter.Bold(p.title) + "\n\n" + p.form.View() + "\n" + formatter.Dim("enter: next  esc: cancel")
}
