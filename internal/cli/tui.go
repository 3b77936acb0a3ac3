package cli

import (
	tea "github.com/charmbracelet/bubbletea"
)

// runTUI starts the full-screen app and blocks until it exits.
func runTUI(app *App) error {
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
