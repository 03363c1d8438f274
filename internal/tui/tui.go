// Package tui implements the interactive mode: a volume picker, a folder
// browser, and a live-progress scan view built on bubbletea.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive UI and blocks until the user quits.
func Run() error {
	program := tea.NewProgram(newModel(), tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running interactive mode: %w", err)
	}

	return nil
}
