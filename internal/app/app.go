package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Width         int
	Height        int
	Title         string
	ArrowStealing bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	model := NewModel(cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
