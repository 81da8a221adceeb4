package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tonylturner/ddcdec/internal/ddc"
)

// Run opens the viewer on the alternate screen and blocks until it quits.
func Run(title string, annotations []ddc.Annotation) error {
	program := tea.NewProgram(NewModel(title, annotations), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
