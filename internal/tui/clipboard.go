package tui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// clipboardCopyMsg is sent after a clipboard copy operation.
type clipboardCopyMsg struct {
	content string
	err     error
}

// copyToClipboard returns a command that writes text with write and
// reports the outcome as a clipboardCopyMsg.
func copyToClipboard(write func(string) error, text string) tea.Cmd {
	if write == nil {
		write = clipboard.WriteAll
	}
	return func() tea.Msg {
		return clipboardCopyMsg{content: text, err: write(text)}
	}
}
