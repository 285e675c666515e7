// Package toasts renders the notification stack.
package toasts

import (
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/abcinema/pkg/toast"
	"tableflip.dev/abcinema/pkg/tui/theme"
)

// Model holds the last snapshot from the toast channel.
type Model struct {
	theme    theme.Theme
	messages []toast.Message
}

// New constructs an empty stack.
func New(th theme.Theme) *Model {
	return &Model{theme: th}
}

// SetMessages applies a snapshot, oldest first.
func (m *Model) SetMessages(msgs []toast.Message) {
	m.messages = msgs
}

// Len is the number of messages on screen.
func (m *Model) Len() int { return len(m.messages) }

// View renders the stack right-aligned, newest at the bottom.
func (m *Model) View() string {
	if len(m.messages) == 0 {
		return ""
	}
	boxes := make([]string, 0, len(m.messages))
	for _, msg := range m.messages {
		style := m.theme.Toast.Frame
		text := "✓ " + msg.Text
		if msg.Phase == toast.PhaseExiting {
			style = m.theme.Toast.Exiting
		}
		boxes = append(boxes, style.Render(text))
	}
	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}
