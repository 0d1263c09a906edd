package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizmaster/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// SyncMsg asks the app to replace the screen stack with the screen for the
// controller's current state. Notice, when set, is shown on that screen.
type SyncMsg struct {
	Notice string
}

// Sync returns a command that emits SyncMsg.
func Sync(notice string) tea.Cmd {
	return func() tea.Msg { return SyncMsg{Notice: notice} }
}
