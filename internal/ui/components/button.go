package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/ui/theme"
)

// Button is a labelled control that is either available or greyed out.
type Button struct {
	Label  string
	Active bool
	Hidden bool
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render(b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// ButtonRow renders the visible buttons side by side.
func ButtonRow(buttons ...Button) string {
	var parts []string
	for _, b := range buttons {
		if b.Hidden {
			continue
		}
		if len(parts) > 0 {
			parts = append(parts, "  ")
		}
		parts = append(parts, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
