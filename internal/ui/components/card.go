package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked cards so
// they visually align.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 72)
}

// Card wraps content in a rounded card of width w, highlighted when selected.
func Card(content string, w int, selected bool) string {
	style := theme.Card
	if selected {
		style = theme.SelectedCard
	}
	return style.Width(w).Render(content)
}

// StatCard renders a number with a caption underneath.
func StatCard(value, caption string, color lipgloss.Style, w int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		color.Render(value),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(caption),
	)
	return theme.Card.Width(w).Align(lipgloss.Center).Render(body)
}

// Modal centers content in a double-bordered box within width x height.
func Modal(content string, width, height int) string {
	box := theme.Modal.Width(min(width-4, 70)).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
