package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/ui/theme"
)

// OptionState is how an answer option is drawn.
type OptionState int

const (
	OptionIdle OptionState = iota
	OptionSelected
	OptionCorrect
	OptionIncorrect
)

// Option is one lettered answer.
type Option struct {
	Label    string
	Text     string
	State    OptionState
	Disabled bool
}

// MultiChoice renders a question's lettered options. Cursor marks the
// option keyboard focus is on.
type MultiChoice struct {
	Options []Option
	Cursor  int
}

// View renders the options, wrapped to width.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	textWidth := max(width-10, 10)

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !opt.Disabled {
			prefix = "▸ "
		}

		text := lipgloss.NewStyle().Width(textWidth).Render(opt.Text)
		line := lipgloss.JoinHorizontal(lipgloss.Top, fmt.Sprintf("%s%s)  ", prefix, opt.Label), text)

		var style lipgloss.Style
		switch opt.State {
		case OptionCorrect:
			style = theme.Correct
		case OptionIncorrect:
			style = theme.Incorrect
		case OptionSelected:
			style = theme.Selected
		default:
			if opt.Disabled {
				style = theme.Disabled
			} else {
				style = theme.Unselected
			}
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
