// Package failure is shown instead of the lecture list when startup fails.
package failure

import (
	"errors"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/i18n"
	"github.com/abhisek/quizmaster/internal/lecture"
	"github.com/abhisek/quizmaster/internal/screen"
	"github.com/abhisek/quizmaster/internal/ui/layout"
	"github.com/abhisek/quizmaster/internal/ui/theme"
)

var quitKey = key.NewBinding(key.WithKeys("q", "enter", "esc"), key.WithHelp("Q", "Quit"))

// FailureScreen reports a fatal error and waits for the user to quit.
type FailureScreen struct {
	err error
}

var _ screen.Screen = (*FailureScreen)(nil)
var _ screen.KeyHintProvider = (*FailureScreen)(nil)

// New creates a FailureScreen for err.
func New(err error) *FailureScreen {
	return &FailureScreen{err: err}
}

func (f *FailureScreen) Init() tea.Cmd {
	return nil
}

func (f *FailureScreen) Title() string {
	return "Error"
}

func (f *FailureScreen) KeyHints() []layout.KeyHint {
	return layout.HintsFor(quitKey)
}

func (f *FailureScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && key.Matches(kmsg, quitKey) {
		return f, tea.Quit
	}
	return f, nil
}

func (f *FailureScreen) View(width, height int) string {
	headline := f.err.Error()
	detail := ""
	if errors.Is(f.err, lecture.ErrEmptyCatalog) {
		headline = i18n.T(i18n.Default, "error.catalog")
		detail = i18n.T(i18n.Default, "error.catalog_hint")
	}

	body := theme.Incorrect.Render("✗ "+headline) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Width(min(width-8, 60)).Render(detail)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}
