// Package prompt is a modal question with a short list of answers, pushed
// above the current screen.
package prompt

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/router"
	"github.com/abhisek/quizmaster/internal/screen"
	"github.com/abhisek/quizmaster/internal/ui/components"
	"github.com/abhisek/quizmaster/internal/ui/layout"
	"github.com/abhisek/quizmaster/internal/ui/theme"
)

// Option is one answer. A nil Run just closes the prompt.
type Option struct {
	Label string
	Run   func() tea.Cmd
}

// PromptScreen shows a title, a message and the options as a menu.
type PromptScreen struct {
	title   string
	message string
	menu    components.Menu
}

var _ screen.Screen = (*PromptScreen)(nil)
var _ screen.KeyHintProvider = (*PromptScreen)(nil)

// New creates a PromptScreen.
func New(title, message string, options ...Option) *PromptScreen {
	items := make([]components.MenuItem, 0, len(options))
	for _, opt := range options {
		run := opt.Run
		items = append(items, components.MenuItem{
			Label: opt.Label,
			Action: func() tea.Cmd {
				if run == nil {
					return Close()
				}
				return run()
			},
		})
	}
	return &PromptScreen{title: title, message: message, menu: components.NewMenu(items)}
}

// Close returns a command that dismisses the top prompt.
func Close() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}

// Open returns a command that pushes p.
func Open(p *PromptScreen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: p} }
}

func (p *PromptScreen) Init() tea.Cmd {
	return nil
}

func (p *PromptScreen) Title() string {
	return p.title
}

func (p *PromptScreen) KeyHints() []layout.KeyHint {
	return append(layout.HintsFor(p.menu.Keys.Up, p.menu.Keys.Select),
		layout.KeyHint{Key: "Esc", Description: "Cancel"})
}

func (p *PromptScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PromptScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(p.title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(min(width-14, 60)).Render(p.message))
	b.WriteString("\n\n")
	b.WriteString(p.menu.View())
	return components.Modal(b.String(), width, height)
}
