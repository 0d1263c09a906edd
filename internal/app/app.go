// Package app is the root Bubble Tea model.
package app

import (
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/i18n"
	"github.com/abhisek/quizmaster/internal/quiz"
	"github.com/abhisek/quizmaster/internal/router"
	"github.com/abhisek/quizmaster/internal/screen"
	"github.com/abhisek/quizmaster/internal/screens/dashboard"
	"github.com/abhisek/quizmaster/internal/screens/failure"
	"github.com/abhisek/quizmaster/internal/screens/landing"
	quizscreen "github.com/abhisek/quizmaster/internal/screens/quiz"
	"github.com/abhisek/quizmaster/internal/screens/welcome"
	"github.com/abhisek/quizmaster/internal/ui/layout"
)

// AppModel is the root Bubble Tea model. The bottom screen always mirrors
// the controller's state; prompts stack above it.
type AppModel struct {
	ctrl   *quiz.Controller
	router *router.Router
	width  int
	height int
}

// newAppModel starts on the welcome splash, which hands over to the screen
// for the controller's state.
func newAppModel(ctrl *quiz.Controller) AppModel {
	splash := welcome.New(ctrl.Language(), ctrl.Catalog().Len(), func() screen.Screen {
		return screenFor(ctrl, "")
	})
	return AppModel{ctrl: ctrl, router: router.New(splash)}
}

func newFailureModel(err error) AppModel {
	return AppModel{router: router.New(failure.New(err))}
}

// screenFor returns the screen that draws the controller's current state.
func screenFor(ctrl *quiz.Controller, notice string) screen.Screen {
	switch ctrl.State().(type) {
	case quiz.Active, quiz.Reviewing:
		return quizscreen.New(ctrl)
	case quiz.Dashboard:
		return dashboard.New(ctrl, notice)
	default:
		return landing.New(ctrl, notice)
	}
}

func (m AppModel) Init() tea.Cmd {
	if s := m.router.Active(); s != nil {
		return s.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.SyncMsg:
		if m.ctrl == nil {
			return m, nil
		}
		return m, m.router.Reset(screenFor(m.ctrl, msg.Notice))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status is the right side of the header: language and favorite count.
func (m AppModel) status() string {
	if m.ctrl == nil {
		return ""
	}
	return fmt.Sprintf("%s  ★ %d",
		strings.ToUpper(string(m.ctrl.Language())), len(m.ctrl.Session().Favorites()))
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(i18n.T(i18n.Default, "app.title"), title, m.status(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program over ctrl.
func Run(ctrl *quiz.Controller) error {
	return run(newAppModel(ctrl))
}

// RunFailure shows err full screen until the user quits.
func RunFailure(err error) error {
	return run(newFailureModel(err))
}

func run(m AppModel) error {
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
