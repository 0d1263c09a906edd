// Package landing is the lecture picker.
package landing

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/i18n"
	"github.com/abhisek/quizmaster/internal/quiz"
	"github.com/abhisek/quizmaster/internal/screen"
	"github.com/abhisek/quizmaster/internal/screens/prompt"
	"github.com/abhisek/quizmaster/internal/ui/components"
	"github.com/abhisek/quizmaster/internal/ui/layout"
	"github.com/abhisek/quizmaster/internal/ui/theme"
)

type keyMap struct {
	Language key.Binding
	Reset    key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Language: key.NewBinding(key.WithKeys("t"), key.WithHelp("T", "Language")),
	Reset:    key.NewBinding(key.WithKeys("R"), key.WithHelp("Shift+R", "Reset")),
	Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("Q", "Quit")),
}

// LandingScreen lists the lectures with their progress and the global
// favorites review.
type LandingScreen struct {
	ctrl   *quiz.Controller
	menu   components.Menu
	notice string
}

var _ screen.Screen = (*LandingScreen)(nil)
var _ screen.KeyHintProvider = (*LandingScreen)(nil)

// New creates a LandingScreen. notice is shown above the list when set.
func New(ctrl *quiz.Controller, notice string) *LandingScreen {
	l := &LandingScreen{ctrl: ctrl, notice: notice}
	l.menu = components.NewMenu(l.items())
	return l
}

func (l *LandingScreen) items() []components.MenuItem {
	lang := l.ctrl.Language()
	state := l.ctrl.Session()

	var items []components.MenuItem
	for _, lec := range l.ctrl.Catalog().Lectures() {
		id := lec.ID
		detail := i18n.Tf(lang, "landing.count", lec.Len())
		if p, ok := state.Progress(id); ok {
			if p.CompletedQuestions >= lec.Len() {
				detail += " · " + i18n.T(lang, "landing.done")
			} else {
				detail += " · " + i18n.Tf(lang, "landing.progress", p.CompletedQuestions, lec.Len())
			}
		}
		items = append(items, components.MenuItem{
			Label:  i18n.Tf(lang, "landing.card", id),
			Detail: detail,
			Action: func() tea.Cmd { return l.selectLecture(id) },
		})
	}

	items = append(items, components.MenuItem{
		Label:  "★ " + i18n.T(lang, "landing.global"),
		Detail: fmt.Sprintf("(%d)", len(state.Favorites())),
		Action: l.openGlobalFavorites,
	})
	return items
}

func (l *LandingScreen) selectLecture(id int) tea.Cmd {
	sel, err := l.ctrl.SelectLecture(id)
	if err != nil {
		return screen.Sync(err.Error())
	}
	if sel != quiz.SelectionNeedsResume {
		return screen.Sync("")
	}

	lang := l.ctrl.Language()
	return prompt.Open(prompt.New(
		i18n.T(lang, "resume.title"),
		i18n.T(lang, "resume.message"),
		prompt.Option{Label: i18n.T(lang, "resume.continue"), Run: func() tea.Cmd {
			return syncErr(l.ctrl.Resume(id))
		}},
		prompt.Option{Label: i18n.T(lang, "resume.restart"), Run: func() tea.Cmd {
			return syncErr(l.ctrl.Restart(id))
		}},
		prompt.Option{Label: i18n.T(lang, "review.cancel")},
	))
}

func (l *LandingScreen) openGlobalFavorites() tea.Cmd {
	lang := l.ctrl.Language()
	start := func(viewOnly bool) func() tea.Cmd {
		return func() tea.Cmd {
			err := l.ctrl.StartGlobalFavorites(viewOnly)
			if errors.Is(err, quiz.ErrEmptyReviewSet) {
				return screen.Sync(i18n.T(lang, "empty.global"))
			}
			return syncErr(err)
		}
	}
	return prompt.Open(prompt.New(
		i18n.T(lang, "review.global_title"),
		i18n.T(lang, "review.global_message"),
		prompt.Option{Label: i18n.T(lang, "review.retry"), Run: start(false)},
		prompt.Option{Label: i18n.T(lang, "review.view"), Run: start(true)},
		prompt.Option{Label: i18n.T(lang, "review.cancel")},
	))
}

func (l *LandingScreen) confirmReset() tea.Cmd {
	lang := l.ctrl.Language()
	return prompt.Open(prompt.New(
		i18n.T(lang, "action.reset"),
		i18n.T(lang, "confirm.reset"),
		prompt.Option{Label: i18n.T(lang, "confirm.no")},
		prompt.Option{Label: i18n.T(lang, "confirm.yes"), Run: func() tea.Cmd {
			l.ctrl.ResetSession()
			return screen.Sync("")
		}},
	))
}

func syncErr(err error) tea.Cmd {
	if err != nil {
		return screen.Sync(err.Error())
	}
	return screen.Sync("")
}

func (l *LandingScreen) Init() tea.Cmd {
	return nil
}

func (l *LandingScreen) Title() string {
	return i18n.T(l.ctrl.Language(), "landing.title")
}

func (l *LandingScreen) KeyHints() []layout.KeyHint {
	return append(layout.HintsFor(l.menu.Keys.Up, l.menu.Keys.Select),
		layout.HintsFor(keys.Language, keys.Reset, keys.Quit)...)
}

func (l *LandingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(kmsg, keys.Language):
			l.ctrl.ToggleLanguage()
			selected := l.menu.Selected
			l.menu = components.NewMenu(l.items())
			l.menu.Selected = selected
			return l, nil
		case key.Matches(kmsg, keys.Reset):
			return l, l.confirmReset()
		case key.Matches(kmsg, keys.Quit):
			return l, tea.Quit
		}
	}

	var cmd tea.Cmd
	l.menu, cmd = l.menu.Update(msg)
	return l, cmd
}

func (l *LandingScreen) View(width, height int) string {
	lang := l.ctrl.Language()
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections,
		theme.Title.Width(cw).Render(i18n.T(lang, "landing.title")),
		theme.Subtitle.Width(cw).Render(i18n.T(lang, "landing.subtitle")),
	)
	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		sections = append(sections, theme.Subtitle.Width(cw).Render(i18n.T(lang, "landing.topic")))
	}
	if l.notice != "" {
		sections = append(sections, theme.Notice.Width(cw).Align(lipgloss.Center).Render(l.notice))
	}
	sections = append(sections, components.Card(l.menu.View(), cw, false))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
