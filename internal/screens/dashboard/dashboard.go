// Package dashboard shows a lecture's results and the review actions.
package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/quizmaster/internal/i18n"
	"github.com/abhisek/quizmaster/internal/quiz"
	"github.com/abhisek/quizmaster/internal/results"
	"github.com/abhisek/quizmaster/internal/screen"
	"github.com/abhisek/quizmaster/internal/screens/prompt"
	"github.com/abhisek/quizmaster/internal/ui/components"
	"github.com/abhisek/quizmaster/internal/ui/layout"
	"github.com/abhisek/quizmaster/internal/ui/theme"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	View      key.Binding
	Errors    key.Binding
	Favorites key.Binding
	Retake    key.Binding
	Home      key.Binding
	Language  key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Rows")),
	Down:      key.NewBinding(key.WithKeys("down", "j")),
	View:      key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("Enter", "View")),
	Errors:    key.NewBinding(key.WithKeys("r"), key.WithHelp("R", "Errors")),
	Favorites: key.NewBinding(key.WithKeys("f"), key.WithHelp("F", "Favorites")),
	Retake:    key.NewBinding(key.WithKeys("a"), key.WithHelp("A", "Retake")),
	Home:      key.NewBinding(key.WithKeys("h", "esc"), key.WithHelp("H", "Home")),
	Language:  key.NewBinding(key.WithKeys("t"), key.WithHelp("T", "Language")),
}

// DashboardScreen renders the results of the controller's dashboard lecture.
type DashboardScreen struct {
	ctrl   *quiz.Controller
	row    int
	notice string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen. notice is shown under the stats when set.
func New(ctrl *quiz.Controller, notice string) *DashboardScreen {
	return &DashboardScreen{ctrl: ctrl, notice: notice}
}

func (d *DashboardScreen) results() (results.Results, bool) {
	s, ok := d.ctrl.State().(quiz.Dashboard)
	if !ok {
		return results.Results{}, false
	}
	return s.Results, true
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	res, _ := d.results()
	return fmt.Sprintf("%s · %s", i18n.T(d.ctrl.Language(), "dashboard.title"),
		i18n.Tf(d.ctrl.Language(), "quiz.lecture", res.Lecture))
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	res, _ := d.results()
	up, view := keys.Up, keys.View
	up.SetEnabled(len(res.Rows()) > 1)
	view.SetEnabled(len(res.Rows()) > 0)
	return layout.HintsFor(up, view, keys.Errors, keys.Favorites, keys.Retake, keys.Home)
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	res, ok := d.results()
	if !ok {
		return d, screen.Sync("")
	}
	rows := res.Rows()
	d.notice = ""

	switch {
	case key.Matches(kmsg, keys.Up):
		if d.row > 0 {
			d.row--
		}
	case key.Matches(kmsg, keys.Down):
		if d.row < len(rows)-1 {
			d.row++
		}
	case key.Matches(kmsg, keys.View):
		if d.row < len(rows) {
			return d, syncErr(d.ctrl.ViewAnswer(rows[d.row].Question.Number))
		}
	case key.Matches(kmsg, keys.Errors):
		return d, d.openReview(quiz.ReviewErrors, "review.errors_title", "review.errors_message", "empty.errors")
	case key.Matches(kmsg, keys.Favorites):
		return d, d.openReview(quiz.ReviewFavorites, "review.favorites_title", "review.favorites_message", "empty.favorites")
	case key.Matches(kmsg, keys.Retake):
		return d, d.confirmRetake()
	case key.Matches(kmsg, keys.Home):
		return d, syncErr(d.ctrl.Exit())
	case key.Matches(kmsg, keys.Language):
		d.ctrl.ToggleLanguage()
	}
	return d, nil
}

func (d *DashboardScreen) openReview(kind quiz.ReviewKind, title, message, empty string) tea.Cmd {
	lang := d.ctrl.Language()
	start := func(viewOnly bool) func() tea.Cmd {
		return func() tea.Cmd {
			err := d.ctrl.StartReview(kind, viewOnly)
			if errors.Is(err, quiz.ErrEmptyReviewSet) {
				return screen.Sync(i18n.T(lang, empty))
			}
			return syncErr(err)
		}
	}
	return prompt.Open(prompt.New(
		i18n.T(lang, title),
		i18n.T(lang, message),
		prompt.Option{Label: i18n.T(lang, "review.retry"), Run: start(false)},
		prompt.Option{Label: i18n.T(lang, "review.view"), Run: start(true)},
		prompt.Option{Label: i18n.T(lang, "review.cancel")},
	))
}

func (d *DashboardScreen) confirmRetake() tea.Cmd {
	lang := d.ctrl.Language()
	return prompt.Open(prompt.New(
		i18n.T(lang, "action.retake_all"),
		i18n.T(lang, "confirm.retake"),
		prompt.Option{Label: i18n.T(lang, "confirm.no")},
		prompt.Option{Label: i18n.T(lang, "confirm.yes"), Run: func() tea.Cmd {
			return syncErr(d.ctrl.RetakeAll())
		}},
	))
}

func syncErr(err error) tea.Cmd {
	if err != nil {
		return screen.Sync(err.Error())
	}
	return screen.Sync("")
}

func (d *DashboardScreen) View(width, height int) string {
	res, ok := d.results()
	if !ok {
		return ""
	}
	lang := d.ctrl.Language()
	cw := components.ContentWidth(width)
	statW := cw/4 - 1

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		components.StatCard(fmt.Sprint(res.Correct), i18n.T(lang, "dashboard.correct"), theme.Correct, statW),
		components.StatCard(fmt.Sprint(res.Incorrect), i18n.T(lang, "dashboard.incorrect"), theme.Incorrect, statW),
		components.StatCard(fmt.Sprintf("%d%%", res.Percentage), i18n.T(lang, "dashboard.score"), theme.Selected, statW),
		components.StatCard(fmt.Sprint(res.FavoriteCount), i18n.T(lang, "dashboard.favorites"), theme.Favorite, statW),
	)

	sections := []string{
		theme.Title.Width(cw).Render(i18n.T(lang, "dashboard.title")),
		stats,
	}
	if d.notice != "" {
		sections = append(sections, theme.Notice.Width(cw).Align(lipgloss.Center).Render(d.notice))
	}
	sections = append(sections,
		theme.Subtitle.Width(cw).Render(i18n.T(lang, "dashboard.section")),
		layout.Divider(width, cw),
		d.renderTable(res, cw),
	)

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

func (d *DashboardScreen) renderTable(res results.Results, width int) string {
	lang := d.ctrl.Language()
	rows := res.Rows()

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		status := i18n.T(lang, "status.correct")
		if !r.Correct {
			status = i18n.T(lang, "status.incorrect")
		}
		data = append(data, []string{
			fmt.Sprint(r.Question.Number),
			fmt.Sprint(r.Lecture),
			string(r.UserChoice),
			string(r.Question.Correct),
			status,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Width(width).
		Headers(
			i18n.T(lang, "th.qnum"),
			i18n.T(lang, "th.lecture"),
			i18n.T(lang, "th.your_answer"),
			i18n.T(lang, "th.correct"),
			i18n.T(lang, "th.status"),
		).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Foreground(theme.Primary).Bold(true)
			case row == d.row:
				return base.Foreground(theme.Text).Background(theme.BgCard).Bold(true)
			case col == 4 && rows[row].Correct:
				return base.Foreground(theme.Success)
			case col == 4:
				return base.Foreground(theme.Error)
			}
			return base.Foreground(theme.Text)
		})
	return t.Render()
}
