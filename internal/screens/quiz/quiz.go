// Package quiz is the question screen used for quizzes and reviews.
package quiz

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/i18n"
	"github.com/abhisek/quizmaster/internal/lecture"
	qz "github.com/abhisek/quizmaster/internal/quiz"
	"github.com/abhisek/quizmaster/internal/screen"
	"github.com/abhisek/quizmaster/internal/ui/components"
	"github.com/abhisek/quizmaster/internal/ui/layout"
	"github.com/abhisek/quizmaster/internal/ui/theme"
)

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Choose      key.Binding
	Enter       key.Binding
	Next        key.Binding
	Back        key.Binding
	Favorite    key.Binding
	Language    key.Binding
	Explanation key.Binding
	Exit        key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓/A-D", "Choose")),
	Down:        key.NewBinding(key.WithKeys("down", "j")),
	Choose:      key.NewBinding(key.WithKeys("a", "b", "c", "d", "1", "2", "3", "4")),
	Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "OK")),
	Next:        key.NewBinding(key.WithKeys("right", "n"), key.WithHelp("→", "Next")),
	Back:        key.NewBinding(key.WithKeys("left", "p"), key.WithHelp("←", "Back")),
	Favorite:    key.NewBinding(key.WithKeys("f"), key.WithHelp("F", "Favorite")),
	Language:    key.NewBinding(key.WithKeys("t"), key.WithHelp("T", "Language")),
	Explanation: key.NewBinding(key.WithKeys("e"), key.WithHelp("E", "Explanation")),
	Exit:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Exit")),
}

// QuizScreen draws the controller's current question and turns key presses
// into controller events.
type QuizScreen struct {
	ctrl   *qz.Controller
	cursor int
	errMsg string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen.
func New(ctrl *qz.Controller) *QuizScreen {
	return &QuizScreen{ctrl: ctrl, cursor: -1}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	v, err := s.ctrl.QuestionView()
	if err != nil {
		return ""
	}
	lang := s.ctrl.Language()
	if v.Kind == qz.ReviewGlobalFavorites {
		return i18n.T(lang, "quiz.favorites")
	}
	return i18n.Tf(lang, "quiz.lecture", v.Lecture)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	v, err := s.ctrl.QuestionView()
	if err != nil {
		return layout.HintsFor(keys.Exit)
	}
	enter := keys.Enter
	enter.SetEnabled(v.CanSubmit)
	next := keys.Next
	next.SetEnabled(v.ShowNext)
	back := keys.Back
	back.SetEnabled(v.CanBack)
	up := keys.Up
	up.SetEnabled(!v.ShowNext)
	return layout.HintsFor(up, enter, next, back, keys.Favorite, keys.Explanation, keys.Exit)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	s.errMsg = ""

	switch {
	case key.Matches(kmsg, keys.Exit):
		return s, syncErr(s.ctrl.Exit())

	case key.Matches(kmsg, keys.Up):
		s.moveCursor(-1)
	case key.Matches(kmsg, keys.Down):
		s.moveCursor(1)
	case key.Matches(kmsg, keys.Choose):
		if c, ok := choiceForKey(kmsg.String()); ok {
			s.choose(c)
		}

	case key.Matches(kmsg, keys.Enter):
		v, err := s.ctrl.QuestionView()
		if err != nil {
			return s, screen.Sync("")
		}
		if v.ShowNext {
			return s, s.advance()
		}
		if err := s.ctrl.Submit(); err != nil {
			s.setError(err)
		}

	case key.Matches(kmsg, keys.Next):
		if v, err := s.ctrl.QuestionView(); err == nil && v.ShowNext {
			return s, s.advance()
		}
	case key.Matches(kmsg, keys.Back):
		_ = s.ctrl.Previous()
		s.cursor = -1

	case key.Matches(kmsg, keys.Favorite):
		if _, err := s.ctrl.ToggleFavorite(); err != nil {
			s.setError(err)
		}
	case key.Matches(kmsg, keys.Language):
		s.ctrl.ToggleLanguage()
	case key.Matches(kmsg, keys.Explanation):
		s.ctrl.ToggleExplanationLanguage()
	}
	return s, nil
}

// advance moves to the next question; leaving the sequence hands control
// back to the app.
func (s *QuizScreen) advance() tea.Cmd {
	if err := s.ctrl.Next(); err != nil {
		s.setError(err)
		return nil
	}
	s.cursor = -1
	if _, err := s.ctrl.QuestionView(); err != nil {
		return screen.Sync("")
	}
	switch s.ctrl.State().(type) {
	case qz.Active, qz.Reviewing:
		return nil
	}
	return screen.Sync("")
}

func (s *QuizScreen) moveCursor(delta int) {
	n := len(lecture.Choices)
	switch {
	case s.cursor < 0 && delta < 0:
		s.cursor = n - 1
	case s.cursor < 0:
		s.cursor = 0
	default:
		s.cursor = (s.cursor + delta + n) % n
	}
	s.choose(lecture.Choices[s.cursor])
}

func (s *QuizScreen) choose(c lecture.Choice) {
	if err := s.ctrl.SelectChoice(c); err != nil {
		if !errors.Is(err, qz.ErrInvalidChoice) {
			s.setError(err)
		}
		return
	}
	for i, label := range lecture.Choices {
		if label == c {
			s.cursor = i
		}
	}
}

func (s *QuizScreen) setError(err error) {
	if errors.Is(err, qz.ErrNoSelection) {
		s.errMsg = i18n.T(s.ctrl.Language(), "error.no_selection")
		return
	}
	s.errMsg = err.Error()
}

func choiceForKey(k string) (lecture.Choice, bool) {
	switch k {
	case "a", "1":
		return lecture.ChoiceA, true
	case "b", "2":
		return lecture.ChoiceB, true
	case "c", "3":
		return lecture.ChoiceC, true
	case "d", "4":
		return lecture.ChoiceD, true
	}
	return "", false
}

func (s *QuizScreen) View(width, height int) string {
	v, err := s.ctrl.QuestionView()
	if err != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render(err.Error()))
	}
	lang := v.Language
	cw := components.ContentWidth(width)

	var sections []string

	counter := i18n.Tf(lang, "quiz.counter", v.Index+1, v.Total)
	sections = append(sections, components.NewProgressBar(counter, v.Progress, false, cw).View())

	head := theme.Title.Render(i18n.Tf(lang, "quiz.number", v.Number))
	if v.Kind == qz.ReviewGlobalFavorites {
		head += "  " + theme.Hint.Render(i18n.Tf(lang, "quiz.lecture", v.Lecture))
	}
	if v.Favorite {
		head += "  " + theme.Favorite.Render("★")
	}
	prompt := theme.Body.Width(cw - 4).Render(v.Prompt)
	choices := components.MultiChoice{Options: options(v.Choices), Cursor: s.cursor}.View(cw - 4)
	sections = append(sections, components.Card(head+"\n\n"+prompt+"\n\n"+choices, cw, false))

	if v.Feedback != nil {
		sections = append(sections, renderFeedback(v, cw))
	}
	if s.errMsg != "" {
		sections = append(sections, theme.Notice.Render(s.errMsg))
	}

	nextLabel := i18n.T(lang, "quiz.next")
	if v.IsLast {
		nextLabel = i18n.T(lang, "quiz.finish")
	}
	sections = append(sections, components.ButtonRow(
		components.Button{Label: i18n.T(lang, "quiz.back"), Active: v.CanBack},
		components.Button{Label: i18n.T(lang, "quiz.submit"), Active: v.CanSubmit, Hidden: v.ShowNext},
		components.Button{Label: nextLabel, Active: true, Hidden: !v.ShowNext},
	))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

func options(choices []qz.ChoiceView) []components.Option {
	out := make([]components.Option, 0, len(choices))
	for _, c := range choices {
		opt := components.Option{Label: string(c.Label), Text: c.Text, Disabled: c.Disabled}
		switch c.State {
		case qz.ChoiceSelected:
			opt.State = components.OptionSelected
		case qz.ChoiceCorrect:
			opt.State = components.OptionCorrect
		case qz.ChoiceIncorrect:
			opt.State = components.OptionIncorrect
		}
		out = append(out, opt)
	}
	return out
}

func renderFeedback(v qz.QuestionView, width int) string {
	lang := v.Language
	fb := v.Feedback

	var lines []string
	if fb.Answered {
		if fb.Correct {
			lines = append(lines, theme.Correct.Render(i18n.T(lang, "feedback.correct")))
		} else {
			lines = append(lines, theme.Incorrect.Render(i18n.T(lang, "feedback.incorrect")))
		}
	}
	for _, sec := range fb.Sections {
		var heading string
		var style lipgloss.Style
		switch sec.Kind {
		case qz.SectionCorrect:
			heading, style = i18n.Tf(lang, "explain.correct", sec.Choice), theme.Correct
		case qz.SectionYours:
			heading, style = i18n.Tf(lang, "explain.yours", sec.Choice), theme.Incorrect
		default:
			heading, style = i18n.Tf(lang, "explain.option", sec.Choice), theme.Hint
		}
		lines = append(lines,
			style.Render(heading),
			theme.Body.Width(width-4).Render(sec.Text),
		)
	}
	lines = append(lines, theme.Hint.Render(fmt.Sprintf("%s: %s",
		i18n.T(lang, "quiz.explain"), strings.ToUpper(string(v.ExplanationLanguage)))))
	return components.Card(strings.Join(lines, "\n"), width, false)
}

func syncErr(err error) tea.Cmd {
	if err != nil {
		return screen.Sync(err.Error())
	}
	return screen.Sync("")
}
