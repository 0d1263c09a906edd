// Package quiz implements the quiz and review state machine.
package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/quizmaster/internal/i18n"
	"github.com/abhisek/quizmaster/internal/lecture"
	"github.com/abhisek/quizmaster/internal/results"
	"github.com/abhisek/quizmaster/internal/session"
	"github.com/abhisek/quizmaster/internal/store"
)

var (
	// ErrNoSelection is returned by Submit when no choice is selected.
	ErrNoSelection = errors.New("no choice selected")
	// ErrEmptyReviewSet is returned when a review filter matches nothing.
	ErrEmptyReviewSet = errors.New("no questions to review")
	// ErrUnknownLecture is returned for a lecture id missing from the catalog.
	ErrUnknownLecture = errors.New("unknown lecture")
	// ErrNoCurrentQuestion is returned when no question is on screen.
	ErrNoCurrentQuestion = errors.New("no current question")
	// ErrInvalidChoice is returned for a label outside A-D or a locked question.
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrInvalidTransition is returned when an event is not accepted in the
	// current state.
	ErrInvalidTransition = errors.New("invalid transition")
)

// Selection is the outcome of picking a lecture on the landing screen.
type Selection int

const (
	// SelectionStarted means a fresh quiz began.
	SelectionStarted Selection = iota
	// SelectionNeedsResume means progress exists and the caller must choose
	// Resume or Restart. The state is unchanged.
	SelectionNeedsResume
	// SelectionDashboard means the lecture is complete and its results are shown.
	SelectionDashboard
)

// AnswerLog receives every submitted answer.
type AnswerLog interface {
	AppendAnswer(ctx context.Context, data store.AnswerEventData) error
	Clear(ctx context.Context) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithAnswerLog records submitted answers to log.
func WithAnswerLog(log AnswerLog) Option {
	return func(c *Controller) { c.answers = log }
}

// WithClock overrides the time source used for answer timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller owns the session state and applies quiz events to it. It is not
// safe for concurrent use; the UI loop is its only caller.
type Controller struct {
	catalog *lecture.Catalog
	state   *session.SessionState
	store   *session.Store
	answers AnswerLog
	logger  *zap.Logger
	now     func() time.Time

	runID       string
	current     State
	explainLang i18n.Lang
}

// New creates a Controller in the Browsing state.
func New(catalog *lecture.Catalog, sessions *session.Store, state *session.SessionState, opts ...Option) *Controller {
	c := &Controller{
		catalog:     catalog,
		state:       state,
		store:       sessions,
		now:         time.Now,
		runID:       uuid.New().String(),
		current:     Browsing{},
		explainLang: i18n.EN,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.current }

// Session returns the session state. Callers must not mutate it.
func (c *Controller) Session() *session.SessionState { return c.state }

// Catalog returns the lecture catalog.
func (c *Controller) Catalog() *lecture.Catalog { return c.catalog }

// Language returns the UI language.
func (c *Controller) Language() i18n.Lang { return c.state.Language }

// ExplanationLanguage returns the language explanations are shown in.
func (c *Controller) ExplanationLanguage() i18n.Lang { return c.explainLang }

// RunID identifies this process in the answer log.
func (c *Controller) RunID() string { return c.runID }

func (c *Controller) persist() {
	if c.store != nil {
		c.store.Save(context.Background(), c.state)
	}
}

func (c *Controller) lecture(id int) (lecture.Lecture, error) {
	lec, ok := c.catalog.Get(id)
	if !ok {
		return lecture.Lecture{}, ErrUnknownLecture
	}
	return lec, nil
}

// SelectLecture handles a lecture pick from the landing screen.
func (c *Controller) SelectLecture(id int) (Selection, error) {
	if _, ok := c.current.(Browsing); !ok {
		return 0, ErrInvalidTransition
	}
	lec, err := c.lecture(id)
	if err != nil {
		return 0, err
	}

	p, ok := c.state.Progress(id)
	switch {
	case !ok:
		c.startFresh(lec)
		return SelectionStarted, nil
	case p.CompletedQuestions < lec.Len():
		return SelectionNeedsResume, nil
	default:
		c.showDashboard(lec)
		return SelectionDashboard, nil
	}
}

// Resume continues an incomplete lecture at its first unanswered position.
func (c *Controller) Resume(id int) error {
	if _, ok := c.current.(Browsing); !ok {
		return ErrInvalidTransition
	}
	lec, err := c.lecture(id)
	if err != nil {
		return err
	}
	index := max(lec.Len()-1, 0)
	for i, q := range lec.Questions {
		if _, answered := c.state.Answer(session.QuestionKey{Lecture: id, Question: q.Number}); !answered {
			index = i
			break
		}
	}
	c.current = Active{Lecture: id, Index: index}
	return nil
}

// Restart discards a lecture's answers and starts it from the beginning.
func (c *Controller) Restart(id int) error {
	if _, ok := c.current.(Browsing); !ok {
		return ErrInvalidTransition
	}
	lec, err := c.lecture(id)
	if err != nil {
		return err
	}
	c.startFresh(lec)
	return nil
}

func (c *Controller) startFresh(lec lecture.Lecture) {
	if c.state.ClearLecture(lec.ID) > 0 {
		c.logger.Debug("cleared stale answers", zap.Int("lecture", lec.ID))
	}
	c.state.RecomputeProgress(lec.ID, lec.Len())
	c.current = Active{Lecture: lec.ID}
	c.persist()
}

func (c *Controller) showDashboard(lec lecture.Lecture) {
	c.current = Dashboard{Lecture: lec.ID, Results: results.Compute(lec, c.state)}
}

func (c *Controller) currentItem() (ReviewItem, bool) {
	switch s := c.current.(type) {
	case Active:
		lec, ok := c.catalog.Get(s.Lecture)
		if !ok || s.Index < 0 || s.Index >= lec.Len() {
			return ReviewItem{}, false
		}
		return ReviewItem{Lecture: s.Lecture, Question: lec.Questions[s.Index]}, true
	case Reviewing:
		if s.Index < 0 || s.Index >= len(s.Items) {
			return ReviewItem{}, false
		}
		return s.Items[s.Index], true
	}
	return ReviewItem{}, false
}

// SelectChoice marks c as the pending answer.
func (c *Controller) SelectChoice(choice lecture.Choice) error {
	if _, ok := lecture.ParseChoice(string(choice)); !ok {
		return ErrInvalidChoice
	}
	switch s := c.current.(type) {
	case Active:
		if s.Submitted {
			return ErrInvalidChoice
		}
		s.Selection = choice
		c.current = s
	case Reviewing:
		if s.Submitted || s.ViewOnly {
			return ErrInvalidChoice
		}
		s.Selection = choice
		c.current = s
	default:
		return ErrNoCurrentQuestion
	}
	return nil
}

// Submit records the selected answer for the current question. Submitting
// an already submitted question does nothing.
func (c *Controller) Submit() error {
	item, ok := c.currentItem()
	if !ok {
		return ErrNoCurrentQuestion
	}

	var (
		selection lecture.Choice
		mode      string
		primary   bool
	)
	switch s := c.current.(type) {
	case Active:
		if s.Submitted {
			return nil
		}
		if s.Selection == "" {
			return ErrNoSelection
		}
		selection, mode, primary = s.Selection, "quiz", true
		s.Submitted = true
		c.current = s
	case Reviewing:
		if s.Submitted || s.ViewOnly {
			return nil
		}
		if s.Selection == "" {
			return ErrNoSelection
		}
		selection, mode = s.Selection, string(s.Kind)
		s.Submitted = true
		c.current = s
	}

	now := c.now()
	rec := c.state.RecordAnswer(item.Key(), item.Question, selection, now)
	// review retries never advance lecture progress
	if lec, ok := c.catalog.Get(item.Lecture); ok && primary {
		c.state.RecomputeProgress(lec.ID, lec.Len())
	}
	c.persist()

	if c.answers != nil {
		err := c.answers.AppendAnswer(context.Background(), store.AnswerEventData{
			RunID:     c.runID,
			Lecture:   item.Lecture,
			Question:  item.Question.Number,
			Choice:    string(selection),
			Correct:   rec.Correct,
			Mode:      mode,
			Timestamp: now,
		})
		if err != nil {
			c.logger.Warn("failed to log answer", zap.Error(err), zap.String("key", item.Key().String()))
		}
	}
	return nil
}

// Next moves forward, or leaves the flow after the last question.
func (c *Controller) Next() error {
	switch s := c.current.(type) {
	case Active:
		if !s.Submitted {
			return ErrInvalidTransition
		}
		lec, err := c.lecture(s.Lecture)
		if err != nil {
			return err
		}
		if s.Index >= lec.Len()-1 {
			c.showDashboard(lec)
			return nil
		}
		c.current = Active{Lecture: s.Lecture, Index: s.Index + 1}
	case Reviewing:
		if !s.Submitted {
			return ErrInvalidTransition
		}
		if s.Index >= len(s.Items)-1 {
			return c.leaveReview(s)
		}
		c.current = s.moveTo(s.Index + 1)
	default:
		return ErrNoCurrentQuestion
	}
	return nil
}

// Previous moves back one question. At the first question it does nothing.
func (c *Controller) Previous() error {
	switch s := c.current.(type) {
	case Active:
		if s.Index > 0 {
			c.current = Active{Lecture: s.Lecture, Index: s.Index - 1}
		}
	case Reviewing:
		if s.Index > 0 {
			c.current = s.moveTo(s.Index - 1)
		}
	default:
		return ErrNoCurrentQuestion
	}
	return nil
}

func (s Reviewing) moveTo(index int) Reviewing {
	s.Index = index
	s.Submitted = s.ViewOnly
	s.Selection = ""
	return s
}

func (c *Controller) leaveReview(s Reviewing) error {
	if s.Origin == OriginLanding {
		c.current = Browsing{}
		return nil
	}
	lec, err := c.lecture(s.ReturnLecture)
	if err != nil {
		c.current = Browsing{}
		return err
	}
	c.showDashboard(lec)
	return nil
}

// StartReview begins a review of the dashboard lecture's wrong answers or
// favorites. An empty set leaves the state unchanged.
func (c *Controller) StartReview(kind ReviewKind, viewOnly bool) error {
	d, ok := c.current.(Dashboard)
	if !ok {
		return ErrInvalidTransition
	}
	lec, err := c.lecture(d.Lecture)
	if err != nil {
		return err
	}

	var items []ReviewItem
	for _, q := range lec.Questions {
		k := session.QuestionKey{Lecture: lec.ID, Question: q.Number}
		var match bool
		switch kind {
		case ReviewErrors:
			rec, answered := c.state.Answer(k)
			match = answered && !rec.Correct
		case ReviewFavorites:
			match = c.state.IsFavorite(k)
		default:
			return ErrInvalidTransition
		}
		if match {
			items = append(items, ReviewItem{Lecture: lec.ID, Question: q})
		}
	}
	if len(items) == 0 {
		return ErrEmptyReviewSet
	}

	c.current = Reviewing{
		Kind:          kind,
		Items:         items,
		ViewOnly:      viewOnly,
		Submitted:     viewOnly,
		Origin:        OriginDashboard,
		ReturnLecture: lec.ID,
	}
	return nil
}

// StartGlobalFavorites begins a review of every favorited question across
// all lectures, ordered by lecture then question. Exiting returns to the
// landing screen.
func (c *Controller) StartGlobalFavorites(viewOnly bool) error {
	var items []ReviewItem
	for _, lec := range c.catalog.Lectures() {
		for _, q := range lec.Questions {
			if c.state.IsFavorite(session.QuestionKey{Lecture: lec.ID, Question: q.Number}) {
				items = append(items, ReviewItem{Lecture: lec.ID, Question: q})
			}
		}
	}
	if len(items) == 0 {
		return ErrEmptyReviewSet
	}

	c.current = Reviewing{
		Kind:      ReviewGlobalFavorites,
		Items:     items,
		ViewOnly:  viewOnly,
		Submitted: viewOnly,
		Origin:    OriginLanding,
	}
	return nil
}

// ViewAnswer replays the dashboard lecture in view-only mode starting at
// the given question.
func (c *Controller) ViewAnswer(questionNumber int) error {
	d, ok := c.current.(Dashboard)
	if !ok {
		return ErrInvalidTransition
	}
	lec, err := c.lecture(d.Lecture)
	if err != nil {
		return err
	}
	index := lec.IndexOf(questionNumber)
	if index < 0 {
		return ErrNoCurrentQuestion
	}

	items := make([]ReviewItem, 0, lec.Len())
	for _, q := range lec.Questions {
		items = append(items, ReviewItem{Lecture: lec.ID, Question: q})
	}
	c.current = Reviewing{
		Kind:          ReviewAnswers,
		Items:         items,
		Index:         index,
		ViewOnly:      true,
		Submitted:     true,
		Origin:        OriginDashboard,
		ReturnLecture: lec.ID,
	}
	return nil
}

// RetakeAll clears the dashboard lecture's answers and restarts it. The
// caller is responsible for confirming with the user.
func (c *Controller) RetakeAll() error {
	d, ok := c.current.(Dashboard)
	if !ok {
		return ErrInvalidTransition
	}
	lec, err := c.lecture(d.Lecture)
	if err != nil {
		return err
	}
	c.startFresh(lec)
	return nil
}

// ToggleFavorite flips the favorite flag of the current question and
// returns the new value.
func (c *Controller) ToggleFavorite() (bool, error) {
	item, ok := c.currentItem()
	if !ok {
		return false, ErrNoCurrentQuestion
	}
	on := c.state.ToggleFavorite(item.Key())
	c.persist()
	return on, nil
}

// Exit leaves the current screen. A review returns to where it was
// entered from; a quiz or dashboard returns to the landing screen.
func (c *Controller) Exit() error {
	switch s := c.current.(type) {
	case Reviewing:
		return c.leaveReview(s)
	case Active, Dashboard:
		c.current = Browsing{}
	}
	return nil
}

// ResetSession wipes every answer, favorite and progress entry along with
// the answer log. The caller is responsible for confirming with the user.
func (c *Controller) ResetSession() {
	if c.store != nil {
		c.store.Reset(context.Background(), c.state)
	} else {
		c.state.Clear()
	}
	if c.answers != nil {
		if err := c.answers.Clear(context.Background()); err != nil {
			c.logger.Warn("failed to clear answer log", zap.Error(err))
		}
	}
	c.current = Browsing{}
	c.logger.Info("session reset")
}

// ToggleLanguage switches the UI language and persists it.
func (c *Controller) ToggleLanguage() i18n.Lang {
	c.state.Language = c.state.Language.Toggle()
	c.persist()
	return c.state.Language
}

// ToggleExplanationLanguage switches the explanation language. It is not
// persisted.
func (c *Controller) ToggleExplanationLanguage() i18n.Lang {
	c.explainLang = c.explainLang.Toggle()
	return c.explainLang
}
