package quiz

import (
	"github.com/abhisek/quizmaster/internal/lecture"
	"github.com/abhisek/quizmaster/internal/results"
	"github.com/abhisek/quizmaster/internal/session"
)

// Origin records where a review flow was entered from.
type Origin int

const (
	OriginLanding Origin = iota
	OriginDashboard
)

func (o Origin) String() string {
	if o == OriginLanding {
		return "landing"
	}
	return "dashboard"
}

// ReviewKind names the question filter behind a review.
type ReviewKind string

const (
	ReviewErrors          ReviewKind = "errors"
	ReviewFavorites       ReviewKind = "favorites"
	ReviewGlobalFavorites ReviewKind = "global-favorites"
	// ReviewAnswers replays a whole lecture from the results table.
	ReviewAnswers ReviewKind = "answers"
)

// ReviewItem is a question together with the lecture it belongs to.
type ReviewItem struct {
	Lecture  int
	Question lecture.Question
}

// Key returns the session key the item's answer is stored under.
func (i ReviewItem) Key() session.QuestionKey {
	return session.QuestionKey{Lecture: i.Lecture, Question: i.Question.Number}
}

// State is one of Browsing, Active, Reviewing or Dashboard.
type State interface {
	state()
}

// Browsing is the lecture picker.
type Browsing struct{}

// Active is a lecture being answered in order.
type Active struct {
	Lecture   int
	Index     int
	Submitted bool
	Selection lecture.Choice
}

// Reviewing walks a review set. In view-only mode stored answers are
// replayed and no selection is accepted.
type Reviewing struct {
	Kind      ReviewKind
	Items     []ReviewItem
	Index     int
	ViewOnly  bool
	Submitted bool
	Selection lecture.Choice
	Origin    Origin

	// ReturnLecture is the dashboard lecture for OriginDashboard.
	ReturnLecture int
}

// Dashboard shows the results of a lecture.
type Dashboard struct {
	Lecture int
	Results results.Results
}

func (Browsing) state()  {}
func (Active) state()    {}
func (Reviewing) state() {}
func (Dashboard) state() {}
