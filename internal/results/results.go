// Package results derives the dashboard summary of a lecture from the
// learner's session.
package results

import (
	"math"

	"github.com/abhisek/quizmaster/internal/lecture"
	"github.com/abhisek/quizmaster/internal/session"
)

// Row is one answered question in a results table.
type Row struct {
	Lecture    int
	Question   lecture.Question
	UserChoice lecture.Choice
	Correct    bool
}

// Key returns the session key of the row.
func (r Row) Key() session.QuestionKey {
	return session.QuestionKey{Lecture: r.Lecture, Question: r.Question.Number}
}

// Results summarizes a learner's answers to one lecture.
type Results struct {
	Lecture       int
	Correct       int
	Incorrect     int
	Total         int
	Percentage    int
	FavoriteCount int

	// WrongAnswers follows the order answers were first recorded.
	WrongAnswers []Row
	// CorrectAnswers follows lecture order.
	CorrectAnswers []Row
}

// Answered returns the number of answered questions.
func (r Results) Answered() int {
	return r.Correct + r.Incorrect
}

// Rows returns the table rows: wrong answers first, then correct ones.
func (r Results) Rows() []Row {
	out := make([]Row, 0, len(r.WrongAnswers)+len(r.CorrectAnswers))
	out = append(out, r.WrongAnswers...)
	return append(out, r.CorrectAnswers...)
}

// Compute builds the Results of lec from state. Answers whose question no
// longer exists in the lecture still count but have no row.
func Compute(lec lecture.Lecture, state *session.SessionState) Results {
	res := Results{
		Lecture:       lec.ID,
		Total:         lec.Len(),
		FavoriteCount: state.FavoriteCount(lec.ID),
	}

	for _, e := range state.Answers() {
		if e.Key.Lecture != lec.ID {
			continue
		}
		if e.Record.Correct {
			res.Correct++
			continue
		}
		res.Incorrect++
		if q, ok := lec.Question(e.Key.Question); ok {
			res.WrongAnswers = append(res.WrongAnswers, Row{
				Lecture:    lec.ID,
				Question:   q,
				UserChoice: e.Record.Choice,
			})
		}
	}

	for _, q := range lec.Questions {
		rec, ok := state.Answer(session.QuestionKey{Lecture: lec.ID, Question: q.Number})
		if ok && rec.Correct {
			res.CorrectAnswers = append(res.CorrectAnswers, Row{
				Lecture:    lec.ID,
				Question:   q,
				UserChoice: rec.Choice,
				Correct:    true,
			})
		}
	}

	res.Percentage = Percentage(res.Correct, res.Total)
	return res
}

// Percentage returns round(correct/total*100), or 0 when total is 0.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
