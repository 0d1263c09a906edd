package quiz

import (
	"github.com/abhisek/quizmaster/internal/i18n"
	"github.com/abhisek/quizmaster/internal/lecture"
)

// ChoiceState is how a choice is drawn.
type ChoiceState int

const (
	ChoiceIdle ChoiceState = iota
	ChoiceSelected
	ChoiceCorrect
	ChoiceIncorrect
)

// ChoiceView is one answer option.
type ChoiceView struct {
	Label    lecture.Choice
	Text     string
	State    ChoiceState
	Disabled bool
}

// SectionKind classifies an explanation paragraph.
type SectionKind int

const (
	// SectionCorrect explains the right answer.
	SectionCorrect SectionKind = iota
	// SectionYours explains the learner's wrong answer.
	SectionYours
	// SectionOther explains a choice nobody picked.
	SectionOther
)

// ExplanationSection is one paragraph of answer feedback.
type ExplanationSection struct {
	Kind   SectionKind
	Choice lecture.Choice
	Text   string
}

// Feedback is shown once a question has an answer to judge.
type Feedback struct {
	// Answered is false when a view-only replay reaches a question that was
	// never answered; only the correct answer is explained then.
	Answered   bool
	Correct    bool
	UserChoice lecture.Choice
	Sections   []ExplanationSection
}

// QuestionView is everything a screen needs to draw the current question.
type QuestionView struct {
	Lecture  int
	Kind     ReviewKind // empty for a normal quiz
	Number   int
	Prompt   string
	Choices  []ChoiceView
	Favorite bool

	Index    int
	Total    int
	Progress float64 // fraction of the sequence reached, 0..1

	Feedback *Feedback

	ViewOnly  bool
	CanSubmit bool
	CanBack   bool
	ShowNext  bool
	IsLast    bool

	Language            i18n.Lang
	ExplanationLanguage i18n.Lang
}

// QuestionView builds the view model of the current question.
func (c *Controller) QuestionView() (QuestionView, error) {
	item, ok := c.currentItem()
	if !ok {
		return QuestionView{}, ErrNoCurrentQuestion
	}

	var (
		index, total        int
		submitted, viewOnly bool
		selection           lecture.Choice
		kind                ReviewKind
	)
	switch s := c.current.(type) {
	case Active:
		lec, _ := c.catalog.Get(s.Lecture)
		index, total = s.Index, lec.Len()
		submitted, selection = s.Submitted, s.Selection
	case Reviewing:
		index, total = s.Index, len(s.Items)
		submitted, viewOnly, selection = s.Submitted, s.ViewOnly, s.Selection
		kind = s.Kind
	}

	lang := c.state.Language
	q := item.Question
	v := QuestionView{
		Lecture:             item.Lecture,
		Kind:                kind,
		Number:              q.Number,
		Prompt:              q.Prompt.In(lang),
		Favorite:            c.state.IsFavorite(item.Key()),
		Index:               index,
		Total:               total,
		Progress:            float64(index+1) / float64(total),
		ViewOnly:            viewOnly,
		CanSubmit:           !viewOnly && !submitted && selection != "",
		CanBack:             index > 0,
		ShowNext:            viewOnly || submitted,
		IsLast:              index == total-1,
		Language:            lang,
		ExplanationLanguage: c.explainLang,
	}

	// judged is the answer feedback is drawn for: the stored one in
	// view-only mode, the fresh selection after a submit.
	var (
		judged lecture.Choice
		locked bool
	)
	stored, hasStored := c.state.Answer(item.Key())
	switch {
	case viewOnly && hasStored:
		judged, locked = stored.Choice, true
	case submitted:
		judged, locked = selection, true
	}

	for _, label := range lecture.Choices {
		cv := ChoiceView{Label: label, Text: q.Choices[label].In(lang), Disabled: locked}
		switch {
		case locked && label == q.Correct:
			cv.State = ChoiceCorrect
		case locked && label == judged:
			cv.State = ChoiceIncorrect
		case !locked && label == selection:
			cv.State = ChoiceSelected
		}
		v.Choices = append(v.Choices, cv)
	}

	if locked {
		v.Feedback = explain(q, judged, c.explainLang)
	}
	return v, nil
}

func explain(q lecture.Question, userChoice lecture.Choice, lang i18n.Lang) *Feedback {
	fb := &Feedback{
		Answered:   userChoice != "",
		Correct:    userChoice != "" && q.IsCorrect(userChoice),
		UserChoice: userChoice,
	}
	fb.Sections = append(fb.Sections, ExplanationSection{
		Kind:   SectionCorrect,
		Choice: q.Correct,
		Text:   q.Explanation.Correct.In(lang),
	})
	if fb.Answered && !fb.Correct {
		fb.Sections = append(fb.Sections, ExplanationSection{
			Kind:   SectionYours,
			Choice: userChoice,
			Text:   q.Explanation.Wrong[userChoice].In(lang),
		})
	}
	for _, label := range lecture.Choices {
		if label == q.Correct || label == userChoice {
			continue
		}
		t, ok := q.Explanation.Wrong[label]
		if !ok {
			continue
		}
		fb.Sections = append(fb.Sections, ExplanationSection{Kind: SectionOther, Choice: label, Text: t.In(lang)})
	}
	return fb
}
