package lecture

import (
	"fmt"
	"sort"

	"github.com/abhisek/quizmaster/internal/i18n"
)

// Choice is a multiple-choice label, A through D.
type Choice string

const (
	ChoiceA Choice = "A"
	ChoiceB Choice = "B"
	ChoiceC Choice = "C"
	ChoiceD Choice = "D"
)

// Choices lists the labels in display order.
var Choices = []Choice{ChoiceA, ChoiceB, ChoiceC, ChoiceD}

// ParseChoice returns the Choice for s if it is one of A-D.
func ParseChoice(s string) (Choice, bool) {
	for _, c := range Choices {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Text is a string carried in both display languages.
type Text struct {
	EN string
	AR string
}

// In returns the text for lang. A missing Arabic translation falls back to English.
func (t Text) In(lang i18n.Lang) string {
	if lang == i18n.AR && t.AR != "" {
		return t.AR
	}
	return t.EN
}

// Explanation holds the per-answer explanations of a question.
type Explanation struct {
	Correct Text
	Wrong   map[Choice]Text
}

// Question is a single multiple-choice question. Immutable after load.
type Question struct {
	Number      int
	Prompt      Text
	Choices     map[Choice]Text
	Correct     Choice
	Explanation Explanation
}

// IsCorrect reports whether c is the right answer.
func (q Question) IsCorrect(c Choice) bool {
	return c == q.Correct
}

// Lecture is an ordered set of questions.
type Lecture struct {
	ID        int
	Questions []Question
}

// Len returns the number of questions.
func (l Lecture) Len() int {
	return len(l.Questions)
}

// IndexOf returns the position of the question with the given number, or -1.
func (l Lecture) IndexOf(number int) int {
	for i, q := range l.Questions {
		if q.Number == number {
			return i
		}
	}
	return -1
}

// Question returns the question with the given number.
func (l Lecture) Question(number int) (Question, bool) {
	i := l.IndexOf(number)
	if i < 0 {
		return Question{}, false
	}
	return l.Questions[i], true
}

// Catalog is the immutable set of loaded lectures keyed by id.
type Catalog struct {
	lectures map[int]Lecture
	ids      []int
}

// NewCatalog builds a catalog from lectures. Later duplicates replace earlier ones.
func NewCatalog(lectures ...Lecture) *Catalog {
	c := &Catalog{lectures: make(map[int]Lecture, len(lectures))}
	for _, l := range lectures {
		c.lectures[l.ID] = l
	}
	for id := range c.lectures {
		c.ids = append(c.ids, id)
	}
	sort.Ints(c.ids)
	return c
}

// Get returns the lecture with id.
func (c *Catalog) Get(id int) (Lecture, bool) {
	l, ok := c.lectures[id]
	return l, ok
}

// IDs returns the lecture ids in ascending order.
func (c *Catalog) IDs() []int {
	out := make([]int, len(c.ids))
	copy(out, c.ids)
	return out
}

// Lectures returns all lectures in ascending id order.
func (c *Catalog) Lectures() []Lecture {
	out := make([]Lecture, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.lectures[id])
	}
	return out
}

// Len returns the number of lectures.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// FileName returns the resource name for lecture id.
func FileName(id int) string {
	return fmt.Sprintf("Lecture_%d.json", id)
}
