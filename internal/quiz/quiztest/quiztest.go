// Package quiztest builds controllers over in-memory storage for screen tests.
package quiztest

import (
	"context"
	"fmt"
	"sync"

	"github.com/abhisek/quizmaster/internal/lecture"
	"github.com/abhisek/quizmaster/internal/quiz"
	"github.com/abhisek/quizmaster/internal/session"
	"github.com/abhisek/quizmaster/internal/store"
)

// Blobs is an in-memory store.BlobRepo.
type Blobs struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewBlobs returns an empty Blobs.
func NewBlobs() *Blobs {
	return &Blobs{data: make(map[string][]byte)}
}

func (b *Blobs) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return v, nil
}

func (b *Blobs) Put(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = value
	return nil
}

func (b *Blobs) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	return nil
}

// Lecture builds a lecture of n questions whose right answer is always A.
func Lecture(id, n int) lecture.Lecture {
	lec := lecture.Lecture{ID: id}
	for i := 1; i <= n; i++ {
		lec.Questions = append(lec.Questions, lecture.Question{
			Number: i,
			Prompt: lecture.Text{EN: fmt.Sprintf("Lecture %d question %d?", id, i)},
			Choices: map[lecture.Choice]lecture.Text{
				lecture.ChoiceA: {EN: "right"},
				lecture.ChoiceB: {EN: "wrong b"},
				lecture.ChoiceC: {EN: "wrong c"},
				lecture.ChoiceD: {EN: "wrong d"},
			},
			Correct: lecture.ChoiceA,
			Explanation: lecture.Explanation{
				Correct: lecture.Text{EN: "A is right"},
				Wrong: map[lecture.Choice]lecture.Text{
					lecture.ChoiceB: {EN: "B is wrong"},
					lecture.ChoiceC: {EN: "C is wrong"},
					lecture.ChoiceD: {EN: "D is wrong"},
				},
			},
		})
	}
	return lec
}

// Controller returns a controller over lectures 1 (3 questions) and 2
// (2 questions) unless lectures are given.
func Controller(lectures ...lecture.Lecture) *quiz.Controller {
	if len(lectures) == 0 {
		lectures = []lecture.Lecture{Lecture(1, 3), Lecture(2, 2)}
	}
	sessions := session.NewStore(NewBlobs(), nil)
	return quiz.New(lecture.NewCatalog(lectures...), sessions, sessions.Load(context.Background()))
}

// Complete answers every question of lecture id with choices, ending on the
// dashboard. It panics on controller errors.
func Complete(c *quiz.Controller, id int, choices ...lecture.Choice) {
	if _, err := c.SelectLecture(id); err != nil {
		panic(err)
	}
	for _, ch := range choices {
		must(c.SelectChoice(ch))
		must(c.Submit())
		must(c.Next())
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
