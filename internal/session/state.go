package session

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/quizmaster/internal/i18n"
	"github.com/abhisek/quizmaster/internal/lecture"
)

// QuestionKey identifies a question across lectures.
type QuestionKey struct {
	Lecture  int
	Question int
}

// String returns the "<lecture>-<question>" form used in persisted data.
func (k QuestionKey) String() string {
	return fmt.Sprintf("%d-%d", k.Lecture, k.Question)
}

// ParseKey parses the "<lecture>-<question>" form.
func ParseKey(s string) (QuestionKey, error) {
	l, q, ok := strings.Cut(s, "-")
	if !ok {
		return QuestionKey{}, fmt.Errorf("invalid question key %q", s)
	}
	lid, err := strconv.Atoi(l)
	if err != nil {
		return QuestionKey{}, fmt.Errorf("invalid question key %q: %w", s, err)
	}
	qid, err := strconv.Atoi(q)
	if err != nil {
		return QuestionKey{}, fmt.Errorf("invalid question key %q: %w", s, err)
	}
	return QuestionKey{Lecture: lid, Question: qid}, nil
}

// AnswerRecord is the learner's latest answer to one question.
type AnswerRecord struct {
	Choice    lecture.Choice
	Correct   bool
	Timestamp time.Time
}

// AnswerEntry pairs a key with its record.
type AnswerEntry struct {
	Key    QuestionKey
	Record AnswerRecord
}

// LectureProgress is the cached answer count for a lecture.
type LectureProgress struct {
	TotalQuestions     int
	CompletedQuestions int
	IsCompleted        bool
}

// SessionState is the learner's persisted record of answers, favorites,
// language, and per-lecture progress.
type SessionState struct {
	// Language is the UI display language.
	Language i18n.Lang

	answers   map[QuestionKey]AnswerRecord
	order     []QuestionKey // insertion order of answers
	favorites map[QuestionKey]struct{}
	progress  map[int]LectureProgress
}

// NewSessionState returns an empty state with the default language.
func NewSessionState() *SessionState {
	return &SessionState{
		Language:  i18n.Default,
		answers:   make(map[QuestionKey]AnswerRecord),
		favorites: make(map[QuestionKey]struct{}),
		progress:  make(map[int]LectureProgress),
	}
}

// Answer returns the stored answer for k.
func (s *SessionState) Answer(k QuestionKey) (AnswerRecord, bool) {
	r, ok := s.answers[k]
	return r, ok
}

// RecordAnswer stores the learner's choice for q under k. The correct flag
// is computed here and nowhere else. An existing answer is overwritten in
// place, keeping its position in the answer order.
func (s *SessionState) RecordAnswer(k QuestionKey, q lecture.Question, choice lecture.Choice, now time.Time) AnswerRecord {
	rec := AnswerRecord{
		Choice:    choice,
		Correct:   q.IsCorrect(choice),
		Timestamp: now,
	}
	s.setAnswer(k, rec)
	return rec
}

func (s *SessionState) setAnswer(k QuestionKey, rec AnswerRecord) {
	if _, exists := s.answers[k]; !exists {
		s.order = append(s.order, k)
	}
	s.answers[k] = rec
}

// Answers returns every answer in insertion order.
func (s *SessionState) Answers() []AnswerEntry {
	out := make([]AnswerEntry, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, AnswerEntry{Key: k, Record: s.answers[k]})
	}
	return out
}

// AnsweredCount returns the number of answered questions in a lecture.
func (s *SessionState) AnsweredCount(lectureID int) int {
	n := 0
	for k := range s.answers {
		if k.Lecture == lectureID {
			n++
		}
	}
	return n
}

// ClearLecture removes every answer recorded for a lecture and returns how
// many were removed.
func (s *SessionState) ClearLecture(lectureID int) int {
	kept := s.order[:0]
	removed := 0
	for _, k := range s.order {
		if k.Lecture == lectureID {
			delete(s.answers, k)
			removed++
			continue
		}
		kept = append(kept, k)
	}
	s.order = kept
	return removed
}

// IsFavorite reports whether k is favorited.
func (s *SessionState) IsFavorite(k QuestionKey) bool {
	_, ok := s.favorites[k]
	return ok
}

// ToggleFavorite flips the favorite flag of k and returns the new value.
func (s *SessionState) ToggleFavorite(k QuestionKey) bool {
	if s.IsFavorite(k) {
		delete(s.favorites, k)
		return false
	}
	s.favorites[k] = struct{}{}
	return true
}

// Favorites returns the favorited keys ordered by lecture then question.
func (s *SessionState) Favorites() []QuestionKey {
	out := make([]QuestionKey, 0, len(s.favorites))
	for k := range s.favorites {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Lecture != out[j].Lecture {
			return out[i].Lecture < out[j].Lecture
		}
		return out[i].Question < out[j].Question
	})
	return out
}

// FavoritesIn returns the favorited question numbers of a lecture, ascending.
func (s *SessionState) FavoritesIn(lectureID int) []int {
	var out []int
	for k := range s.favorites {
		if k.Lecture == lectureID {
			out = append(out, k.Question)
		}
	}
	sort.Ints(out)
	return out
}

// FavoriteCount returns the number of favorites in a lecture.
func (s *SessionState) FavoriteCount(lectureID int) int {
	return len(s.FavoritesIn(lectureID))
}

// Progress returns the cached progress of a lecture.
func (s *SessionState) Progress(lectureID int) (LectureProgress, bool) {
	p, ok := s.progress[lectureID]
	return p, ok
}

// ProgressIDs returns the lecture ids with recorded progress, ascending.
func (s *SessionState) ProgressIDs() []int {
	ids := make([]int, 0, len(s.progress))
	for id := range s.progress {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// RecomputeProgress refreshes the cached progress of a lecture from its
// answers. A lecture with no answers has its entry removed.
func (s *SessionState) RecomputeProgress(lectureID, totalQuestions int) LectureProgress {
	done := s.AnsweredCount(lectureID)
	if done == 0 {
		delete(s.progress, lectureID)
		return LectureProgress{TotalQuestions: totalQuestions}
	}
	p := LectureProgress{
		TotalQuestions:     totalQuestions,
		CompletedQuestions: done,
		IsCompleted:        done >= totalQuestions,
	}
	s.progress[lectureID] = p
	return p
}

// Clear empties every collection in place. The language is kept.
func (s *SessionState) Clear() {
	clear(s.answers)
	clear(s.favorites)
	clear(s.progress)
	s.order = nil
}
