package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/quizmaster/internal/i18n"
	"github.com/abhisek/quizmaster/internal/lecture"
)

// persisted is the stored layout of a SessionState. Maps and sets are kept
// as ordered entry lists.
type persisted struct {
	Favorites       []string        `json:"favorites"`
	CurrentLanguage string          `json:"currentLanguage"`
	Answers         []answerEntry   `json:"answers"`
	LectureProgress []progressEntry `json:"lectureProgress"`
}

type answerValue struct {
	Choice    string `json:"choice"`
	Correct   bool   `json:"correct"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

// answerEntry encodes as a two-element array: ["<lecture>-<question>", {...}].
type answerEntry struct {
	Key   string
	Value answerValue
}

func (e answerEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Key, e.Value})
}

func (e *answerEntry) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil {
		return err
	}
	if len(parts) != 2 {
		return fmt.Errorf("answer entry: want 2 elements, got %d", len(parts))
	}
	if err := json.Unmarshal(parts[0], &e.Key); err != nil {
		return fmt.Errorf("answer entry key: %w", err)
	}
	return json.Unmarshal(parts[1], &e.Value)
}

type progressValue struct {
	TotalQuestions     int  `json:"totalQuestions"`
	CompletedQuestions int  `json:"completedQuestions"`
	IsCompleted        bool `json:"isCompleted"`
}

// progressEntry encodes as a two-element array: [lectureId, {...}].
type progressEntry struct {
	Lecture int
	Value   progressValue
}

func (e progressEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Lecture, e.Value})
}

func (e *progressEntry) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil {
		return err
	}
	if len(parts) != 2 {
		return fmt.Errorf("progress entry: want 2 elements, got %d", len(parts))
	}
	if err := json.Unmarshal(parts[0], &e.Lecture); err != nil {
		return fmt.Errorf("progress entry lecture: %w", err)
	}
	return json.Unmarshal(parts[1], &e.Value)
}

// Marshal serializes the mutable parts of s.
func Marshal(s *SessionState) ([]byte, error) {
	p := persisted{
		Favorites:       make([]string, 0, len(s.favorites)),
		CurrentLanguage: string(s.Language),
		Answers:         make([]answerEntry, 0, len(s.order)),
		LectureProgress: make([]progressEntry, 0, len(s.progress)),
	}
	for _, k := range s.Favorites() {
		p.Favorites = append(p.Favorites, k.String())
	}
	for _, e := range s.Answers() {
		p.Answers = append(p.Answers, answerEntry{
			Key: e.Key.String(),
			Value: answerValue{
				Choice:    string(e.Record.Choice),
				Correct:   e.Record.Correct,
				Timestamp: e.Record.Timestamp.UnixMilli(),
			},
		})
	}
	for _, id := range s.ProgressIDs() {
		lp := s.progress[id]
		p.LectureProgress = append(p.LectureProgress, progressEntry{
			Lecture: id,
			Value: progressValue{
				TotalQuestions:     lp.TotalQuestions,
				CompletedQuestions: lp.CompletedQuestions,
				IsCompleted:        lp.IsCompleted,
			},
		})
	}
	return json.Marshal(p)
}

// Unmarshal rebuilds a SessionState from Marshal output. Entries with
// unreadable keys are dropped; a malformed document is an error.
func Unmarshal(data []byte) (*SessionState, error) {
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	s := NewSessionState()
	s.Language = i18n.ParseLang(p.CurrentLanguage)

	for _, raw := range p.Favorites {
		k, err := ParseKey(raw)
		if err != nil {
			continue
		}
		s.favorites[k] = struct{}{}
	}
	for _, e := range p.Answers {
		k, err := ParseKey(e.Key)
		if err != nil {
			continue
		}
		s.setAnswer(k, AnswerRecord{
			Choice:    lecture.Choice(e.Value.Choice),
			Correct:   e.Value.Correct,
			Timestamp: time.UnixMilli(e.Value.Timestamp),
		})
	}
	for _, e := range p.LectureProgress {
		s.progress[e.Lecture] = LectureProgress{
			TotalQuestions:     e.Value.TotalQuestions,
			CompletedQuestions: e.Value.CompletedQuestions,
			IsCompleted:        e.Value.IsCompleted,
		}
	}
	return s, nil
}
