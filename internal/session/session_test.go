package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizmaster/internal/i18n"
	"github.com/abhisek/quizmaster/internal/lecture"
	"github.com/abhisek/quizmaster/internal/store"
)

// memBlobs is an in-memory store.BlobRepo.
type memBlobs struct {
	data map[string][]byte
}

func newMemBlobs() *memBlobs {
	return &memBlobs{data: make(map[string][]byte)}
}

func (m *memBlobs) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return v, nil
}

func (m *memBlobs) Put(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memBlobs) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// failingBlobs fails every operation.
type failingBlobs struct{}

var errDisk = errors.New("disk full")

func (failingBlobs) Get(context.Context, string) ([]byte, error) { return nil, errDisk }
func (failingBlobs) Put(context.Context, string, []byte) error   { return errDisk }
func (failingBlobs) Delete(context.Context, string) error        { return errDisk }

func question(n int, correct lecture.Choice) lecture.Question {
	return lecture.Question{Number: n, Correct: correct}
}

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestParseKey(t *testing.T) {
	k, err := ParseKey("3-14")
	require.NoError(t, err)
	assert.Equal(t, QuestionKey{Lecture: 3, Question: 14}, k)
	assert.Equal(t, "3-14", k.String())

	for _, bad := range []string{"", "3", "x-1", "1-y", "3_4"} {
		_, err := ParseKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestRecordAnswer_SetsCorrectFlag(t *testing.T) {
	s := NewSessionState()
	q := question(1, lecture.ChoiceC)
	k := QuestionKey{Lecture: 1, Question: 1}

	rec := s.RecordAnswer(k, q, lecture.ChoiceA, t0)
	assert.False(t, rec.Correct)

	rec = s.RecordAnswer(k, q, lecture.ChoiceC, t0)
	assert.True(t, rec.Correct)

	got, ok := s.Answer(k)
	require.True(t, ok)
	assert.Equal(t, lecture.ChoiceC, got.Choice)
	assert.True(t, got.Correct)
}

func TestRecordAnswer_OverwriteDoesNotDoubleCount(t *testing.T) {
	s := NewSessionState()
	q := question(2, lecture.ChoiceA)
	k := QuestionKey{Lecture: 1, Question: 2}

	s.RecordAnswer(QuestionKey{Lecture: 1, Question: 1}, question(1, lecture.ChoiceA), lecture.ChoiceA, t0)
	s.RecordAnswer(k, q, lecture.ChoiceB, t0)
	s.RecordAnswer(k, q, lecture.ChoiceA, t0.Add(time.Minute))

	assert.Equal(t, 2, s.AnsweredCount(1))
	p := s.RecomputeProgress(1, 5)
	assert.Equal(t, 2, p.CompletedQuestions)
	assert.False(t, p.IsCompleted)

	answers := s.Answers()
	require.Len(t, answers, 2)
	assert.Equal(t, 1, answers[0].Key.Question)
	assert.Equal(t, 2, answers[1].Key.Question, "overwrite keeps insertion position")
}

func TestRecomputeProgress(t *testing.T) {
	s := NewSessionState()
	_, ok := s.Progress(4)
	assert.False(t, ok)

	s.RecordAnswer(QuestionKey{Lecture: 4, Question: 1}, question(1, lecture.ChoiceA), lecture.ChoiceA, t0)
	s.RecordAnswer(QuestionKey{Lecture: 4, Question: 2}, question(2, lecture.ChoiceA), lecture.ChoiceA, t0)
	p := s.RecomputeProgress(4, 2)
	assert.True(t, p.IsCompleted)

	got, ok := s.Progress(4)
	require.True(t, ok)
	assert.Equal(t, LectureProgress{TotalQuestions: 2, CompletedQuestions: 2, IsCompleted: true}, got)

	assert.Equal(t, 2, s.ClearLecture(4))
	s.RecomputeProgress(4, 2)
	_, ok = s.Progress(4)
	assert.False(t, ok, "no answers means no progress entry")
}

func TestClearLecture_KeepsOtherLectures(t *testing.T) {
	s := NewSessionState()
	s.RecordAnswer(QuestionKey{Lecture: 1, Question: 1}, question(1, lecture.ChoiceA), lecture.ChoiceA, t0)
	s.RecordAnswer(QuestionKey{Lecture: 2, Question: 1}, question(1, lecture.ChoiceA), lecture.ChoiceB, t0)
	s.RecordAnswer(QuestionKey{Lecture: 1, Question: 2}, question(2, lecture.ChoiceA), lecture.ChoiceA, t0)

	assert.Equal(t, 2, s.ClearLecture(1))
	answers := s.Answers()
	require.Len(t, answers, 1)
	assert.Equal(t, QuestionKey{Lecture: 2, Question: 1}, answers[0].Key)
}

func TestToggleFavoriteTwice(t *testing.T) {
	s := NewSessionState()
	k := QuestionKey{Lecture: 1, Question: 2}

	assert.True(t, s.ToggleFavorite(k))
	assert.True(t, s.IsFavorite(k))
	assert.False(t, s.ToggleFavorite(k))
	assert.False(t, s.IsFavorite(k))
	assert.Empty(t, s.Favorites())
}

func TestFavorites_Ordered(t *testing.T) {
	s := NewSessionState()
	s.ToggleFavorite(QuestionKey{Lecture: 3, Question: 4})
	s.ToggleFavorite(QuestionKey{Lecture: 1, Question: 9})
	s.ToggleFavorite(QuestionKey{Lecture: 1, Question: 2})

	assert.Equal(t, []QuestionKey{{1, 2}, {1, 9}, {3, 4}}, s.Favorites())
	assert.Equal(t, []int{2, 9}, s.FavoritesIn(1))
	assert.Equal(t, 2, s.FavoriteCount(1))
	assert.Equal(t, 0, s.FavoriteCount(2))
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	blobs := newMemBlobs()
	st := NewStore(blobs, nil)

	s := NewSessionState()
	s.Language = i18n.AR
	s.RecordAnswer(QuestionKey{Lecture: 2, Question: 5}, question(5, lecture.ChoiceD), lecture.ChoiceD, t0)
	s.RecordAnswer(QuestionKey{Lecture: 1, Question: 3}, question(3, lecture.ChoiceD), lecture.ChoiceA, t0.Add(time.Second))
	s.RecomputeProgress(2, 10)
	s.RecomputeProgress(1, 3)
	s.ToggleFavorite(QuestionKey{Lecture: 1, Question: 3})
	s.ToggleFavorite(QuestionKey{Lecture: 7, Question: 1})

	st.Save(ctx, s)
	require.Contains(t, blobs.data, BlobKey)

	got := st.Load(ctx)
	assert.Equal(t, i18n.AR, got.Language)
	assert.ElementsMatch(t, s.Favorites(), got.Favorites())
	assert.Equal(t, s.ProgressIDs(), got.ProgressIDs())

	want := map[QuestionKey]AnswerRecord{}
	for _, e := range s.Answers() {
		want[e.Key] = e.Record
	}
	have := map[QuestionKey]AnswerRecord{}
	for _, e := range got.Answers() {
		have[e.Key] = e.Record
	}
	require.Len(t, have, len(want))
	for k, w := range want {
		h := have[k]
		assert.Equal(t, w.Choice, h.Choice, k.String())
		assert.Equal(t, w.Correct, h.Correct, k.String())
		assert.True(t, w.Timestamp.Equal(h.Timestamp), k.String())
	}

	p, ok := got.Progress(1)
	require.True(t, ok)
	assert.Equal(t, LectureProgress{TotalQuestions: 3, CompletedQuestions: 1}, p)
}

func TestStore_WireFormat(t *testing.T) {
	s := NewSessionState()
	s.RecordAnswer(QuestionKey{Lecture: 1, Question: 2}, question(2, lecture.ChoiceB), lecture.ChoiceB, time.UnixMilli(1700000000123))
	s.RecomputeProgress(1, 4)
	s.ToggleFavorite(QuestionKey{Lecture: 1, Question: 2})

	data, err := Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"favorites": ["1-2"],
		"currentLanguage": "en",
		"answers": [["1-2", {"choice": "B", "correct": true, "timestamp": 1700000000123}]],
		"lectureProgress": [[1, {"totalQuestions": 4, "completedQuestions": 1, "isCompleted": false}]]
	}`, string(data))
}

func TestUnmarshal_SkipsBadKeys(t *testing.T) {
	s, err := Unmarshal([]byte(`{
		"favorites": ["nope", "2-1"],
		"currentLanguage": "fr",
		"answers": [["bad", {"choice": "A"}], ["2-1", {"choice": "C", "correct": false, "timestamp": 0}]],
		"lectureProgress": []
	}`))
	require.NoError(t, err)
	assert.Equal(t, i18n.EN, s.Language, "unknown language falls back to default")
	assert.Equal(t, []QuestionKey{{2, 1}}, s.Favorites())
	require.Len(t, s.Answers(), 1)
	assert.Equal(t, lecture.ChoiceC, s.Answers()[0].Record.Choice)
}

func TestStore_LoadDefaults(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		blobs store.BlobRepo
	}{
		{"missing", newMemBlobs()},
		{"corrupt", &memBlobs{data: map[string][]byte{BlobKey: []byte("{not json")}}},
		{"wrong shape", &memBlobs{data: map[string][]byte{BlobKey: []byte(`{"answers":[["1-1"]]}`)}}},
		{"read failure", failingBlobs{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(tt.blobs, nil).Load(ctx)
			require.NotNil(t, s)
			assert.Equal(t, i18n.EN, s.Language)
			assert.Empty(t, s.Answers())
			assert.Empty(t, s.Favorites())
			assert.Empty(t, s.ProgressIDs())
		})
	}
}

func TestStore_SaveFailureKeepsState(t *testing.T) {
	s := NewSessionState()
	s.ToggleFavorite(QuestionKey{Lecture: 1, Question: 1})

	st := NewStore(failingBlobs{}, nil)
	st.Save(context.Background(), s)
	assert.True(t, s.IsFavorite(QuestionKey{Lecture: 1, Question: 1}))

	st.Reset(context.Background(), s)
	assert.Empty(t, s.Favorites())
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	blobs := newMemBlobs()
	st := NewStore(blobs, nil)

	s := NewSessionState()
	s.Language = i18n.AR
	s.RecordAnswer(QuestionKey{Lecture: 1, Question: 1}, question(1, lecture.ChoiceA), lecture.ChoiceA, t0)
	s.RecomputeProgress(1, 1)
	s.ToggleFavorite(QuestionKey{Lecture: 1, Question: 1})
	st.Save(ctx, s)

	st.Reset(ctx, s)
	assert.NotContains(t, blobs.data, BlobKey)
	assert.Empty(t, s.Answers())
	assert.Empty(t, s.Favorites())
	assert.Empty(t, s.ProgressIDs())
	assert.Equal(t, i18n.AR, s.Language)
	assert.Equal(t, 0, s.AnsweredCount(1))
}
