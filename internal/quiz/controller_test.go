package quiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizmaster/internal/i18n"
	"github.com/abhisek/quizmaster/internal/lecture"
	"github.com/abhisek/quizmaster/internal/results"
	"github.com/abhisek/quizmaster/internal/session"
	"github.com/abhisek/quizmaster/internal/store"
)

type memBlobs struct {
	data map[string][]byte
	puts int
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
	m.puts++
	return nil
}

func (m *memBlobs) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

type recordingLog struct {
	events  []store.AnswerEventData
	cleared bool
	err     error
}

func (r *recordingLog) AppendAnswer(_ context.Context, data store.AnswerEventData) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, data)
	return nil
}

func (r *recordingLog) Clear(context.Context) error {
	r.cleared = true
	r.events = nil
	return nil
}

// makeLecture builds a lecture whose questions are all answered correctly by A.
func makeLecture(id, n int) lecture.Lecture {
	lec := lecture.Lecture{ID: id}
	for i := 1; i <= n; i++ {
		lec.Questions = append(lec.Questions, lecture.Question{
			Number:  i,
			Prompt:  lecture.Text{EN: "question", AR: "سؤال"},
			Choices: map[lecture.Choice]lecture.Text{"A": {EN: "a"}, "B": {EN: "b"}, "C": {EN: "c"}, "D": {EN: "d"}},
			Correct: lecture.ChoiceA,
			Explanation: lecture.Explanation{
				Correct: lecture.Text{EN: "a is right", AR: "أ صحيح"},
				Wrong: map[lecture.Choice]lecture.Text{
					"B": {EN: "b is wrong"},
					"C": {EN: "c is wrong", AR: "ج خطأ"},
					"D": {EN: "d is wrong"},
				},
			},
		})
	}
	return lec
}

type fixture struct {
	c     *Controller
	blobs *memBlobs
	log   *recordingLog
}

func newFixture(t *testing.T, lectures ...lecture.Lecture) *fixture {
	t.Helper()
	if len(lectures) == 0 {
		lectures = []lecture.Lecture{makeLecture(1, 3), makeLecture(3, 5)}
	}
	blobs := &memBlobs{data: map[string][]byte{}}
	log := &recordingLog{}
	sessions := session.NewStore(blobs, nil)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(lecture.NewCatalog(lectures...), sessions, sessions.Load(context.Background()),
		WithAnswerLog(log),
		WithClock(func() time.Time { return clock }),
	)
	return &fixture{c: c, blobs: blobs, log: log}
}

func (f *fixture) answer(t *testing.T, choice lecture.Choice) {
	t.Helper()
	require.NoError(t, f.c.SelectChoice(choice))
	require.NoError(t, f.c.Submit())
}

func key(l, q int) session.QuestionKey {
	return session.QuestionKey{Lecture: l, Question: q}
}

func TestSelectLecture_FreshStart(t *testing.T) {
	f := newFixture(t)

	sel, err := f.c.SelectLecture(1)
	require.NoError(t, err)
	assert.Equal(t, SelectionStarted, sel)
	assert.Equal(t, Active{Lecture: 1}, f.c.State())
}

func TestSelectLecture_Unknown(t *testing.T) {
	f := newFixture(t)

	_, err := f.c.SelectLecture(42)
	assert.ErrorIs(t, err, ErrUnknownLecture)
	assert.Equal(t, Browsing{}, f.c.State())
}

func TestSelectLecture_ClearsStaleAnswers(t *testing.T) {
	f := newFixture(t)
	s := f.c.Session()
	// an answer with no progress entry, e.g. left behind by an older version
	lec, _ := f.c.Catalog().Get(1)
	s.RecordAnswer(key(1, 2), lec.Questions[1], lecture.ChoiceB, time.Now())

	_, err := f.c.SelectLecture(1)
	require.NoError(t, err)
	_, ok := s.Answer(key(1, 2))
	assert.False(t, ok)
}

func TestSelectLecture_ResumeAndRestart(t *testing.T) {
	f := newFixture(t)
	_, err := f.c.SelectLecture(3)
	require.NoError(t, err)
	f.answer(t, lecture.ChoiceA)
	require.NoError(t, f.c.Next())
	f.answer(t, lecture.ChoiceB)
	require.NoError(t, f.c.Exit())
	assert.Equal(t, Browsing{}, f.c.State())

	sel, err := f.c.SelectLecture(3)
	require.NoError(t, err)
	assert.Equal(t, SelectionNeedsResume, sel)
	assert.Equal(t, Browsing{}, f.c.State(), "prompt leaves state unchanged")

	require.NoError(t, f.c.Resume(3))
	assert.Equal(t, Active{Lecture: 3, Index: 2}, f.c.State())

	require.NoError(t, f.c.Exit())
	require.NoError(t, f.c.Restart(3))
	assert.Equal(t, Active{Lecture: 3}, f.c.State())
	assert.Equal(t, 0, f.c.Session().AnsweredCount(3))
	_, ok := f.c.Session().Progress(3)
	assert.False(t, ok)
}

func TestSelectLecture_CompletedShowsDashboard(t *testing.T) {
	f := newFixture(t)
	_, err := f.c.SelectLecture(1)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		f.answer(t, lecture.ChoiceA)
		require.NoError(t, f.c.Next())
	}
	d, ok := f.c.State().(Dashboard)
	require.True(t, ok, "finishing the quiz shows the dashboard")
	assert.Equal(t, 100, d.Results.Percentage)

	require.NoError(t, f.c.Exit())
	sel, err := f.c.SelectLecture(1)
	require.NoError(t, err)
	assert.Equal(t, SelectionDashboard, sel)
	assert.IsType(t, Dashboard{}, f.c.State())
}

func TestSelectLecture_OnlyFromBrowsing(t *testing.T) {
	f := newFixture(t)
	_, err := f.c.SelectLecture(1)
	require.NoError(t, err)

	_, err = f.c.SelectLecture(3)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, f.c.Resume(3), ErrInvalidTransition)
	assert.ErrorIs(t, f.c.Restart(3), ErrInvalidTransition)
}

func TestSubmit_WithoutSelection(t *testing.T) {
	f := newFixture(t)
	_, _ = f.c.SelectLecture(1)

	assert.ErrorIs(t, f.c.Submit(), ErrNoSelection)
	assert.Equal(t, Active{Lecture: 1}, f.c.State())
	assert.Empty(t, f.c.Session().Answers())
}

func TestSubmit_RecordsAnswer(t *testing.T) {
	f := newFixture(t)
	_, _ = f.c.SelectLecture(3)
	f.answer(t, lecture.ChoiceC)

	rec, ok := f.c.Session().Answer(key(3, 1))
	require.True(t, ok)
	assert.Equal(t, lecture.ChoiceC, rec.Choice)
	assert.False(t, rec.Correct)

	p, ok := f.c.Session().Progress(3)
	require.True(t, ok)
	assert.Equal(t, session.LectureProgress{TotalQuestions: 5, CompletedQuestions: 1}, p)

	require.Len(t, f.log.events, 1)
	ev := f.log.events[0]
	assert.Equal(t, f.c.RunID(), ev.RunID)
	assert.Equal(t, "quiz", ev.Mode)
	assert.Equal(t, 3, ev.Lecture)
	assert.Equal(t, "C", ev.Choice)

	assert.Contains(t, f.blobs.data, session.BlobKey, "submission is persisted")
}

func TestSubmit_TwiceIsNoop(t *testing.T) {
	f := newFixture(t)
	_, _ = f.c.SelectLecture(3)
	f.answer(t, lecture.ChoiceA)

	assert.ErrorIs(t, f.c.SelectChoice(lecture.ChoiceB), ErrInvalidChoice)
	require.NoError(t, f.c.Submit())
	assert.Len(t, f.log.events, 1)
	assert.Equal(t, 1, f.c.Session().AnsweredCount(3))
}

func TestSubmit_LogFailureIsAbsorbed(t *testing.T) {
	f := newFixture(t)
	f.log.err = errors.New("locked")
	_, _ = f.c.SelectLecture(1)
	f.answer(t, lecture.ChoiceA)

	_, ok := f.c.Session().Answer(key(1, 1))
	assert.True(t, ok)
}

func TestSelectChoice_Invalid(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.c.SelectChoice(lecture.ChoiceA), ErrNoCurrentQuestion)

	_, _ = f.c.SelectLecture(1)
	assert.ErrorIs(t, f.c.SelectChoice("E"), ErrInvalidChoice)
	require.NoError(t, f.c.SelectChoice(lecture.ChoiceB))
	require.NoError(t, f.c.SelectChoice(lecture.ChoiceD))
	assert.Equal(t, Active{Lecture: 1, Selection: lecture.ChoiceD}, f.c.State())
}

func TestNavigation(t *testing.T) {
	f := newFixture(t)
	_, _ = f.c.SelectLecture(1)

	assert.ErrorIs(t, f.c.Next(), ErrInvalidTransition, "next needs a submitted answer")
	require.NoError(t, f.c.Previous())
	assert.Equal(t, Active{Lecture: 1}, f.c.State(), "previous at the first question is a no-op")

	f.answer(t, lecture.ChoiceA)
	require.NoError(t, f.c.Next())
	require.NoError(t, f.c.SelectChoice(lecture.ChoiceB))
	require.NoError(t, f.c.Previous())
	assert.Equal(t, Active{Lecture: 1}, f.c.State(), "moving clears submitted and selection")
}

func TestLectureThreeScenario(t *testing.T) {
	f := newFixture(t)
	_, _ = f.c.SelectLecture(3)
	f.answer(t, lecture.ChoiceA)
	require.NoError(t, f.c.Next())
	f.answer(t, lecture.ChoiceB)

	p, _ := f.c.Session().Progress(3)
	assert.Equal(t, 2, p.CompletedQuestions)

	lec, _ := f.c.Catalog().Get(3)
	res := results.Compute(lec, f.c.Session())
	assert.Equal(t, 1, res.Correct)
	assert.Equal(t, 1, res.Incorrect)
	assert.Equal(t, 20, res.Percentage)

	require.NoError(t, f.c.Exit())
	sel, err := f.c.SelectLecture(3)
	require.NoError(t, err)
	assert.Equal(t, SelectionNeedsResume, sel)
}

// completeLecture answers every question of lec with the given choices and
// lands on the dashboard.
func completeLecture(t *testing.T, f *fixture, id int, choices ...lecture.Choice) {
	t.Helper()
	_, err := f.c.SelectLecture(id)
	require.NoError(t, err)
	for _, ch := range choices {
		f.answer(t, ch)
		require.NoError(t, f.c.Next())
	}
	require.IsType(t, Dashboard{}, f.c.State())
}

func TestStartReview_Errors(t *testing.T) {
	f := newFixture(t)
	completeLecture(t, f, 1, lecture.ChoiceA, lecture.ChoiceB, lecture.ChoiceC)

	require.NoError(t, f.c.StartReview(ReviewErrors, false))
	r := f.c.State().(Reviewing)
	require.Len(t, r.Items, 2)
	assert.Equal(t, 2, r.Items[0].Question.Number)
	assert.Equal(t, 3, r.Items[1].Question.Number)
	assert.Equal(t, OriginDashboard, r.Origin)
	assert.False(t, r.Submitted)

	// retry question 2 correctly
	f.answer(t, lecture.ChoiceA)
	rec, _ := f.c.Session().Answer(key(1, 2))
	assert.True(t, rec.Correct)
	assert.Equal(t, "errors", f.log.events[len(f.log.events)-1].Mode)
	p, _ := f.c.Session().Progress(1)
	assert.Equal(t, 3, p.CompletedQuestions)

	require.NoError(t, f.c.Next())
	f.answer(t, lecture.ChoiceD)
	require.NoError(t, f.c.Next())

	d, ok := f.c.State().(Dashboard)
	require.True(t, ok, "dashboard origin returns to dashboard")
	assert.Equal(t, 1, d.Lecture)
	assert.Equal(t, 2, d.Results.Correct)
}

func TestStartReview_EmptySetLeavesState(t *testing.T) {
	f := newFixture(t)
	completeLecture(t, f, 1, lecture.ChoiceA, lecture.ChoiceA, lecture.ChoiceA)
	before := f.c.State()

	assert.ErrorIs(t, f.c.StartReview(ReviewErrors, false), ErrEmptyReviewSet)
	assert.ErrorIs(t, f.c.StartReview(ReviewFavorites, true), ErrEmptyReviewSet)
	assert.Equal(t, before, f.c.State())
}

func TestStartReview_RequiresDashboard(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.c.StartReview(ReviewErrors, false), ErrInvalidTransition)
}

func TestStartReview_FavoritesViewOnly(t *testing.T) {
	f := newFixture(t)
	_, _ = f.c.SelectLecture(1)
	_, err := f.c.ToggleFavorite()
	require.NoError(t, err)
	f.answer(t, lecture.ChoiceB)
	require.NoError(t, f.c.Next())
	f.answer(t, lecture.ChoiceA)
	require.NoError(t, f.c.Next())
	f.answer(t, lecture.ChoiceA)
	require.NoError(t, f.c.Next())

	require.NoError(t, f.c.StartReview(ReviewFavorites, true))
	r := f.c.State().(Reviewing)
	require.Len(t, r.Items, 1)
	assert.True(t, r.ViewOnly)
	assert.True(t, r.Submitted)
	assert.ErrorIs(t, f.c.SelectChoice(lecture.ChoiceA), ErrInvalidChoice)

	v, err := f.c.QuestionView()
	require.NoError(t, err)
	require.NotNil(t, v.Feedback)
	assert.Equal(t, lecture.ChoiceB, v.Feedback.UserChoice, "view-only replays the stored answer")
	assert.False(t, v.CanSubmit)
	assert.True(t, v.ShowNext)

	require.NoError(t, f.c.Exit())
	assert.IsType(t, Dashboard{}, f.c.State())
}

func TestGlobalFavoritesScenario(t *testing.T) {
	f := newFixture(t)
	s := f.c.Session()
	s.ToggleFavorite(key(3, 4))
	s.ToggleFavorite(key(1, 2))

	require.NoError(t, f.c.StartGlobalFavorites(false))
	r := f.c.State().(Reviewing)
	require.Len(t, r.Items, 2)
	assert.Equal(t, key(1, 2), r.Items[0].Key())
	assert.Equal(t, key(3, 4), r.Items[1].Key())
	assert.Equal(t, OriginLanding, r.Origin)

	f.answer(t, lecture.ChoiceA)
	require.NoError(t, f.c.Next())
	f.answer(t, lecture.ChoiceC)

	rec, ok := s.Answer(key(3, 4))
	require.True(t, ok, "answer lands on the real lecture key")
	assert.Equal(t, lecture.ChoiceC, rec.Choice)
	assert.False(t, rec.Correct)
	assert.Equal(t, "global-favorites", f.log.events[1].Mode)

	require.NoError(t, f.c.Next())
	assert.Equal(t, Browsing{}, f.c.State(), "landing origin returns to browsing")
}

func TestGlobalFavorites_Empty(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.c.StartGlobalFavorites(true), ErrEmptyReviewSet)
	assert.Equal(t, Browsing{}, f.c.State())
}

func TestGlobalFavorites_RetryKeepsLectureUnstarted(t *testing.T) {
	f := newFixture(t)
	f.c.Session().ToggleFavorite(key(3, 4))

	require.NoError(t, f.c.StartGlobalFavorites(false))
	f.answer(t, lecture.ChoiceA)
	require.NoError(t, f.c.Next())
	require.Equal(t, Browsing{}, f.c.State())

	_, ok := f.c.Session().Progress(3)
	assert.False(t, ok, "a review retry does not start the lecture")

	sel, err := f.c.SelectLecture(3)
	require.NoError(t, err)
	assert.Equal(t, SelectionStarted, sel)
	assert.Equal(t, Active{Lecture: 3}, f.c.State())
}

func TestResume_FirstUnansweredAfterReviewRetry(t *testing.T) {
	f := newFixture(t)
	_, _ = f.c.SelectLecture(3)
	f.answer(t, lecture.ChoiceA)
	require.NoError(t, f.c.Next())
	f.answer(t, lecture.ChoiceB)
	require.NoError(t, f.c.Exit())

	f.c.Session().ToggleFavorite(key(3, 4))
	require.NoError(t, f.c.StartGlobalFavorites(false))
	f.answer(t, lecture.ChoiceA)
	require.NoError(t, f.c.Next())

	p, _ := f.c.Session().Progress(3)
	assert.Equal(t, 2, p.CompletedQuestions)

	sel, err := f.c.SelectLecture(3)
	require.NoError(t, err)
	require.Equal(t, SelectionNeedsResume, sel)
	require.NoError(t, f.c.Resume(3))
	assert.Equal(t, Active{Lecture: 3, Index: 2}, f.c.State(), "question 3 is the first unanswered")
}

func TestExit_ByOrigin(t *testing.T) {
	f := newFixture(t)
	f.c.Session().ToggleFavorite(key(1, 1))

	require.NoError(t, f.c.StartGlobalFavorites(true))
	require.NoError(t, f.c.Exit())
	assert.Equal(t, Browsing{}, f.c.State())

	completeLecture(t, f, 1, lecture.ChoiceB, lecture.ChoiceA, lecture.ChoiceA)
	require.NoError(t, f.c.StartReview(ReviewErrors, true))
	require.NoError(t, f.c.Exit())
	d, ok := f.c.State().(Dashboard)
	require.True(t, ok)
	assert.Equal(t, 1, d.Lecture)

	require.NoError(t, f.c.Exit())
	assert.Equal(t, Browsing{}, f.c.State())
	require.NoError(t, f.c.Exit(), "exit from browsing is a no-op")
}

func TestExit_MissingReturnLecture(t *testing.T) {
	f := newFixture(t)
	lec, _ := f.c.Catalog().Get(1)
	f.c.current = Reviewing{
		Kind:          ReviewErrors,
		Items:         []ReviewItem{{Lecture: 1, Question: lec.Questions[0]}},
		Origin:        OriginDashboard,
		ReturnLecture: 99,
	}

	assert.ErrorIs(t, f.c.Exit(), ErrUnknownLecture)
	assert.Equal(t, Browsing{}, f.c.State())
}

func TestViewAnswer(t *testing.T) {
	f := newFixture(t)
	completeLecture(t, f, 1, lecture.ChoiceA, lecture.ChoiceB, lecture.ChoiceA)

	assert.ErrorIs(t, f.c.ViewAnswer(9), ErrNoCurrentQuestion)
	require.NoError(t, f.c.ViewAnswer(2))

	r := f.c.State().(Reviewing)
	assert.Equal(t, ReviewAnswers, r.Kind)
	assert.Equal(t, 1, r.Index)
	assert.True(t, r.ViewOnly)

	require.NoError(t, f.c.Next())
	assert.True(t, f.c.State().(Reviewing).Submitted, "view-only stays submitted")
	require.NoError(t, f.c.Next())
	assert.IsType(t, Dashboard{}, f.c.State())
}

func TestRetakeAll(t *testing.T) {
	f := newFixture(t)
	completeLecture(t, f, 1, lecture.ChoiceA, lecture.ChoiceB, lecture.ChoiceA)
	f.c.Session().ToggleFavorite(key(1, 1))

	require.NoError(t, f.c.RetakeAll())
	assert.Equal(t, Active{Lecture: 1}, f.c.State())
	assert.Equal(t, 0, f.c.Session().AnsweredCount(1))
	assert.True(t, f.c.Session().IsFavorite(key(1, 1)), "favorites survive a retake")
}

func TestToggleFavorite(t *testing.T) {
	f := newFixture(t)
	_, err := f.c.ToggleFavorite()
	assert.ErrorIs(t, err, ErrNoCurrentQuestion)

	_, _ = f.c.SelectLecture(1)
	require.NoError(t, f.c.Previous())
	f.answer(t, lecture.ChoiceA)
	require.NoError(t, f.c.Next())

	on, err := f.c.ToggleFavorite()
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, f.c.Session().IsFavorite(key(1, 2)))

	on, err = f.c.ToggleFavorite()
	require.NoError(t, err)
	assert.False(t, on)
	assert.False(t, f.c.Session().IsFavorite(key(1, 2)))
}

func TestResetSession(t *testing.T) {
	f := newFixture(t)
	_, _ = f.c.SelectLecture(1)
	f.answer(t, lecture.ChoiceA)
	_, _ = f.c.ToggleFavorite()

	f.c.ResetSession()
	assert.Equal(t, Browsing{}, f.c.State())
	assert.Empty(t, f.c.Session().Answers())
	assert.Empty(t, f.c.Session().Favorites())
	assert.NotContains(t, f.blobs.data, session.BlobKey)
	assert.True(t, f.log.cleared)
}

func TestLanguages(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, i18n.EN, f.c.Language())

	assert.Equal(t, i18n.AR, f.c.ToggleLanguage())
	assert.Equal(t, i18n.EN, f.c.ExplanationLanguage(), "languages are independent")

	reloaded := session.NewStore(f.blobs, nil).Load(context.Background())
	assert.Equal(t, i18n.AR, reloaded.Language)

	assert.Equal(t, i18n.AR, f.c.ToggleExplanationLanguage())
	assert.Equal(t, i18n.EN, f.c.ToggleExplanationLanguage())
}

func TestPersistRoundTripThroughController(t *testing.T) {
	f := newFixture(t)
	_, _ = f.c.SelectLecture(3)
	f.answer(t, lecture.ChoiceA)
	_, _ = f.c.ToggleFavorite()

	loaded := session.NewStore(f.blobs, nil).Load(context.Background())
	assert.True(t, loaded.IsFavorite(key(3, 1)))
	rec, ok := loaded.Answer(key(3, 1))
	require.True(t, ok)
	assert.True(t, rec.Correct)
	p, ok := loaded.Progress(3)
	require.True(t, ok)
	assert.Equal(t, 1, p.CompletedQuestions)
}
