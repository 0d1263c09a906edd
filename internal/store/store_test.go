package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in TestOpenFileDB.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenFileDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "quiz.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestBlobPutGetDelete(t *testing.T) {
	repo := openTestStore(t).BlobRepo()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "quizSession"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get (empty) err = %v, want ErrNotFound", err)
	}

	if err := repo.Put(ctx, "quizSession", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Put(ctx, "quizSession", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := repo.Get(ctx, "quizSession")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"a":2}` {
		t.Errorf("value = %s, want overwritten value", got)
	}

	if err := repo.Delete(ctx, "quizSession"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "quizSession"); err != nil {
		t.Fatalf("delete missing key: %v", err)
	}
	if _, err := repo.Get(ctx, "quizSession"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete err = %v, want ErrNotFound", err)
	}
}

func TestAnswerEvents(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	base := time.Now().Truncate(time.Millisecond)
	data := []AnswerEventData{
		{RunID: "r1", Lecture: 1, Question: 1, Choice: "A", Correct: true, Mode: "quiz", Timestamp: base},
		{RunID: "r1", Lecture: 1, Question: 2, Choice: "C", Correct: false, Mode: "quiz", Timestamp: base.Add(time.Second)},
		{RunID: "r1", Lecture: 2, Question: 1, Choice: "B", Correct: true, Mode: "quiz", Timestamp: base.Add(2 * time.Second)},
		{RunID: "r2", Lecture: 1, Question: 2, Choice: "B", Correct: true, Mode: "errors"},
	}
	for i, d := range data {
		if err := repo.AppendAnswer(ctx, d); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	all, err := repo.Answers(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("answers: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("len = %d, want 4", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Sequence <= all[i-1].Sequence {
			t.Errorf("sequence not increasing at %d", i)
		}
	}
	if !all[0].Timestamp.Equal(base) {
		t.Errorf("timestamp = %v, want %v", all[0].Timestamp, base)
	}
	if all[3].Timestamp.IsZero() {
		t.Error("expected zero timestamp to default to now")
	}

	l1, err := repo.Answers(ctx, QueryOpts{Lecture: 1, After: all[0].Sequence, Limit: 1})
	if err != nil {
		t.Fatalf("filtered answers: %v", err)
	}
	if len(l1) != 1 || l1[0].Question != 2 || l1[0].Correct {
		t.Errorf("filtered = %+v, want lecture 1 question 2 incorrect", l1)
	}

	acc, n, err := repo.LectureAccuracy(ctx, 1)
	if err != nil {
		t.Fatalf("accuracy: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
	if want := 2.0 / 3.0; acc < want-1e-9 || acc > want+1e-9 {
		t.Errorf("accuracy = %v, want %v", acc, want)
	}

	if acc, n, _ := repo.LectureAccuracy(ctx, 9); acc != 0 || n != 0 {
		t.Errorf("empty lecture accuracy = %v/%d, want 0/0", acc, n)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	all, _ = repo.Answers(ctx, QueryOpts{})
	if len(all) != 0 {
		t.Errorf("len after clear = %d, want 0", len(all))
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x", "q.db")
	t.Setenv("QUIZMASTER_DB", p)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != p {
		t.Errorf("path = %q, want %q", got, p)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUIZMASTER_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if want := filepath.Join(dir, "quizmaster", "quizmaster.db"); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
