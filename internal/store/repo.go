package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a blob key has no value.
var ErrNotFound = errors.New("not found")

// BlobRepo stores opaque byte values under string keys.
type BlobRepo interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int   // max results (0 = unlimited)
	After   int64 // sequence > After
	Lecture int   // lecture id (0 = all lectures)
}

// AnswerEventData captures a single answer submission.
type AnswerEventData struct {
	RunID     string
	Lecture   int
	Question  int
	Choice    string
	Correct   bool
	Mode      string // "quiz", "errors", "favorites", "global-favorites"
	Timestamp time.Time
}

// AnswerEvent is a stored AnswerEventData with its log position.
type AnswerEvent struct {
	Sequence int64
	AnswerEventData
}

// EventRepo provides append and query access to the answer log.
type EventRepo interface {
	// AppendAnswer records an answer submission.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// Answers returns events in sequence order, newest last.
	Answers(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error)

	// LectureAccuracy returns the fraction of correct submissions and the
	// number of submissions recorded for a lecture.
	LectureAccuracy(ctx context.Context, lecture int) (float64, int, error)

	// Clear removes every recorded event.
	Clear(ctx context.Context) error
}
