// Package session holds the learner's persisted answers, favorites, and
// lecture progress.
package session

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/abhisek/quizmaster/internal/store"
)

// BlobKey is the storage key of the serialized session.
const BlobKey = "quizSession"

// Store loads and saves a SessionState through a blob repository.
// Persistence failures are logged and never returned to callers.
type Store struct {
	blobs  store.BlobRepo
	logger *zap.Logger
}

// NewStore creates a Store. A nil logger discards output.
func NewStore(blobs store.BlobRepo, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{blobs: blobs, logger: logger}
}

// Load reads the persisted session. Absent or unreadable data yields an
// empty default state.
func (s *Store) Load(ctx context.Context) *SessionState {
	data, err := s.blobs.Get(ctx, BlobKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("failed to read session", zap.Error(err))
		}
		return NewSessionState()
	}

	state, err := Unmarshal(data)
	if err != nil {
		s.logger.Warn("failed to load session data", zap.Error(err))
		return NewSessionState()
	}
	return state
}

// Save writes state, overwriting the previous value. Failures are logged;
// the in-memory state is left as is.
func (s *Store) Save(ctx context.Context, state *SessionState) {
	data, err := Marshal(state)
	if err != nil {
		s.logger.Warn("failed to encode session", zap.Error(err))
		return
	}
	if err := s.blobs.Put(ctx, BlobKey, data); err != nil {
		s.logger.Warn("failed to save session", zap.Error(err))
	}
}

// Reset clears state in place and removes the persisted value.
func (s *Store) Reset(ctx context.Context, state *SessionState) {
	state.Clear()
	if err := s.blobs.Delete(ctx, BlobKey); err != nil {
		s.logger.Warn("failed to remove session", zap.Error(err))
	}
}
