package storage

import (
	"context"
	"sync"

	"github.com/bunbaker/bunbakery/internal/domain"
	"github.com/bunbaker/bunbakery/internal/logger"
)

// Compile-time interface check.
var _ domain.ProgressStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory progress store for tests and throwaway runs.
// Safe for concurrent access.
type MemoryStore struct {
	mu       sync.RWMutex
	progress *domain.Progress
	log      *logger.Logger
}

// NewMemoryStore creates an empty in-memory progress store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{log: log}
}

// Load returns the stored progress, or defaults if nothing was saved yet.
func (s *MemoryStore) Load(ctx context.Context) (*domain.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.progress == nil {
		s.log.Debug("no stored progress, starting fresh")
		return domain.DefaultProgress(), nil
	}
	return s.progress.Clone(), nil
}

// Save stores a copy of the given progress.
func (s *MemoryStore) Save(ctx context.Context, p *domain.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving progress (high score %d, money %d)", p.HighScore, p.Money)
	s.progress = p.Clone()
	return nil
}
