package store

import (
	"context"
	"sort"
	"sync"

	"privsweep/internal/sweep/models"
	dErrors "privsweep/pkg/domain-errors"
)

// InMemoryStore keeps run history in process memory for tests and the
// single-shot CLI mode.
type InMemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*models.RunResult
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{runs: make(map[string]*models.RunResult)}
}

func (s *InMemoryStore) Save(_ context.Context, result *models.RunResult) error {
	if result == nil || result.RunID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "run result with a run id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *result
	s.runs[result.RunID] = &copied
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, runID string) (*models.RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.runs[runID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "run "+runID+" not found")
	}
	copied := *result
	return &copied, nil
}

func (s *InMemoryStore) List(_ context.Context, limit int) ([]*models.RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*models.RunResult, 0, len(s.runs))
	for _, result := range s.runs {
		copied := *result
		results = append(results, &copied)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].StartedAt.After(results[j].StartedAt)
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
