package mocks

import (
	"context"
	"sync"

	"github.com/leedsmet/bibliosight-core/internal/core/domain"
	"github.com/leedsmet/bibliosight-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.HistoryStore = (*MockHistoryStore)(nil)

// MockHistoryStore is an in-memory HistoryStore for testing
type MockHistoryStore struct {
	mu         sync.RWMutex
	executions []*domain.Execution
	nextID     int64

	RecordErr error
	RecentErr error
}

// NewMockHistoryStore creates an empty MockHistoryStore
func NewMockHistoryStore() *MockHistoryStore {
	return &MockHistoryStore{nextID: 1}
}

func (m *MockHistoryStore) Record(_ context.Context, exec *domain.Execution) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RecordErr != nil {
		return m.RecordErr
	}
	exec.ID = m.nextID
	m.nextID++
	m.executions = append(m.executions, exec)
	return nil
}

func (m *MockHistoryStore) Recent(_ context.Context, limit int) ([]*domain.Execution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.RecentErr != nil {
		return nil, m.RecentErr
	}

	out := make([]*domain.Execution, 0, limit)
	for i := len(m.executions) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.executions[i])
	}
	return out, nil
}

// All returns every recorded execution in insertion order
func (m *MockHistoryStore) All() []*domain.Execution {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Execution, len(m.executions))
	copy(out, m.executions)
	return out
}
