package mocks

import (
	"context"
	"sync"

	"github.com/leedsmet/bibliosight-core/internal/core/domain"
	"github.com/leedsmet/bibliosight-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ResultCache = (*MockResultCache)(nil)

// MockResultCache is an in-memory ResultCache for testing
type MockResultCache struct {
	mu        sync.RWMutex
	documents map[string]string

	GetErr error
	SetErr error
}

// NewMockResultCache creates an empty MockResultCache
func NewMockResultCache() *MockResultCache {
	return &MockResultCache{documents: make(map[string]string)}
}

func (m *MockResultCache) Get(_ context.Context, fingerprint string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetErr != nil {
		return "", m.GetErr
	}
	doc, ok := m.documents[fingerprint]
	if !ok {
		return "", domain.ErrNotFound
	}
	return doc, nil
}

func (m *MockResultCache) Set(_ context.Context, fingerprint string, document string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.documents[fingerprint] = document
	return nil
}

// Len returns the number of cached documents
func (m *MockResultCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.documents)
}
