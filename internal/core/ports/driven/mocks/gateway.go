package mocks

import (
	"context"
	"sync"

	"github.com/leedsmet/bibliosight-core/internal/core/domain"
	"github.com/leedsmet/bibliosight-core/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.Authenticator  = (*MockAuthenticator)(nil)
	_ driven.SearchGateway  = (*MockSearchGateway)(nil)
	_ driven.GatewayFactory = (*MockGatewayFactory)(nil)
)

// MockAuthenticator is a scriptable Authenticator for testing
type MockAuthenticator struct {
	mu sync.Mutex

	Token            string
	AuthenticateErr  error
	CloseErr         error
	AuthenticateCall int
	CloseCalls       int
}

// NewMockAuthenticator creates a MockAuthenticator that issues the given token
func NewMockAuthenticator(token string) *MockAuthenticator {
	return &MockAuthenticator{Token: token}
}

func (m *MockAuthenticator) Authenticate(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AuthenticateCall++
	if m.AuthenticateErr != nil {
		return "", m.AuthenticateErr
	}
	return m.Token, nil
}

func (m *MockAuthenticator) CloseSession(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	return m.CloseErr
}

// MockSearchGateway is a scriptable SearchGateway for testing
type MockSearchGateway struct {
	mu sync.Mutex

	Results     *domain.SearchResultSet
	SearchErr   error
	BoundToken  string
	BindCalls   int
	SearchCalls int
	LastRequest *domain.SearchRequest
}

// NewMockSearchGateway creates a MockSearchGateway returning the given result set
func NewMockSearchGateway(results *domain.SearchResultSet) *MockSearchGateway {
	return &MockSearchGateway{Results: results}
}

func (m *MockSearchGateway) BindSession(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BindCalls++
	m.BoundToken = token
}

func (m *MockSearchGateway) Search(_ context.Context, req *domain.SearchRequest) (*domain.SearchResultSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchCalls++
	m.LastRequest = req
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.Results, nil
}

// MockGatewayFactory hands out a fixed authenticator/gateway pair
type MockGatewayFactory struct {
	Authenticator *MockAuthenticator
	Gateway       *MockSearchGateway
	NewErr        error
	LastProxy     *domain.ProxyConfig
	NewCalls      int
}

// NewMockGatewayFactory creates a factory returning the given pair
func NewMockGatewayFactory(auth *MockAuthenticator, gw *MockSearchGateway) *MockGatewayFactory {
	return &MockGatewayFactory{Authenticator: auth, Gateway: gw}
}

func (m *MockGatewayFactory) New(proxy *domain.ProxyConfig) (driven.Authenticator, driven.SearchGateway, error) {
	m.NewCalls++
	m.LastProxy = proxy
	if m.NewErr != nil {
		return nil, nil, m.NewErr
	}
	return m.Authenticator, m.Gateway, nil
}
