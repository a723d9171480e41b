// Package driven defines the outbound ports of the core: the vendor
// session endpoints, the result cache, and the execution-history store.
// The WSDL/XML wire encoding behind the gateway interfaces is the
// vendor's contract; the core only sees these operations.
package driven

import (
	"context"

	"github.com/leedsmet/bibliosight-core/internal/core/domain"
)

// Authenticator is the vendor authentication endpoint. The deployed
// service authenticates by network-origin allowlisting, so Authenticate
// takes no credentials and returns an opaque session token.
type Authenticator interface {
	Authenticate(ctx context.Context) (string, error)
	CloseSession(ctx context.Context) error
}

// SearchGateway is the vendor search endpoint. BindSession attaches the
// session token as a cookie on subsequent search calls.
type SearchGateway interface {
	BindSession(token string)
	Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResultSet, error)
}

// GatewayFactory builds a fresh authenticator/search gateway pair for one
// search invocation, optionally routed through an outbound proxy.
type GatewayFactory interface {
	New(proxy *domain.ProxyConfig) (Authenticator, SearchGateway, error)
}
