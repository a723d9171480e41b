package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leedsmet/bibliosight-core/internal/core/domain"
	"github.com/leedsmet/bibliosight-core/internal/core/ports/driven"
)

// SessionClient runs the vendor call sequence for one search invocation:
// authenticate, bind the session cookie, search, close the session.
// There is no retry; one invocation is one linear pass.
type SessionClient struct {
	gateways driven.GatewayFactory
	logger   *slog.Logger

	// sink receives the user-facing progress/warning lines; the query
	// model wires this to its observable log
	sink func(string)
}

// NewSessionClient creates a SessionClient. A nil logger falls back to
// slog.Default(); a nil sink discards progress lines.
func NewSessionClient(gateways driven.GatewayFactory, logger *slog.Logger, sink func(string)) *SessionClient {
	if logger == nil {
		logger = slog.Default()
	}
	if sink == nil {
		sink = func(string) {}
	}
	return &SessionClient{gateways: gateways, logger: logger, sink: sink}
}

// Execute performs the four-step remote sequence and returns the raw
// result set.
//
// Authentication failure aborts before any search is attempted. An empty
// session token is a soft stop: logged, no error, nil results. Session
// closure is always attempted once the gateways exist and its failure is
// only ever a warning; it never masks the search outcome.
func (c *SessionClient) Execute(ctx context.Context, req *domain.SearchRequest, proxy *domain.ProxyConfig) (*domain.SearchResultSet, error) {
	auth, search, err := c.gateways.New(proxy)
	if err != nil {
		return nil, fmt.Errorf("create session gateways: %w", err)
	}

	var (
		results *domain.SearchResultSet
		execErr error
	)

	c.sink("Authenticating with Web Services Lite...")
	token, err := auth.Authenticate(ctx)
	if err != nil {
		c.logger.Error("authentication failed, search operation cannot continue", "error", err)
		execErr = fmt.Errorf("%w: %v", domain.ErrAuthentication, err)
	}

	initialised := false
	if execErr == nil && token != "" {
		search.BindSession(token)
		c.sink("Search session initialised successfully")
		initialised = true
	} else {
		c.sink("Search session can not be initialised with a null session id")
	}

	if initialised {
		c.sink("Sending query request...")
		results, err = search.Search(ctx, req)
		if err != nil {
			c.logger.Error("search operation could not be completed", "error", err)
			results = nil
			execErr = fmt.Errorf("%w: %v", domain.ErrSearch, err)
		}
	}

	c.sink("Closing search session...")
	if err := auth.CloseSession(ctx); err != nil {
		c.logger.Warn("session could not be closed", "error", err)
		c.sink(fmt.Sprintf("Warning: %v: %v", domain.ErrSessionClose, err))
	}

	return results, execErr
}
