package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAuthentication indicates the remote authentication call failed.
	// The search is aborted and the result output cleared.
	ErrAuthentication = errors.New("authentication failed")

	// ErrSearch indicates the remote search call failed. The result set
	// is discarded, never partially populated.
	ErrSearch = errors.New("search failed")

	// ErrSessionNotInitialised indicates no session token was available
	// to bind; a soft stop rather than a failure
	ErrSessionNotInitialised = errors.New("session not initialised")

	// ErrSessionClose indicates session cleanup failed. Logged as a
	// warning only, never escalated past the session client.
	ErrSessionClose = errors.New("session close failed")

	// ErrTransformation indicates the output document could not be
	// built or serialised
	ErrTransformation = errors.New("transformation failed")
)
