package driven

import "context"

// ResultCache stores serialised result documents keyed by a request
// fingerprint. A hit short-circuits the remote call sequence.
type ResultCache interface {
	// Get returns the cached document for a fingerprint, or
	// domain.ErrNotFound on a miss
	Get(ctx context.Context, fingerprint string) (string, error)

	// Set stores a document under a fingerprint
	Set(ctx context.Context, fingerprint string, document string) error
}
