package driven

import (
	"context"

	"github.com/leedsmet/bibliosight-core/internal/core/domain"
)

// HistoryStore persists an audit row per search execution
type HistoryStore interface {
	// Record stores one execution and fills in its assigned ID
	Record(ctx context.Context, exec *domain.Execution) error

	// Recent returns the most recent executions, newest first
	Recent(ctx context.Context, limit int) ([]*domain.Execution, error)
}
